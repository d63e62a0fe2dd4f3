package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB abre um banco sqlite isolado por teste, com o mesmo esquema das
// entidades de produção.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Practice{},
		&entities.Child{},
		&entities.Assessment{},
		&entities.SurveyResponse{},
		&entities.Report{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

func seedAssessment(t *testing.T, db *gorm.DB, id, status string) {
	t.Helper()

	child := entities.Child{
		ID:           "child-" + id,
		ParentUserID: "parent-1",
		FirstName:    "Hannah",
		BirthDate:    time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&child).Error; err != nil {
		t.Fatalf("failed to seed child: %v", err)
	}

	assessment := entities.Assessment{
		ID:        id,
		ChildID:   child.ID,
		Status:    status,
		StartedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&assessment).Error; err != nil {
		t.Fatalf("failed to seed assessment: %v", err)
	}
}
