package migrations

import (
	"gorm.io/gorm"
)

// AddIndexes adds indexes to the database to improve query performance
func AddIndexes(db *gorm.DB) error {
	// Add indexes to the assessments table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_assessments_child_id ON assessments (child_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_assessments_practice_id ON assessments (practice_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_assessments_status ON assessments (status)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_assessments_started_at ON assessments (started_at)").Error; err != nil {
		return err
	}

	// Add indexes to the survey_responses table (a PK composta já cobre
	// buscas por assessment_id + question_id)
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_survey_responses_assessment_id ON survey_responses (assessment_id)").Error; err != nil {
		return err
	}

	// Add indexes to the reports table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reports_assessment_id ON reports (assessment_id, generated_at)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_reports_practice_id ON reports (practice_id)").Error; err != nil {
		return err
	}

	// Add indexes to the children table
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_children_parent_user_id ON children (parent_user_id)").Error; err != nil {
		return err
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_children_practice_id ON children (practice_id)").Error; err != nil {
		return err
	}

	return nil
}
