package middleware

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
)

const callerLocalsKey = "auth_caller"

// Claims carrega a identidade do chamador dentro do token JWT
type Claims struct {
	UserID     string  `json:"uid"`
	Role       string  `json:"role"`
	PracticeID *string `json:"practice_id,omitempty"`
	jwt.RegisteredClaims
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "practice-api-dev-secret"
	}
	return []byte(secret)
}

// SignToken emite um JWT HS256 para o usuário autenticado
func SignToken(userID, role string, practiceID *string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:     userID,
		Role:       role,
		PracticeID: practiceID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

func parseToken(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if claims, ok := t.Claims.(*Claims); ok && t.Valid {
		return claims, nil
	}
	return nil, errors.New("token inválido")
}

// WithAuth anexa a identidade do chamador ao contexto quando o header
// Authorization traz um Bearer token válido. Não bloqueia a requisição:
// rotas públicas (intake) seguem funcionando sem identidade.
func WithAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if claims, err := parseToken(tok); err == nil {
				c.Locals(callerLocalsKey, &usecases.Caller{
					UserID:     claims.UserID,
					Role:       claims.Role,
					PracticeID: claims.PracticeID,
				})
			}
		}
		return c.Next()
	}
}

// RequireAuth bloqueia a requisição quando não há identidade válida
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CallerFromCtx(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Autenticação necessária",
			})
		}
		return c.Next()
	}
}

// CallerFromCtx retorna a identidade autenticada da requisição, se houver
func CallerFromCtx(c *fiber.Ctx) *usecases.Caller {
	if caller, ok := c.Locals(callerLocalsKey).(*usecases.Caller); ok {
		return caller
	}
	return nil
}
