package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func SetupMiddlewares(app *fiber.App) {
	// CORS configuration
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "https://app.brainometer.health, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Identidade do chamador (quando presente) disponível para todas as rotas
	app.Use(WithAuth())
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public     fiber.Router
	Assessment fiber.Router
	Practice   fiber.Router
	Children   fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App) RouteGroups {
	// Grupo público (intake e autenticação)
	public := app.Group("/")

	// Avaliações: submissão aceita chamadas do fluxo público de intake,
	// então a autenticação é opcional e resolvida por rota
	assessment := app.Group("/assessments")

	// Clínicas e crianças exigem autenticação
	practice := app.Group("/practices")
	practice.Use(RequireAuth())

	children := app.Group("/children")
	children.Use(RequireAuth())

	return RouteGroups{
		Public:     public,
		Assessment: assessment,
		Practice:   practice,
		Children:   children,
	}
}
