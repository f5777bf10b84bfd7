package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	UsuarioUC *usecase.UsuarioUseCase
	Schema    graphql.Schema
	Log       *logger.Logger
}

// Router registra las tres superficies de la API: query GraphQL, mutación
// GraphQL y CRUD REST. Las tres pasan por el mismo caso de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	gql := NewGraphQLHandler(deps.Schema, deps.Log)
	api.Post("/graphql-query", gql.Query)
	api.Post("/graphql-mutation", gql.Mutation)

	usuarios := api.Group("/usuarios")
	handler := NewUsuarioHandler(deps.UsuarioUC, deps.Log)
	usuarios.Get("/", handler.Get)
	usuarios.Post("/", handler.Create)
	usuarios.Put("/", handler.Update)
	usuarios.Delete("/", handler.Delete)
}
