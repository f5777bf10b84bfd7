package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/pkg/logger"
)

// GraphQLHandler expone el esquema en dos endpoints separados: uno solo para
// queries y otro solo para mutaciones. Ambos comparten parseo y serialización
// de errores.
type GraphQLHandler struct {
	schema graphql.Schema
	log    *logger.Logger
}

// NewGraphQLHandler construye el handler con el esquema ejecutable.
func NewGraphQLHandler(schema graphql.Schema, log *logger.Logger) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, log: log}
}

type solicitudGraphQL struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Query godoc
// @Summary      Ejecutar una query GraphQL
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{query, variables?}"
// @Success      200   {object}  object  "Sobre de resultado GraphQL"
// @Failure      400   {object}  object  "{errors: [...]}"
// @Router       /api/graphql-query [post]
func (h *GraphQLHandler) Query(c *fiber.Ctx) error {
	return h.ejecutar(c, false)
}

// Mutation godoc
// @Summary      Ejecutar una mutación GraphQL
// @Tags         graphql
// @Accept       json
// @Produce      json
// @Param        body  body  object  true  "{query, variables?}"
// @Success      200   {object}  object  "Sobre de resultado GraphQL"
// @Failure      400   {object}  object  "{errors: [...]}"
// @Router       /api/graphql-mutation [post]
func (h *GraphQLHandler) Mutation(c *fiber.Ctx) error {
	return h.ejecutar(c, true)
}

func (h *GraphQLHandler) ejecutar(c *fiber.Ctx, esMutacion bool) error {
	cuerpo := c.Body()
	if len(bytes.TrimSpace(cuerpo)) == 0 {
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("El cuerpo de la solicitud está vacío"))
	}

	var sol solicitudGraphQL
	if err := json.Unmarshal(cuerpo, &sol); err != nil {
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("Cuerpo JSON inválido"))
	}

	consulta := strings.TrimSpace(sol.Query)
	empiezaMutation := strings.HasPrefix(strings.ToLower(consulta), "mutation")
	switch {
	case !esMutacion && consulta == "":
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("Se requiere una consulta GraphQL"))
	case esMutacion && consulta == "":
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("Se requiere una mutación GraphQL"))
	case !esMutacion && empiezaMutation:
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("Esta función es solo para queries. Use /api/graphql-mutation para mutaciones."))
	case esMutacion && !empiezaMutation:
		return errorGraphQL(c, fiber.StatusBadRequest,
			domain.NewValidationError("Esta función es solo para mutaciones. Use /api/graphql-query para queries."))
	}

	h.log.Info().Str("query", consulta).Interface("variables", sol.Variables).Msg("ejecutando operación GraphQL")

	resultado := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  sol.Query,
		VariableValues: sol.Variables,
	})
	// Los errores de resolver viajan dentro del sobre {data, errors} con 200,
	// igual que en cualquier servidor GraphQL.
	return c.JSON(resultado)
}

// errorGraphQL serializa un error fuera del ejecutor con la misma forma que
// el sobre GraphQL: {errors: [{message, extensions?}]}.
func errorGraphQL(c *fiber.Ctx, status int, err error) error {
	errObj := fiber.Map{"message": err.Error()}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		errObj["extensions"] = ve.Extensions()
	}
	return c.Status(status).JSON(fiber.Map{"errors": []fiber.Map{errObj}})
}
