package http

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cn2-g7/usuarios-api/internal/application/dto"
	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/internal/domain"
	"github.com/cn2-g7/usuarios-api/pkg/logger"
)

// UsuarioHandler maneja el CRUD REST de /api/usuarios.
type UsuarioHandler struct {
	uc  *usecase.UsuarioUseCase
	log *logger.Logger
}

// NewUsuarioHandler construye el handler.
func NewUsuarioHandler(uc *usecase.UsuarioUseCase, log *logger.Logger) *UsuarioHandler {
	return &UsuarioHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener usuarios (todos o por ID)
// @Tags         usuarios
// @Produce      json
// @Param        id   query  string  false  "ID del usuario"
// @Success      200  {object}  dto.UsuarioJSON
// @Failure      404  {string}  string
// @Router       /api/usuarios [get]
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	idParam := c.Query("id")
	if idParam == "" {
		usuarios, err := h.uc.ObtenerTodos()
		if err != nil {
			return h.respuestaError(c, err)
		}
		return c.JSON(dto.ListaDesdeEntidades(usuarios))
	}

	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		return h.respuestaError(c, domain.NewValidationError("Se requiere el ID del usuario"))
	}
	u, err := h.uc.ObtenerPorID(id)
	if err != nil {
		return h.respuestaError(c, err)
	}
	return c.JSON(dto.DesdeEntidad(u))
}

// Create godoc
// @Summary      Crear usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UsuarioInputJSON  true  "Datos del usuario (passwordHash lleva el texto plano, se hashea al crear)"
// @Success      201   {object}  dto.UsuarioJSON
// @Failure      400   {object}  object  "{error, detalles}"
// @Router       /api/usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	in, err := h.decodificar(c)
	if err != nil {
		return h.respuestaError(c, err)
	}
	creado, err := h.uc.Crear(in.AEntidadNueva())
	if err != nil {
		return h.respuestaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DesdeEntidad(creado))
}

// Update godoc
// @Summary      Actualizar usuario (parcial: los campos ausentes se preservan)
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UsuarioInputJSON  true  "Campos a actualizar (id requerido)"
// @Success      200   {object}  dto.UsuarioJSON
// @Failure      400   {object}  object  "{error, detalles}"
// @Failure      404   {string}  string
// @Router       /api/usuarios [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	in, err := h.decodificar(c)
	if err != nil {
		return h.respuestaError(c, err)
	}
	actualizado, err := h.uc.Actualizar(in.ACambios())
	if err != nil {
		return h.respuestaError(c, err)
	}
	return c.JSON(dto.DesdeEntidad(actualizado))
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         usuarios
// @Produce      json
// @Param        id   query  string  true  "ID del usuario"
// @Success      200  {object}  object  "{mensaje}"
// @Failure      404  {string}  string
// @Router       /api/usuarios [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		return h.respuestaError(c, domain.NewValidationError("Se requiere el ID del usuario"))
	}
	if err := h.uc.Eliminar(id); err != nil {
		return h.respuestaError(c, err)
	}
	return c.JSON(fiber.Map{"mensaje": "Usuario eliminado exitosamente"})
}

// decodificar lee el cuerpo con el codec estricto del DTO.
func (h *UsuarioHandler) decodificar(c *fiber.Ctx) (*dto.UsuarioInputJSON, error) {
	cuerpo := c.Body()
	if len(bytes.TrimSpace(cuerpo)) == 0 {
		return nil, domain.NewValidationError("El cuerpo de la solicitud está vacío")
	}
	in, err := dto.DecodeUsuarioInput(cuerpo)
	if err != nil {
		return nil, domain.NewValidationError("Cuerpo JSON inválido")
	}
	return in, nil
}

// respuestaError serializa el error según su clase. Los errores de dominio
// (validación, no encontrado) salen tal cual; todo lo demás —incluida la
// violación de unicidad— se registra con causa y se reporta como interno.
func (h *UsuarioHandler) respuestaError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "Error de validación",
			"detalles": ve.Violaciones,
		})
	}
	var nf *domain.UsuarioNotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).SendString(nf.Error())
	}
	h.log.Error().Err(err).Str("ruta", c.Path()).Str("metodo", c.Method()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).SendString("Error interno del servidor")
}
