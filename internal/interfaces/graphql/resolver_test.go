package graphql_test

import (
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/internal/infrastructure/memory"
	apigraphql "github.com/cn2-g7/usuarios-api/internal/interfaces/graphql"
	"github.com/cn2-g7/usuarios-api/pkg/password"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// espia cuenta los eventos emitidos por el caso de uso.
type espia struct {
	tipos []string
}

func (e *espia) PublishUserCreated(u *entity.Usuario)   { e.tipos = append(e.tipos, "UserCreated") }
func (e *espia) PublishUserUpdated(u *entity.Usuario)   { e.tipos = append(e.tipos, "UserUpdated") }
func (e *espia) PublishUserDeleted(id int64)            { e.tipos = append(e.tipos, "UserDeleted") }
func (e *espia) PublishUserRetrieved(u *entity.Usuario) { e.tipos = append(e.tipos, "UserRetrieved") }

// nuevoEsquema arma el esquema ejecutable completo sobre el almacén en
// memoria, con el rol admin sembrado. Los tests ejercitan el mismo camino
// resolver -> caso de uso -> repositorio que usa el servidor.
func nuevoEsquema(t *testing.T) (graphql.Schema, *usecase.UsuarioUseCase, *espia) {
	t.Helper()
	repo := memory.NewUsuarioRepo()
	repo.SeedRol(&entity.Rol{ID: 1, Nombre: "admin", Descripcion: "Administrador"})
	ev := &espia{}
	uc := usecase.NewUsuarioUseCase(repo, &memory.TxRunner{Repo: repo}, password.New(bcrypt.MinCost), ev, false)
	schema, err := apigraphql.NewSchema(apigraphql.NewResolver(uc))
	require.NoError(t, err)
	return schema, uc, ev
}

// ejecutar corre la operación y devuelve el sobre {data, errors} ya
// serializado, que es lo que ve el cliente.
func ejecutar(t *testing.T, schema graphql.Schema, query string, variables map[string]interface{}) map[string]any {
	t.Helper()
	resultado := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
	})
	cuerpo, err := json.Marshal(resultado)
	require.NoError(t, err)
	var sobre map[string]any
	require.NoError(t, json.Unmarshal(cuerpo, &sobre))
	return sobre
}

func crearUsuarioDePrueba(t *testing.T, uc *usecase.UsuarioUseCase) *entity.Usuario {
	t.Helper()
	creado, err := uc.Crear(&entity.Usuario{
		Username:     "jperez",
		Email:        "jperez@example.com",
		PasswordHash: "secreto123",
		Nombre:       "Juan",
		Apellido:     "Pérez",
		Rol:          &entity.Rol{ID: 1},
		Activo:       true,
	})
	require.NoError(t, err)
	return creado
}

func primerError(t *testing.T, sobre map[string]any) map[string]any {
	t.Helper()
	errores, ok := sobre["errors"].([]any)
	require.True(t, ok, "el sobre debe traer errors: %v", sobre)
	require.NotEmpty(t, errores)
	e, ok := errores[0].(map[string]any)
	require.True(t, ok)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────────────────────────────────

// usuarios devuelve la lista completa con el rol anidado y sin exponer la
// contraseña (el tipo Usuario no tiene campo password).
func TestQueryUsuarios(t *testing.T) {
	schema, uc, _ := nuevoEsquema(t)
	crearUsuarioDePrueba(t, uc)

	sobre := ejecutar(t, schema, `{ usuarios { id username email rol { id nombre } activo } }`, nil)

	require.Nil(t, sobre["errors"])
	data := sobre["data"].(map[string]any)
	lista := data["usuarios"].([]any)
	require.Len(t, lista, 1)
	u := lista[0].(map[string]any)
	assert.Equal(t, "jperez", u["username"])
	assert.Equal(t, true, u["activo"])
	rol := u["rol"].(map[string]any)
	assert.Equal(t, "admin", rol["nombre"])
	assert.NotContains(t, u, "passwordHash")
}

// usuario(id) con un ID inexistente produce un error de dominio en el sobre,
// no un error interno.
func TestQueryUsuario_NoEncontrado(t *testing.T) {
	schema, _, _ := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `{ usuario(id: "999") { id } }`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Usuario no encontrado con ID: 999", e["message"])
}

// Un ID que no parsea recibe el mismo trato que uno inexistente.
func TestQueryUsuario_IDNoNumerico(t *testing.T) {
	schema, _, _ := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `{ usuario(id: "abc") { id } }`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Usuario no encontrado con ID: abc", e["message"])
}

// ──────────────────────────────────────────────────────────────────────────────
// crearUsuario
// ──────────────────────────────────────────────────────────────────────────────

// El camino feliz crea el usuario, resuelve el rol y emite un solo evento.
func TestCrearUsuario(t *testing.T) {
	schema, _, ev := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `
		mutation {
			crearUsuario(input: {
				username: "mgomez", email: "mgomez@example.com",
				password: "secreto123", nombre: "María", apellido: "Gómez", rol: "1"
			}) { id username rol { nombre } activo }
		}`, nil)

	require.Nil(t, sobre["errors"], "sobre: %v", sobre)
	creado := sobre["data"].(map[string]any)["crearUsuario"].(map[string]any)
	assert.Equal(t, "mgomez", creado["username"])
	assert.Equal(t, true, creado["activo"])
	assert.Equal(t, "admin", creado["rol"].(map[string]any)["nombre"])
	assert.Equal(t, []string{"UserCreated"}, ev.tipos)
}

// Un input sin email válido produce un error con extensions.validationErrors
// y no emite eventos.
func TestCrearUsuario_EmailInvalido(t *testing.T) {
	schema, _, ev := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `
		mutation {
			crearUsuario(input: {
				username: "mgomez", password: "secreto123",
				nombre: "María", apellido: "Gómez", rol: "1"
			}) { id }
		}`, nil)

	e := primerError(t, sobre)
	ext, ok := e["extensions"].(map[string]any)
	require.True(t, ok, "el error de validación debe traer extensions: %v", e)
	assert.Contains(t, ext["validationErrors"], "Email inválido")
	assert.Empty(t, ev.tipos)
}

// El rol puede llegar como número por variables; se normaliza igual.
func TestCrearUsuario_RolNumericoPorVariables(t *testing.T) {
	schema, _, _ := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `
		mutation crear($input: UsuarioInput!) {
			crearUsuario(input: $input) { username rol { id } }
		}`, map[string]interface{}{
		"input": map[string]interface{}{
			"username": "mgomez",
			"email":    "mgomez@example.com",
			"password": "secreto123",
			"nombre":   "María",
			"apellido": "Gómez",
			"rol":      1,
		},
	})

	require.Nil(t, sobre["errors"], "sobre: %v", sobre)
	creado := sobre["data"].(map[string]any)["crearUsuario"].(map[string]any)
	assert.Equal(t, "mgomez", creado["username"])
}

// Un rol inexistente se reporta con su ID.
func TestCrearUsuario_RolNoEncontrado(t *testing.T) {
	schema, _, ev := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `
		mutation {
			crearUsuario(input: {
				username: "mgomez", email: "mgomez@example.com",
				password: "secreto123", nombre: "María", apellido: "Gómez", rol: "99"
			}) { id }
		}`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Rol no encontrado con ID: 99", e["message"])
	assert.Empty(t, ev.tipos)
}

// ──────────────────────────────────────────────────────────────────────────────
// actualizarUsuario
// ──────────────────────────────────────────────────────────────────────────────

// La actualización parcial cambia solo los campos presentes.
func TestActualizarUsuario_Parcial(t *testing.T) {
	schema, uc, ev := nuevoEsquema(t)
	creado := crearUsuarioDePrueba(t, uc)
	ev.tipos = nil

	sobre := ejecutar(t, schema, `
		mutation actualizar($input: UsuarioUpdateInput!) {
			actualizarUsuario(input: $input) { id username email }
		}`, map[string]interface{}{
		"input": map[string]interface{}{
			"id":    "1",
			"email": "nuevo@example.com",
		},
	})

	require.Nil(t, sobre["errors"], "sobre: %v", sobre)
	actualizado := sobre["data"].(map[string]any)["actualizarUsuario"].(map[string]any)
	assert.Equal(t, "nuevo@example.com", actualizado["email"])
	assert.Equal(t, "jperez", actualizado["username"], "los campos ausentes se preservan")
	assert.Equal(t, []string{"UserUpdated"}, ev.tipos)

	guardado, err := uc.ObtenerPorID(creado.ID)
	require.NoError(t, err)
	assert.Equal(t, creado.PasswordHash, guardado.PasswordHash, "sin password en el input, el digest no cambia")
}

// Sin un ID numérico la mutación se rechaza con mensaje de validación.
func TestActualizarUsuario_SinID(t *testing.T) {
	schema, _, _ := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `
		mutation {
			actualizarUsuario(input: { email: "nuevo@example.com" }) { id }
		}`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Error de validación: Se requiere el ID del usuario", e["message"])
}

// Una contraseña corta presente en el input se rechaza antes de tocar nada.
func TestActualizarUsuario_PasswordCorta(t *testing.T) {
	schema, uc, ev := nuevoEsquema(t)
	crearUsuarioDePrueba(t, uc)
	ev.tipos = nil

	sobre := ejecutar(t, schema, `
		mutation {
			actualizarUsuario(input: { id: "1", password: "abc" }) { id }
		}`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Error de validación: La contraseña debe tener al menos 6 caracteres", e["message"])
	assert.Empty(t, ev.tipos)
}

// ──────────────────────────────────────────────────────────────────────────────
// eliminarUsuario
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar devuelve true y emite UserDeleted.
func TestEliminarUsuario(t *testing.T) {
	schema, uc, ev := nuevoEsquema(t)
	creado := crearUsuarioDePrueba(t, uc)
	ev.tipos = nil

	sobre := ejecutar(t, schema, `mutation { eliminarUsuario(id: "1") }`, nil)

	require.Nil(t, sobre["errors"], "sobre: %v", sobre)
	assert.Equal(t, true, sobre["data"].(map[string]any)["eliminarUsuario"])
	assert.Equal(t, []string{"UserDeleted"}, ev.tipos)

	_, err := uc.ObtenerPorID(creado.ID)
	assert.Error(t, err)
}

// Eliminar un ID inexistente devuelve el error envuelto de la superficie.
func TestEliminarUsuario_NoEncontrado(t *testing.T) {
	schema, _, ev := nuevoEsquema(t)

	sobre := ejecutar(t, schema, `mutation { eliminarUsuario(id: "999") }`, nil)

	e := primerError(t, sobre)
	assert.Equal(t, "Error al eliminar usuario: Usuario no encontrado con ID: 999", e["message"])
	assert.Empty(t, ev.tipos)
}
