// Package dto define la representación JSON de las entidades con codecs
// explícitos: sin reflexión para la fecha y con distinción presente/ausente
// en las entradas de actualización parcial.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
)

// FormatoFechaLocal ISO local date-time, sin zona horaria.
const FormatoFechaLocal = "2006-01-02T15:04:05"

// FechaLocal serializa time.Time como ISO local date-time.
type FechaLocal time.Time

// MarshalJSON codifica la fecha en formato local; la fecha cero se emite como null.
func (f FechaLocal) MarshalJSON() ([]byte, error) {
	t := time.Time(f)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(FormatoFechaLocal) + `"`), nil
}

// UnmarshalJSON acepta null o una fecha en formato local.
func (f *FechaLocal) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = FechaLocal(time.Time{})
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(FormatoFechaLocal, s)
	if err != nil {
		return fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	*f = FechaLocal(t)
	return nil
}

// RolJSON representación JSON de Rol.
type RolJSON struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre,omitempty"`
	Descripcion string `json:"descripcion,omitempty"`
}

// UsuarioJSON representación JSON de Usuario. Incluye passwordHash: el digest
// (nunca el texto plano) viaja en las respuestas REST y en los eventos, igual
// que en el resto del sistema.
type UsuarioJSON struct {
	ID            int64      `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"passwordHash,omitempty"`
	Nombre        string     `json:"nombre"`
	Apellido      string     `json:"apellido"`
	Rol           *RolJSON   `json:"rol,omitempty"`
	Activo        bool       `json:"activo"`
	FechaCreacion FechaLocal `json:"fechaCreacion"`
}

// DesdeEntidad codifica la entidad a su forma JSON.
func DesdeEntidad(u *entity.Usuario) *UsuarioJSON {
	if u == nil {
		return nil
	}
	out := &UsuarioJSON{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		PasswordHash:  u.PasswordHash,
		Nombre:        u.Nombre,
		Apellido:      u.Apellido,
		Activo:        u.Activo,
		FechaCreacion: FechaLocal(u.FechaCreacion),
	}
	if u.Rol != nil {
		out.Rol = &RolJSON{ID: u.Rol.ID, Nombre: u.Rol.Nombre, Descripcion: u.Rol.Descripcion}
	}
	return out
}

// ListaDesdeEntidades codifica una lista de entidades.
func ListaDesdeEntidades(usuarios []*entity.Usuario) []*UsuarioJSON {
	out := make([]*UsuarioJSON, 0, len(usuarios))
	for _, u := range usuarios {
		out = append(out, DesdeEntidad(u))
	}
	return out
}

// UsuarioInputJSON entrada REST. Los punteros distinguen campo ausente de
// campo con valor cero; las actualizaciones parciales dependen de ello.
type UsuarioInputJSON struct {
	ID           *int64   `json:"id"`
	Username     *string  `json:"username"`
	Email        *string  `json:"email"`
	PasswordHash *string  `json:"passwordHash"`
	Nombre       *string  `json:"nombre"`
	Apellido     *string  `json:"apellido"`
	Rol          *RolJSON `json:"rol"`
	Activo       *bool    `json:"activo"`
}

// DecodeUsuarioInput decodifica estricto: un campo no reconocido es un error.
func DecodeUsuarioInput(data []byte) (*UsuarioInputJSON, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var in UsuarioInputJSON
	if err := dec.Decode(&in); err != nil {
		return nil, err
	}
	return &in, nil
}

// AEntidadNueva construye la entidad para creación. activo ausente vale true;
// los campos ausentes quedan en cero y los reporta el validador de dominio.
func (in *UsuarioInputJSON) AEntidadNueva() *entity.Usuario {
	u := &entity.Usuario{Activo: true}
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.PasswordHash != nil {
		u.PasswordHash = *in.PasswordHash
	}
	if in.Nombre != nil {
		u.Nombre = *in.Nombre
	}
	if in.Apellido != nil {
		u.Apellido = *in.Apellido
	}
	if in.Rol != nil {
		u.Rol = &entity.Rol{ID: in.Rol.ID}
	}
	if in.Activo != nil {
		u.Activo = *in.Activo
	}
	return u
}

// ACambios proyecta la entrada como actualización parcial para el caso de uso.
func (in *UsuarioInputJSON) ACambios() *UsuarioCambios {
	cambios := &UsuarioCambios{
		Username: in.Username,
		Email:    in.Email,
		Password: in.PasswordHash,
		Nombre:   in.Nombre,
		Apellido: in.Apellido,
		Activo:   in.Activo,
	}
	if in.ID != nil {
		cambios.ID = *in.ID
	}
	if in.Rol != nil {
		rolID := in.Rol.ID
		cambios.RolID = &rolID
	}
	return cambios
}

// UsuarioCambios actualización parcial de un usuario. ID cero significa
// ausente; cada puntero nil deja el campo almacenado intacto.
type UsuarioCambios struct {
	ID       int64
	Username *string
	Email    *string
	Password *string // texto plano; solo se re-hashea si difiere del digest almacenado
	Nombre   *string
	Apellido *string
	RolID    *int64
	Activo   *bool
}
