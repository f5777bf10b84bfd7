// Package graphql expone el dominio de usuarios como esquema GraphQL sobre
// el ejecutor graphql-go (esquema + mapa de resolvers).
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
)

// NewSchema construye el esquema ejecutable con los resolvers cableados.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	rolType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Rol",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: campoRol(func(rol *entity.Rol) interface{} { return rol.ID }),
			},
			"nombre": &graphql.Field{
				Type:    graphql.String,
				Resolve: campoRol(func(rol *entity.Rol) interface{} { return rol.Nombre }),
			},
			"descripcion": &graphql.Field{
				Type:    graphql.String,
				Resolve: campoRol(func(rol *entity.Rol) interface{} { return rol.Descripcion }),
			},
		},
	})

	usuarioType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Usuario",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.ID),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.ID }),
			},
			"username": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Username }),
			},
			"email": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Email }),
			},
			"nombre": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Nombre }),
			},
			"apellido": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.String),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Apellido }),
			},
			"rol": &graphql.Field{
				Type:    graphql.NewNonNull(rolType),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Rol }),
			},
			"activo": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Boolean),
				Resolve: campoUsuario(func(u *entity.Usuario) interface{} { return u.Activo }),
			},
		},
	})

	// Los campos del input son opcionales a propósito: la validación con
	// mensajes en español ocurre en el resolver, no en la coerción del esquema.
	usuarioInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UsuarioInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"nombre":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"apellido": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rol":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
		},
	})

	usuarioUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UsuarioUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"id":       &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"username": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"nombre":   &graphql.InputObjectFieldConfig{Type: graphql.String},
			"apellido": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"rol":      &graphql.InputObjectFieldConfig{Type: graphql.ID},
			"activo":   &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"usuarios": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(usuarioType))),
				Resolve: r.Usuarios,
			},
			"usuario": &graphql.Field{
				Type: usuarioType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.Usuario,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"crearUsuario": &graphql.Field{
				Type: usuarioType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(usuarioInput)},
				},
				Resolve: r.CrearUsuario,
			},
			"actualizarUsuario": &graphql.Field{
				Type: usuarioType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(usuarioUpdateInput)},
				},
				Resolve: r.ActualizarUsuario,
			},
			"eliminarUsuario": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.EliminarUsuario,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

func campoUsuario(fn func(u *entity.Usuario) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		u, ok := p.Source.(*entity.Usuario)
		if !ok {
			return nil, nil
		}
		return fn(u), nil
	}
}

func campoRol(fn func(rol *entity.Rol) interface{}) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		rol, ok := p.Source.(*entity.Rol)
		if !ok {
			return nil, nil
		}
		return fn(rol), nil
	}
}
