package password

import "golang.org/x/crypto/bcrypt"

// DefaultCost factor de trabajo bcrypt por defecto.
const DefaultCost = 12

// Service hashea y verifica contraseñas con bcrypt.
// No registra logs: ni el texto plano ni el digest deben salir de aquí.
type Service struct {
	cost int
}

// New construye el servicio. Un costo fuera del rango válido de bcrypt
// se reemplaza por DefaultCost.
func New(cost int) *Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Service{cost: cost}
}

// Hash devuelve el digest bcrypt de la contraseña en texto plano.
func (s *Service) Hash(plano string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plano), s.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compara en tiempo constante la contraseña contra el digest almacenado.
func (s *Service) Verify(plano, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plano)) == nil
}
