package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cn2-g7/usuarios-api/pkg/password"
)

// El digest nunca debe ser el texto plano y debe verificar en ambos sentidos.
func TestHashYVerify(t *testing.T) {
	// Costo bajo para que el test sea rápido; el default (12) se prueba aparte.
	svc := password.New(bcrypt.MinCost)

	digest, err := svc.Hash("secret7")
	require.NoError(t, err)

	assert.NotEqual(t, "secret7", digest, "el digest no debe ser el texto plano")
	assert.True(t, svc.Verify("secret7", digest))
	assert.False(t, svc.Verify("otro-password", digest))
}

func TestCostoConfigurable(t *testing.T) {
	svc := password.New(5)

	digest, err := svc.Hash("secret7")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

// Un costo inválido cae al default 12.
func TestCostoInvalidoUsaDefault(t *testing.T) {
	svc := password.New(0)

	digest, err := svc.Hash("secret7")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}

func TestVerifyDigestCorrupto(t *testing.T) {
	svc := password.New(bcrypt.MinCost)
	assert.False(t, svc.Verify("secret7", "no-es-un-digest-bcrypt"))
}
