package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Stockify-api/pkg/jwt"
)

const (
	secret = "test-secret-key-for-unit-tests"
	userID = "00000000-0000-0000-0000-000000000001"
	issuer = "stockify-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, issuer, 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, issuer, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParse_SinValidarEmisor(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "otro", 60)
	require.NoError(t, err)

	got, err := pkgjwt.Parse(secret, "", tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestParse_Errores(t *testing.T) {
	expired, err := pkgjwt.Generate(secret, userID, issuer, -1)
	require.NoError(t, err)
	valid, err := pkgjwt.Generate(secret, userID, issuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, issuer, expired)
	assert.Error(t, err, "token expirado")

	_, err = pkgjwt.Parse("otro-secret", issuer, valid)
	assert.Error(t, err, "secret incorrecto")

	_, err = pkgjwt.Parse(secret, "emisor-distinto", valid)
	assert.Error(t, err, "emisor distinto")

	_, err = pkgjwt.Parse(secret, issuer, "token.invalido.aqui")
	assert.Error(t, err)

	_, err = pkgjwt.Generate("", userID, issuer, 60)
	assert.Error(t, err)
}
