package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bidding/models"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)

	principal := models.Principal{
		Role:           models.RoleBuyer,
		TitleText:      "구매팀 과장",
		DisplayName:    "Kim",
		OrganizationID: "org1",
	}

	token, err := manager.Generate(principal)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, principal, claims.Principal())
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour)

	token, err := issuer.Generate(models.Principal{Role: models.RoleSupplier, SupplierID: "s1"})
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.Generate(models.Principal{Role: models.RoleBuyer})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
