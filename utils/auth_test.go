package utils

import (
	"testing"

	"github.com/campusride/CampusRide/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPassword("Sup3rSecret", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-signing-key")

	user := &models.User{
		Model: gorm.Model{ID: 42},
		Email: "rider@campusride.test",
		Role:  models.RoleStudent,
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	user := &models.User{Model: gorm.Model{ID: 7}, Email: "x@campusride.test"}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
