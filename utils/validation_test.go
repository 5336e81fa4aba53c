package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("rider@campusride.app"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Abcdefg1"))
	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("NODIGITSHERE"))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone(""))
	assert.NoError(t, ValidatePhone("+2348012345678"))
	assert.Error(t, ValidatePhone("abc"))
}
