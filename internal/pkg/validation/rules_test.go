package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPIN(t *testing.T) {
	assert.True(t, IsValidPIN("1001"))
	assert.False(t, IsValidPIN("100"))
	assert.False(t, IsValidPIN("10a1"))
	assert.False(t, IsValidPIN(""))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("admin1@cfcpretoriaeast.org"))
	assert.True(t, IsValidEmail("  Ushers.Lead@cfcpretoriaeast.org "))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestIsValidPhone(t *testing.T) {
	phone := "+27123456789"
	bad := "call me"
	empty := ""

	assert.True(t, IsValidPhone(nil))
	assert.True(t, IsValidPhone(&phone))
	assert.True(t, IsValidPhone(&empty))
	assert.False(t, IsValidPhone(&bad))
}

func TestIsValidEventTime(t *testing.T) {
	assert.True(t, IsValidEventTime("09:00"))
	assert.True(t, IsValidEventTime("18:30"))
	assert.False(t, IsValidEventTime("24:00"))
	assert.False(t, IsValidEventTime("9:00"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Thabo"))
	assert.False(t, IsValidName("   "))
}
