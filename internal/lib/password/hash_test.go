package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "обычный пароль", password: "viewerpassword1"},
		{name: "пароль со спецсимволами", password: "p@ssw0rd!#%&"},
		{name: "короткий пароль", password: "short"},
		{name: "unicode пароль", password: "пароль-зрителя"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, strings.HasPrefix(hash, "$2a$"))

			assert.NoError(t, CompareHash(hash, tt.password))
			assert.Error(t, CompareHash(hash, tt.password+"x"))
		})
	}
}

func TestGetHash_Unique(t *testing.T) {
	// Одинаковые пароли дают разные хэши из-за соли
	first, err := GetHash("samepassword")
	require.NoError(t, err)
	second, err := GetHash("samepassword")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompareHash_NotAHash(t *testing.T) {
	assert.Error(t, CompareHash("plain-text-not-a-hash", "anything"))
}
