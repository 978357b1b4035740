package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := Generate()
		require.NoError(t, err)

		assert.Len(t, code, CodeLength)
		assert.True(t, IsValid(code), "сгенерированный код должен проходить валидацию: %q", code)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(codeChars, c))
		}
		seen[code] = true
	}
	// 100 кодов из 36^8 вариантов — коллизия означала бы сломанный генератор
	assert.Greater(t, len(seen), 1)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "abcd1234", Normalize("ABCD1234"))
	assert.Equal(t, "abcd1234", Normalize("  abcd1234\n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("abcd1234"))
	assert.False(t, IsValid("abcd123"))   // короткий
	assert.False(t, IsValid("abcd12345")) // длинный
	assert.False(t, IsValid("ABCD1234"))  // не нормализован
	assert.False(t, IsValid("abcd-123"))
	assert.False(t, IsValid(""))
}
