package shortcode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// Алфавит кодов: строчные буквы и цифры, код нечувствителен к регистру
const codeChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// CodeLength — длина кода комнаты
const CodeLength = 8

// Generate возвращает случайный код комнаты
func Generate() (string, error) {
	code := make([]byte, CodeLength)
	max := big.NewInt(int64(len(codeChars)))

	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeChars[n.Int64()]
	}

	return string(code), nil
}

// Normalize приводит введённый пользователем код к каноническому виду
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// IsValid проверяет, похож ли код на код комнаты
func IsValid(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(codeChars, c) {
			return false
		}
	}
	return true
}
