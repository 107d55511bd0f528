package golingo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"es", "Spanish"},
		{"es-MX", "Spanish (Mexico)"},
		{"es_ES", "Spanish (Spain)"},
		{"de-AT", "German"},
		{"zh-Hans", "Chinese (Simplified)"},
		{"xx", "xx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetLanguageName(tt.code), tt.code)
	}
}

func TestLocaleCode_Base(t *testing.T) {
	assert.Equal(t, "pt", LocaleCode("pt-BR").Base())
	assert.Equal(t, "en", LocaleCode("EN").Base())
	assert.Equal(t, "", LocaleCode("").Base())
}

func TestLocaleCode_Name(t *testing.T) {
	assert.Equal(t, "French (Canada)", LocaleCode("fr-CA").Name())
}
