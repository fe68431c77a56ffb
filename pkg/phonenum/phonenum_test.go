package phonenum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigits(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+38 (099) 123-45-67", "380991234567"},
		{"+79123456789", "79123456789"},
		{"8 912 345 67 89", "89123456789"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Digits(tt.in), "input %q", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "+79123456789", Normalize("+7 (912) 345-67-89"))
	assert.Equal(t, "+79123456789", Normalize("79123456789"))
	assert.Equal(t, "", Normalize("нет цифр"))
}

func TestDigitCount(t *testing.T) {
	assert.Equal(t, 11, DigitCount("+7 (912) 345-67-89"))
	assert.Equal(t, 0, DigitCount(""))
}
