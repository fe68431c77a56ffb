package phonenum

import "strings"

// Digits возвращает только цифры из номера телефона
// "+38 (099) 123-45-67" -> "380991234567"
func Digits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize приводит номер к каноничному виду: плюс и цифры
// Пустой ввод (ни одной цифры) дает пустую строку
func Normalize(raw string) string {
	digits := Digits(raw)
	if digits == "" {
		return ""
	}
	return "+" + digits
}

// DigitCount возвращает количество цифр в номере
func DigitCount(raw string) int {
	return len(Digits(raw))
}
