package util

import (
	"strings"
	"unicode"
)

// PassengerHint сокращает полное имя пассажира до инициалов вида
// "A.B." — для списков и ответов, где полное имя не нужно
func PassengerHint(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	initials := make([]rune, 0, 2)
	for _, p := range parts {
		for _, r := range p {
			if unicode.IsLetter(r) {
				initials = append(initials, unicode.ToUpper(r))
				break
			}
		}
		if len(initials) == 2 {
			break
		}
	}
	var b strings.Builder
	for _, r := range initials {
		b.WriteRune(r)
		b.WriteByte('.')
	}
	return b.String()
}
