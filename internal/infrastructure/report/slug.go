package report

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letras sin descomposición Unicode que aparecen en nombres de clientes polacos
var foldReplacer = strings.NewReplacer("ł", "l", "Ł", "L", "ø", "o", "Ø", "O", "ß", "ss")

// Slug nombre de archivo seguro para un cliente: "Łódź Sp. z o.o." → "lodz-sp-z-o-o".
func Slug(s string) string {
	s = foldReplacer.Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "cliente"
	}
	return out
}

// uniqueSlugs asigna un slug por cliente; colisiones reciben sufijo -2, -3...
func uniqueSlugs(clients []string) map[string]string {
	out := make(map[string]string, len(clients))
	used := make(map[string]int, len(clients))
	for _, c := range clients {
		base := Slug(c)
		used[base]++
		name := base
		if n := used[base]; n > 1 {
			name = base + "-" + strconv.Itoa(n)
		}
		out[c] = name
	}
	return out
}
