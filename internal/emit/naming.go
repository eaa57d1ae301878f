package emit

import (
	"path"
	"strings"
	"unicode"
)

// ToSnakeCase normalizes an identifier to snake_case. Handles CamelCase
// boundaries including acronym runs (HTTPServer -> http_server), and folds
// spaces, dashes and dots into underscores.
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == ' ' || r == '-' || r == '.':
			b.WriteRune('_')
		case unicode.IsUpper(r):
			if i > 0 && runes[i-1] != '_' && runes[i-1] != ' ' && runes[i-1] != '-' && runes[i-1] != '.' {
				prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FileStem returns a proto file name without directories or the .proto
// extension ("acme/data/stream.proto" -> "stream").
func FileStem(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	return strings.TrimSuffix(base, ".proto")
}
