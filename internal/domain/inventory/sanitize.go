package inventory

import "strings"

var titleReplacer = strings.NewReplacer(
	"(", "", ")", "",
	"#", "", "$", "", "@", "", "%", "", "^", "", "&", "", "*", "",
)

// SanitizeTitle strips parentheses and the #$@%^&* symbols, then trims.
func SanitizeTitle(raw string) string {
	return strings.TrimSpace(titleReplacer.Replace(raw))
}

func splitLinks(raw string) []string {
	parts := strings.Split(raw, ",")
	links := make([]string, 0, len(parts))
	for _, part := range parts {
		if link := strings.TrimSpace(part); link != "" {
			links = append(links, link)
		}
	}
	return links
}
