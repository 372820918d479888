package assistant

import "strings"

type intent int

const (
	intentHelp intent = iota
	intentGreeting
	intentSummary
	intentReset
)

// classify applies the keyword rules in order; the first match wins.
func classify(text string) intent {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "hola"):
		return intentGreeting
	case strings.Contains(lower, "resumen"), strings.Contains(lower, "resume"):
		return intentSummary
	case strings.Contains(lower, "limpiar"):
		return intentReset
	default:
		return intentHelp
	}
}
