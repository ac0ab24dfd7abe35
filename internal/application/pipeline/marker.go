package pipeline

import (
	"regexp"
	"strings"
)

const (
	doneMarkerPrefix   = "@@@DONE:"
	failedMarkerPrefix = "@@@FAILED:"
)

// Los marcadores ocupan una línea completa; texto de etapa que solo los contenga no cuenta.
var (
	doneMarkerRe   = regexp.MustCompile(`^(?:✅ )?@@@DONE:(\d{4}-\d{2}-\d{2})$`)
	failedMarkerRe = regexp.MustCompile(`(?m)^@@@FAILED:([^\r\n]+?)\s*$`)
)

// CompletionMarker marcador textual de finalización para ejecución fuera de proceso.
func CompletionMarker(date string) string {
	return doneMarkerPrefix + date
}

// FailureMarker marcador con la etiqueta de la etapa que falló.
func FailureMarker(stage string) string {
	return failedMarkerPrefix + stage
}

// ParseCompletionMarker busca el marcador de finalización en la salida estándar del runner.
// Solo vale como última línea no vacía: cualquier cosa impresa después (o un marcador
// embebido en otra línea) invalida la finalización. El exit code no alcanza.
func ParseCompletionMarker(stdout string) (string, bool) {
	m := doneMarkerRe.FindStringSubmatch(lastLine(stdout))
	if m == nil {
		return "", false
	}
	return m[1], true
}

func lastLine(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}

// ParseFailureMarker devuelve la etiqueta de la etapa fallida si el runner la informó.
func ParseFailureMarker(output string) (string, bool) {
	m := failedMarkerRe.FindStringSubmatch(output)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
