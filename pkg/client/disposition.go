package client

import (
	"path"
	"regexp"
	"strings"
)

// filename= seguido de un valor entre comillas (dobles o simples) o sin comillas.
// RE2 no tiene backreferences, así que cada tipo de comilla es una alternativa.
var dispositionFilename = regexp.MustCompile(`(?i)(?:^|[;\s])filename\s*=\s*(?:"([^"]*)"|'([^']*)'|([^;\s"']+))`)

// FilenameFromDisposition extrae el nombre sugerido del header Content-Disposition.
// Si el header no existe o no se puede interpretar, retorna fallback.
func FilenameFromDisposition(header, fallback string) string {
	m := dispositionFilename.FindStringSubmatch(header)
	if m == nil {
		return fallback
	}

	name := m[1] + m[2] + m[3]
	name = strings.TrimSpace(name)

	// Solo el nombre base: el header no decide el directorio de destino
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return fallback
	}

	return name
}
