package domain

import (
	"fmt"
	"strings"
)

// Format es el formato de salida que acepta el servicio
type Format string

const (
	FormatNone    Format = ""
	FormatDefault Format = "default"
	FormatMP3     Format = "mp3"
	FormatMP4     Format = "mp4"
)

// Formats lista los formatos soportados, en el orden en que se muestran
var Formats = []Format{FormatDefault, FormatMP4, FormatMP3}

// ParseFormat valida un formato. Un string vacío significa "no enviar formato".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatNone, FormatDefault, FormatMP3, FormatMP4:
		return f, nil
	}
	return FormatNone, fmt.Errorf("unsupported format %q (use default, mp4 or mp3)", s)
}

// ResponseMode define cómo responde el servicio a las descargas
type ResponseMode string

const (
	// ModeJSON: el servicio responde {status, message, ...}
	ModeJSON ResponseMode = "json"
	// ModeBlob: el servicio responde el archivo (o un zip) directamente
	ModeBlob ResponseMode = "blob"
)

// ParseResponseMode valida el modo de respuesta configurado
func ParseResponseMode(s string) (ResponseMode, error) {
	switch m := ResponseMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeJSON, ModeBlob:
		return m, nil
	}
	return "", fmt.Errorf("unsupported response mode %q (use json or blob)", s)
}
