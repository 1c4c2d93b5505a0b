package pkg

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidDriveLink = errors.New("formato de enlace de Google Drive no válido")

// Formas de enlace de Google Drive que se reconocen
var (
	reDriveFile = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	reDriveID   = regexp.MustCompile(`[&?]id=([a-zA-Z0-9_-]+)`)
	reDriveBare = regexp.MustCompile(`^([a-zA-Z0-9_-]+)$`)
)

// IsGoogleDriveLink comprueba si el enlace parece un enlace compartido de Google Drive
// (también acepta un ID de archivo suelto)
func IsGoogleDriveLink(link string) bool {
	return strings.Contains(link, "drive.google.com") ||
		strings.Contains(link, "google.com/file/d/") ||
		reDriveBare.MatchString(link)
}

// ConvertGoogleDriveLink convierte un enlace compartido en un enlace de descarga directa
func ConvertGoogleDriveLink(link string) (string, error) {
	for _, re := range []*regexp.Regexp{reDriveFile, reDriveID, reDriveBare} {
		if m := re.FindStringSubmatch(link); len(m) > 1 {
			return "https://drive.google.com/uc?export=download&id=" + m[1], nil
		}
	}
	return "", ErrInvalidDriveLink
}

// NormalizeLink devuelve el enlace que se entrega a los hosts.
// Si el enlace no es de Google Drive pasa sin cambios; si lo parece pero
// no encaja en ninguna forma conocida, devuelve error y el envío se rechaza.
func NormalizeLink(link string) (downloadLink string, isDrive bool, err error) {
	if !IsGoogleDriveLink(link) {
		return link, false, nil
	}
	converted, err := ConvertGoogleDriveLink(link)
	if err != nil {
		return "", true, err
	}
	return converted, true, nil
}
