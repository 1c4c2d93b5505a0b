package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateSlug genera el identificador público del video (corto y apto para URL)
func GenerateSlug() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}
