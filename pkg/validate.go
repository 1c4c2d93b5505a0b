package pkg

import (
	"github.com/go-playground/validator/v10"
)

// Validate es el validador compartido para los cuerpos de las peticiones
var Validate = validator.New()
