package routes

import (
	"net/http"
	"video-aggregator-api/config"
	"video-aggregator-api/pkg"

	"github.com/gofiber/fiber/v2"
)

func GetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"active": true,
	})
}

// TestHosts prueba las claves de API de los tres hosts y devuelve el
// resultado de cada uno. Endpoint de diagnóstico para el operador.
func TestHosts(c *fiber.Ctx) error {
	clients := newHostClients(config.LoadConfig())
	probes := pkg.ProbeHosts(clients)

	results := fiber.Map{}
	working := 0
	for _, probe := range probes {
		if probe.Alive {
			results[probe.Host] = fiber.Map{"success": true}
			working++
		} else {
			results[probe.Host] = fiber.Map{
				"success": false,
				"error":   probe.Err.Error(),
			}
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"results": results,
		"working": working,
		"total":   len(clients),
	})
}

// GetHostFileInfo consulta el estado de un archivo directamente en un host
func GetHostFileInfo(c *fiber.Ctx) error {
	host := c.Params("host")
	filecode := c.Params("filecode")

	if !pkg.IsValidHost(host) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":       "Host no válido",
			"valid_hosts": pkg.HostNames(),
		})
	}

	for _, client := range newHostClients(config.LoadConfig()) {
		if client.Config.Name != host {
			continue
		}

		info, err := client.GetFileInfo(filecode)
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Error al consultar el archivo en " + host,
				"details": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"host":    host,
			"result":  info,
		})
	}

	// No se llega aquí: el host ya se validó contra el conjunto fijo
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"error": "Host no válido",
	})
}
