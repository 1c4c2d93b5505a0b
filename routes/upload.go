package routes

import (
	"context"
	"net/http"
	"time"
	"video-aggregator-api/config"
	"video-aggregator-api/db"
	"video-aggregator-api/models"
	"video-aggregator-api/pkg"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// newHostClients se sobreescribe en los tests para apuntar a hosts falsos
var newHostClients = pkg.NewHostClients

type uploadRequest struct {
	DriveLink     string `json:"driveLink" validate:"required"`
	FileName      string `json:"fileName"`
	AdminPassword string `json:"adminPassword"`
}

type manualUpdateRequest struct {
	Slug          string `json:"slug" validate:"required"`
	Host          string `json:"host" validate:"required"`
	FileCode      string `json:"filecode" validate:"required"`
	AdminPassword string `json:"adminPassword"`
}

// checkAdminPassword comprueba la contraseña de administrador que viene en el cuerpo
func checkAdminPassword(password string) bool {
	return password != "" && password == config.LoadConfig().AdminPassword
}

// pageURL construye la URL pública del reproductor para un slug
func pageURL(slug string) string {
	return config.LoadConfig().BaseURL + "/player.html?slug=" + slug
}

// UploadVideo crea el registro del video y lanza la subida a todos los hosts vivos
func UploadVideo(c *fiber.Ctx) error {
	var request uploadRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	if !checkAdminPassword(request.AdminPassword) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "No autorizado",
		})
	}

	if err := pkg.Validate.Struct(request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "El enlace de Drive es obligatorio",
		})
	}

	// Convertir el enlace de Google Drive antes de crear nada
	downloadLink, isDrive, err := pkg.NormalizeLink(request.DriveLink)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "Enlace de Google Drive no válido",
			"details": err.Error(),
		})
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = "Archivo desconocido"
	}

	// Guardar el registro inicial
	slug := pkg.GenerateSlug()
	video := models.VideoRecord{
		Slug:          slug,
		OriginalLink:  request.DriveLink,
		DownloadLink:  downloadLink,
		FileName:      fileName,
		Hosts:         map[string]models.HostEntry{},
		Status:        models.Processing,
		IsGoogleDrive: isDrive,
		CreatedAt:     time.Now().UTC(),
	}

	ctx := context.Background()
	if err := db.Videos.SaveVideo(ctx, &video); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error al guardar el registro del video",
			"details": err.Error(),
		})
	}

	logrus.Infof("🚀 Iniciando subida a todos los hosts para el slug %s", slug)

	// Probar la conexión con los tres hosts antes de subir nada
	clients := newHostClients(config.LoadConfig())
	probes := pkg.ProbeHosts(clients)

	liveClients := []*pkg.HostClient{}
	probeErrors := ""
	for i, probe := range probes {
		if probe.Alive {
			liveClients = append(liveClients, clients[i])
			continue
		}
		if probeErrors != "" {
			probeErrors += "; "
		}
		probeErrors += probe.Host + ": " + probe.Err.Error()
	}

	// Si fallan las tres sondas no se intenta ninguna subida.
	// El registro ya creado se queda tal cual, en estado processing.
	if len(liveClients) == 0 {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":      "Las APIs de todos los hosts de video están fallando",
			"details":    probeErrors,
			"suggestion": "Comprueba las claves de API y vuelve a intentarlo más tarde",
		})
	}

	// Subir solo a los hosts cuya sonda respondió
	outcomes := pkg.UploadToHosts(liveClients, downloadLink)

	successfulUploads := 0
	for _, outcome := range outcomes {
		var entry models.HostEntry
		if outcome.Err == nil {
			entry = models.HostEntry{
				Status:      models.HostUploading,
				FileCode:    outcome.FileCode,
				LastUpdated: time.Now().UTC(),
			}
			successfulUploads++
			logrus.Infof("✅ Subida iniciada en %s: %s", outcome.Host, outcome.FileCode)
		} else {
			entry = models.HostEntry{
				Status:      models.HostFailed,
				Error:       outcome.Err.Error(),
				LastUpdated: time.Now().UTC(),
			}
			logrus.Errorf("❌ Subida fallida en %s: %v", outcome.Host, outcome.Err)
		}

		if err := db.Videos.UpdateVideoHost(ctx, slug, outcome.Host, entry); err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Error al actualizar el estado del host",
				"details": err.Error(),
			})
		}
	}

	message := "Subida fallida en todos los hosts, vuelve a intentarlo más tarde"
	if successfulUploads > 0 {
		message = "Subida iniciada, el video estará disponible en breve"
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"slug":              slug,
		"pageUrl":           pageURL(slug),
		"successfulUploads": successfulUploads,
		"totalHosts":        len(clients),
		"message":           message,
	})
}

// ManualUpload crea el registro sin llamar a ningún host: las tres entradas
// quedan en manual_upload_required y se completan después con ManualUpdate.
// Es el modo de envío para cuando las APIs de los hosts están dando problemas.
func ManualUpload(c *fiber.Ctx) error {
	var request uploadRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	if !checkAdminPassword(request.AdminPassword) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "No autorizado",
		})
	}

	if err := pkg.Validate.Struct(request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "El enlace de Drive es obligatorio",
		})
	}

	downloadLink, isDrive, err := pkg.NormalizeLink(request.DriveLink)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "Enlace de Google Drive no válido",
			"details": err.Error(),
		})
	}

	fileName := request.FileName
	if fileName == "" {
		fileName = "Archivo desconocido"
	}

	hosts := map[string]models.HostEntry{}
	for _, host := range pkg.HostNames() {
		hosts[host] = models.HostEntry{
			Status:      models.HostManualUploadRequired,
			LastUpdated: time.Now().UTC(),
		}
	}

	slug := pkg.GenerateSlug()
	video := models.VideoRecord{
		Slug:          slug,
		OriginalLink:  request.DriveLink,
		DownloadLink:  downloadLink,
		FileName:      fileName,
		Hosts:         hosts,
		Status:        models.ManualUploadRequired,
		IsGoogleDrive: isDrive,
		CreatedAt:     time.Now().UTC(),
	}

	if err := db.Videos.SaveVideo(context.Background(), &video); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error al guardar el registro del video",
			"details": err.Error(),
		})
	}

	logrus.Infof("✅ Registro creado en modo manual con slug %s", slug)

	return c.JSON(fiber.Map{
		"success": true,
		"slug":    slug,
		"pageUrl": pageURL(slug),
		"message": "Página del video creada, sube el archivo a los hosts y actualiza los filecodes",
	})
}

// ManualUpdate actualiza la entrada de un host con el filecode obtenido a mano.
// Es la única vía por la que una entrada pasa directamente a completed.
func ManualUpdate(c *fiber.Ctx) error {
	var request manualUpdateRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "Error al analizar el cuerpo de la solicitud",
		})
	}

	if !checkAdminPassword(request.AdminPassword) {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error": "No autorizado",
		})
	}

	if err := pkg.Validate.Struct(request); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":    "Faltan campos obligatorios",
			"required": []string{"slug", "host", "filecode"},
		})
	}

	// Validar el host antes de tocar la base de datos
	if !pkg.IsValidHost(request.Host) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":       "Host no válido",
			"valid_hosts": pkg.HostNames(),
		})
	}

	ctx := context.Background()
	if _, err := db.Videos.GetVideoBySlug(ctx, request.Slug); err != nil {
		if err == db.ErrVideoNotFound {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"error": "Video no encontrado",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error al buscar el video",
			"details": err.Error(),
		})
	}

	playerLink := pkg.PlayerLink(request.Host, request.FileCode)
	entry := models.HostEntry{
		Status:      models.HostCompleted,
		FileCode:    request.FileCode,
		PlayerLink:  playerLink,
		LastUpdated: time.Now().UTC(),
	}

	if err := db.Videos.UpdateVideoHost(ctx, request.Slug, request.Host, entry); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error al actualizar el host",
			"details": err.Error(),
		})
	}

	logrus.Infof("✅ Enlace de %s actualizado para el slug %s", request.Host, request.Slug)

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Enlace de " + request.Host + " actualizado correctamente",
		"slug":       request.Slug,
		"host":       request.Host,
		"filecode":   request.FileCode,
		"playerLink": playerLink,
	})
}
