package routes

import (
	"context"
	"net/http"
	"video-aggregator-api/db"

	"github.com/gofiber/fiber/v2"
)

// GetVideos sirve la búsqueda por slug y el listado paginado desde el mismo
// endpoint: con ?slug= devuelve un solo video, sin slug devuelve la lista
func GetVideos(c *fiber.Ctx) error {
	ctx := context.Background()

	if slug := c.Query("slug"); slug != "" {
		video, err := db.Videos.GetVideoBySlug(ctx, slug)
		if err != nil {
			if err == db.ErrVideoNotFound {
				return c.Status(http.StatusNotFound).JSON(fiber.Map{
					"error": "Video no encontrado",
				})
			}
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Error al obtener el video",
				"details": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"video":   video,
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit < 1 {
		limit = 10
	}

	result, err := db.Videos.GetAllVideos(ctx, page, limit)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Error al obtener los videos",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"videos":      result.Videos,
		"totalPages":  result.TotalPages,
		"currentPage": result.CurrentPage,
		"total":       result.Total,
	})
}
