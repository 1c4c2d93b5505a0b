package main

import (
	"video-aggregator-api/config"
	"video-aggregator-api/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.LoadConfig()
	// La conexión a MongoDB y las claves de API se validan en el primer uso,
	// solo la contraseña de administrador se avisa al arrancar
	if cfg.AdminPassword == "" {
		logrus.Warn("ADMIN_PASSWORD no está configurada, los envíos serán rechazados")
	}

	// Iniciar la aplicación y configurar CORS
	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin,Content-Type,Accept,Content-Length,Accept-Language,Accept-Encoding,Connection,Access-Control-Allow-Origin,Authorization",
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	api := app.Group("/api")

	// Status
	api.Get("/status", routes.GetStatus)

	// Rutas
	/* -----------------------------------------------------------------
	|                                                                   |
	|                             VIDEOS                                |
	|                                                                   |
	------------------------------------------------------------------- */
	api.Get("/videos", routes.GetVideos) // Obtiene un video por ?slug= o el listado paginado con ?page=&limit=

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             UPLOADS                               |
	|                                                                   |
	------------------------------------------------------------------- */
	api.Post("/upload", routes.UploadVideo)         // Crea el registro y sube a todos los hosts vivos
	api.Post("/upload/manual", routes.ManualUpload) // Crea el registro en modo manual, sin llamar a los hosts
	api.Post("/manual-update", routes.ManualUpdate) // Actualiza el filecode de un host a mano

	/* -----------------------------------------------------------------
	|                                                                   |
	|                             HOSTS                                 |
	|                                                                   |
	------------------------------------------------------------------- */
	api.Get("/test-apis", routes.TestHosts)                         // Prueba las claves de API de los tres hosts
	api.Get("/hosts/:host/files/:filecode", routes.GetHostFileInfo) // Consulta el estado de un archivo en un host

	port := cfg.Port
	logrus.Infof("Server is running on port %s", port)
	logrus.Fatal(app.Listen(":" + port))
}
