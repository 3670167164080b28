package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"heroapi/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
//
// The app must be created with StrictRouting enabled: GET /heroes (list)
// and GET /heroes/ (search by name) are distinct routes.
func RegisterRoutes(app *fiber.App, db *sql.DB, heroSvc service.HeroService, portraitURLTTL time.Duration) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Hero API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints: readiness checks DB connectivity, liveness is static.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Hero resource. Registration order matters: the search route with its
	// trailing slash must precede the :id route.
	app.Get("/heroes", ListHeroes(heroSvc))
	app.Get("/heroes/", SearchHeroes(heroSvc))
	app.Post("/heroes", CreateHero(heroSvc))
	app.Put("/heroes", UpdateHero(heroSvc))
	app.Get("/heroes/:id", GetHero(heroSvc))
	app.Delete("/heroes/:id", DeleteHero(heroSvc))

	// Portraits
	app.Post("/heroes/:id/portrait", UploadPortrait(heroSvc))
	app.Get("/heroes/:id/portrait", GetPortrait(heroSvc, portraitURLTTL))
}
