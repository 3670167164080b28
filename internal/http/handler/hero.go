package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"heroapi/internal/http/middleware"
	"heroapi/internal/model"
	"heroapi/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a trivial liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListHeroes returns the full hero collection. The X-Api-Version header is
// accepted for logging only and never validated; the request logger picks
// it up from context locals.
func ListHeroes(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if v := c.Get("X-Api-Version"); v != "" {
			c.Locals(middleware.APIVersionLocalKey, v)
		}

		heroes, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		// An empty collection is a normal outcome: 200 with [].
		return c.JSON(heroes)
	}
}

// SearchHeroes returns heroes whose name contains the `name` query text.
func SearchHeroes(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Query("name")

		heroes, err := svc.Search(c.UserContext(), name)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(heroes)
	}
}

// GetHero returns a single hero by its integer id.
func GetHero(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		hero, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(hero)
	}
}

// CreateHero stores a new hero. Conflicting id or name yields 409 with no body.
func CreateHero(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var hero model.Hero
		if err := c.BodyParser(&hero); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		stored, err := svc.Create(c.UserContext(), &hero)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrConflict):
				// 409 carries no body, not even the status text.
				return c.Status(fiber.StatusConflict).SendString("")
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// UpdateHero replaces the stored hero identified by the body's id. The
// submitted hero is echoed back on success.
func UpdateHero(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var hero model.Hero
		if err := c.BodyParser(&hero); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		updated, err := svc.Update(c.UserContext(), &hero)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
			case errors.Is(err, service.ErrNameRequired):
				return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(updated)
	}
}

// DeleteHero removes a hero by id. Success is 200 with no body.
func DeleteHero(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusOK).SendString("")
	}
}

// UploadPortrait accepts a multipart portrait image (field name: file) and
// attaches it to the hero.
func UploadPortrait(svc service.HeroService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		hero, err := svc.UploadPortrait(c.UserContext(), id, f, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(hero)
	}
}

// GetPortrait redirects to a presigned download URL for the hero's portrait.
func GetPortrait(svc service.HeroService, urlTTL time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		u, err := svc.PortraitURL(c.UserContext(), id, urlTTL)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero not found")
			case errors.Is(err, service.ErrNoPortrait):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "hero has no portrait")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Redirect(u, fiber.StatusTemporaryRedirect)
	}
}
