package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders the error pages. Anything that is not a *fiber.Error
// is treated as an internal failure and logged.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}

		view := "errors/error"
		message := "Something went wrong."
		switch {
		case code == fiber.StatusNotFound:
			view = "errors/404"
			message = "Page not found."
		case code < fiber.StatusInternalServerError && e != nil:
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error("request failed",
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.String("error", err.Error()),
			)
		}

		if renderErr := c.Status(code).Render(view, fiber.Map{
			"PageTitle": message,
			"Message":   message,
		}); renderErr != nil {
			return c.Status(code).SendString(message)
		}
		return nil
	}
}
