package server

import (
	"errors"

	"pinboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was
// already committed by a helper. Handlers must return nil (not this
// error) to avoid Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseBody decodes the JSON request body into dest. On failure it
// writes a 400 JSON response and returns errResponseWritten.
func parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c,
			models.NewInvalidRequestError("invalid request body"))
		return errResponseWritten
	}
	return nil
}

// requireParam extracts a non-empty route parameter. On failure it
// writes a 400 JSON response and returns errResponseWritten.
func requireParam(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if value == "" {
		_ = models.RespondWithError(c,
			models.NewInvalidRequestError("missing "+name+" parameter"))
		return "", errResponseWritten
	}
	return value, nil
}
