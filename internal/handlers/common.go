package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/types"
	"github.com/mmoutenot/latitune/internal/utils"
)

// field reads a request field from the form body or the query string.
// fasthttp checks query args first, then POST args, then multipart.
func field(c *fiber.Ctx, name string) string {
	return c.FormValue(name)
}

// parseKey parses an entity key field. Malformed keys behave like references
// to entities that do not exist, surfacing the given status.
func parseKey(c *fiber.Ctx, name, missingStatus string) (uint64, error) {
	id, err := strconv.ParseUint(field(c, name), 10, 64)
	if err != nil {
		return 0, types.NewDomainError(missingStatus)
	}
	return id, nil
}

// parseCoordinate parses a latitude or longitude field. Ranges are not
// validated, matching the storage model.
func parseCoordinate(c *fiber.Ctx, name string) (float64, error) {
	v, err := strconv.ParseFloat(field(c, name), 64)
	if err != nil {
		return 0, types.NewDomainError(types.StatusMissingParameters)
	}
	return v, nil
}

// fail recovers expected domain errors into the envelope; anything else
// propagates to the global error handler as an unexpected failure.
func fail(c *fiber.Ctx, err error) error {
	var domainErr *types.DomainError
	if errors.As(err, &domainErr) {
		return utils.ErrorResponse(c, domainErr.Status)
	}
	return err
}
