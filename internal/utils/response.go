package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/types"
)

// Meta carries the envelope status and, on failure, the canonical message for
// that status code.
type Meta struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Envelope is the uniform response shape for every API endpoint. Objects is
// always a list, even for single-entity responses.
type Envelope struct {
	Meta    Meta                     `json:"meta"`
	Objects []map[string]interface{} `json:"objects"`
}

// Serializable is any entity that can render itself for the envelope.
type Serializable interface {
	Serialize() map[string]interface{}
}

// NewEnvelope builds a success envelope from zero or more entities.
func NewEnvelope(entities ...Serializable) Envelope {
	objects := make([]map[string]interface{}, 0, len(entities))
	for _, e := range entities {
		objects = append(objects, e.Serialize())
	}
	return Envelope{
		Meta:    Meta{Status: types.StatusOK},
		Objects: objects,
	}
}

// SuccessResponse sends a success envelope with the given entities.
func SuccessResponse(c *fiber.Ctx, entities ...Serializable) error {
	return c.Status(fiber.StatusOK).JSON(NewEnvelope(entities...))
}

// ListResponse sends a success envelope from pre-serialized objects.
func ListResponse(c *fiber.Ctx, objects []map[string]interface{}) error {
	if objects == nil {
		objects = []map[string]interface{}{}
	}
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Meta:    Meta{Status: types.StatusOK},
		Objects: objects,
	})
}

// ErrorResponse sends an error envelope for a domain status code. Expected
// domain failures ride on HTTP 200; the envelope carries the real status.
func ErrorResponse(c *fiber.Ctx, status string) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Meta:    Meta{Status: status, Error: types.StatusMessage(status)},
		Objects: []map[string]interface{}{},
	})
}
