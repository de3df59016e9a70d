package inbound

import (
	"time"

	"github.com/shandysiswandi/reqguard/internal/pkg/jsonschema"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
)

// CreateRequest is the body of POST /api/v1/subscribers. Its validate tags
// are the body schema for that route.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// DetailHeaders is the header schema for GET /api/v1/subscribers/:id.
type DetailHeaders struct {
	APIVersion string `json:"x-api-version" validate:"required,oneof=v1"`
}

var listQuerySchema = jsonschema.MustCompile(`{
	"type": "object",
	"properties": {
		"page": {"type": "string", "pattern": "^[1-9][0-9]*$"},
		"size": {"type": "string", "pattern": "^([1-9]|[1-9][0-9]|100)$"}
	},
	"additionalProperties": false
}`)

type SubscriberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(sub entity.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		ID:        sub.ID,
		Name:      sub.Name,
		Email:     sub.Email,
		CreatedAt: sub.CreatedAt,
	}
}

type ListResponse struct {
	Items []SubscriberResponse `json:"items"`

	page, size, total int
}

func (r ListResponse) Meta() map[string]any {
	return map[string]any{
		"page":  r.page,
		"size":  r.size,
		"total": r.total,
	}
}
