package inbound

import (
	"context"

	"github.com/shandysiswandi/reqguard/internal/pkg/router"
	"github.com/shandysiswandi/reqguard/internal/pkg/validation"
	"github.com/shandysiswandi/reqguard/internal/pkg/validator"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
	"github.com/shandysiswandi/reqguard/internal/subscriber/usecase"
)

type uc interface {
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Subscriber, error)
	Detail(ctx context.Context, id string) (*entity.Subscriber, error)
	List(ctx context.Context, in usecase.ListInput) (*usecase.ListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, v *validator.V10Validator) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/subscribers", end.Create,
		r.Validate(validator.Struct[CreateRequest](v), validation.TargetBody, validation.Config{}))

	r.GET("/api/v1/subscribers", end.List,
		r.Validate(listQuerySchema, validation.TargetQuery, validation.Config{}))

	// Header failures go through the router's error path.
	r.GET("/api/v1/subscribers/:id", end.Detail,
		r.Validate(validator.Struct[DetailHeaders](v), validation.TargetHeaders, validation.Config{
			NextOnError: true,
			Engine:      schemaAllowUnknown,
		}))
}
