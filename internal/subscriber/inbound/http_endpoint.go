package inbound

import (
	"github.com/samber/lo"
	"github.com/shandysiswandi/reqguard/internal/pkg/router"
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
	"github.com/shandysiswandi/reqguard/internal/subscriber/usecase"
)

// Requests carry many headers besides the ones a route cares about.
var schemaAllowUnknown = schema.Options{AllowUnknown: true}

// HTTPEndpoint exposes HTTP handlers for subscribers.
type HTTPEndpoint struct {
	uc uc
}

// Create stores a new subscriber. The body was validated by the route.
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	sub, err := h.uc.Create(r.Context(), usecase.CreateInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return toResponse(*sub), nil
}

func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	page, err := r.GetQueryInt("page", 0)
	if err != nil {
		return nil, err
	}
	size, err := r.GetQueryInt("size", 0)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.List(r.Context(), usecase.ListInput{Page: page, Size: size})
	if err != nil {
		return nil, err
	}

	return ListResponse{
		Items: lo.Map(out.Items, func(s entity.Subscriber, _ int) SubscriberResponse { return toResponse(s) }),
		page:  out.Page,
		size:  out.Size,
		total: out.Total,
	}, nil
}

func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	sub, err := h.uc.Detail(r.Context(), r.GetParam("id"))
	if err != nil {
		return nil, err
	}

	return toResponse(*sub), nil
}
