package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
)

type CreateInput struct {
	Name  string
	Email string
}

func (s *Usecase) Create(ctx context.Context, in CreateInput) (*entity.Subscriber, error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer span.End()

	sub := entity.Subscriber{
		ID:        s.uuid.Generate(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		CreatedAt: s.clock.Now(),
	}

	err := s.repo.Create(ctx, sub)
	if errors.Is(err, entity.ErrEmailTaken) {
		slog.WarnContext(ctx, "subscriber email already registered", "email", sub.Email)
		return nil, goerror.New(goerror.CodeConflict, `"email" is already subscribed`)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create subscriber", "email", sub.Email, "error", err)
		return nil, err
	}

	return &sub, nil
}
