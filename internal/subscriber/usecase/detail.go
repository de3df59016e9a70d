package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
)

func (s *Usecase) Detail(ctx context.Context, id string) (*entity.Subscriber, error) {
	ctx, span := s.startSpan(ctx, "Detail")
	defer span.End()

	sub, err := s.repo.Get(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, goerror.New(goerror.CodeNotFound, "subscriber not found")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get subscriber", "id", id, "error", err)
		return nil, err
	}

	return sub, nil
}
