package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
)

const (
	defaultPage = 1
	defaultSize = 10
)

type ListInput struct {
	Page int
	Size int
}

type ListOutput struct {
	Items []entity.Subscriber
	Page  int
	Size  int
	Total int
}

func (s *Usecase) List(ctx context.Context, in ListInput) (*ListOutput, error) {
	ctx, span := s.startSpan(ctx, "List")
	defer span.End()

	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.Size < 1 {
		in.Size = defaultSize
	}

	items, total, err := s.repo.List(ctx, (in.Page-1)*in.Size, in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list subscribers", "page", in.Page, "error", err)
		return nil, err
	}

	return &ListOutput{Items: items, Page: in.Page, Size: in.Size, Total: total}, nil
}
