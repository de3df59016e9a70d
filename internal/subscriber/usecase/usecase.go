package usecase

import (
	"context"

	"github.com/shandysiswandi/reqguard/internal/pkg/clock"
	"github.com/shandysiswandi/reqguard/internal/pkg/instrument"
	"github.com/shandysiswandi/reqguard/internal/pkg/uid"
	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
	"go.opentelemetry.io/otel/trace"
)

type repo interface {
	Create(ctx context.Context, sub entity.Subscriber) error
	Get(ctx context.Context, id string) (*entity.Subscriber, error)
	List(ctx context.Context, offset, limit int) ([]entity.Subscriber, int, error)
}

type Usecase struct {
	repo  repo
	uuid  uid.StringID
	clock clock.Clocker
	ins   instrument.Instrumentation
}

type Dependency struct {
	Repo       repo
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repo:  dep.Repo,
		uuid:  dep.UUID,
		clock: dep.Clock,
		ins:   dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("subscriber.usecase").Start(ctx, name)
}
