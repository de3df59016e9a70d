package subscriber

import (
	"github.com/shandysiswandi/reqguard/internal/pkg/clock"
	"github.com/shandysiswandi/reqguard/internal/pkg/instrument"
	"github.com/shandysiswandi/reqguard/internal/pkg/router"
	"github.com/shandysiswandi/reqguard/internal/pkg/uid"
	"github.com/shandysiswandi/reqguard/internal/pkg/validator"
	"github.com/shandysiswandi/reqguard/internal/subscriber/inbound"
	"github.com/shandysiswandi/reqguard/internal/subscriber/outbound/memory"
	"github.com/shandysiswandi/reqguard/internal/subscriber/usecase"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  *validator.V10Validator    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Repo:       memory.New(),
		UUID:       dep.UUID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Validator)

	return nil
}
