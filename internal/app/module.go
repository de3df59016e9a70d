package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/reqguard/internal/subscriber"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.subscriber.enabled") {
		if err := subscriber.New(subscriber.Dependency{
			Router:     a.router,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Validator:  a.validator,
		}); err != nil {
			slog.Error("failed to init module subscriber", "error", err)
			os.Exit(1)
		}
	}
}
