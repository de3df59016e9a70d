package router

import (
	"net/http"

	"github.com/samber/lo"
	"github.com/shandysiswandi/reqguard/internal/pkg/config"
	"github.com/shandysiswandi/reqguard/internal/pkg/goerror"
)

// middlewareMaintenance blocks routes listed in app.maintenance.endpoints.
// Entries are matched against the registered route pattern, not the raw path.
func middlewareMaintenance(cfg config.Config) Middleware {
	var blocked map[string]struct{}
	if cfg != nil {
		blocked = lo.SliceToMap(cfg.GetArray("app.maintenance.endpoints"), func(e string) (string, struct{}) {
			return e, struct{}{}
		})
	}

	return func(next http.Handler) http.Handler {
		if len(blocked) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := blocked[matchedRoutePath(r)]; ok {
				goerror.WriteJSON(w, goerror.New(goerror.CodeUnavailable, "service is under maintenance"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
