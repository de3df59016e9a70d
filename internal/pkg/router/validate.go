package router

import (
	"github.com/shandysiswandi/reqguard/internal/pkg/schema"
	"github.com/shandysiswandi/reqguard/internal/pkg/validation"
)

// Validate returns route middleware that checks target against s.
//
// Unset fields of cfg are filled from the router: the error handler is the
// router's own error path (so NextOnError renders through the error codec),
// the body limit comes from validation.max_body_bytes and outcomes are
// counted on the router's meter. The validation.all_errors and
// validation.allow_unknown switches enable the engine options globally.
func (r *Router) Validate(s schema.Schema, target validation.Target, cfg validation.Config) Middleware {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = r.HandleError
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = r.validation.MaxBodyBytes
	}
	if cfg.Meter == nil {
		cfg.Meter = r.validation.Meter
	}
	cfg.Engine.AllErrors = cfg.Engine.AllErrors || r.validation.Engine.AllErrors
	cfg.Engine.AllowUnknown = cfg.Engine.AllowUnknown || r.validation.Engine.AllowUnknown

	return validation.New(s, target, cfg)
}
