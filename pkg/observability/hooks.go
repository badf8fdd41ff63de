package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/conform/pkg/domain"
)

// Chain combines hook sets. Hooks run in order.
func Chain(hooks ...domain.ValidationHooks) domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(ctx context.Context, evt *domain.ValidationEvent) {
			for _, h := range hooks {
				if h.OnValidate != nil {
					h.OnValidate(ctx, evt)
				}
			}
		},
	}
}

// AuditHooks logs every failed validation at warn level.
func AuditHooks(logger *slog.Logger) domain.ValidationHooks {
	return domain.ValidationHooks{
		OnValidate: func(ctx context.Context, evt *domain.ValidationEvent) {
			if !evt.Failed() {
				return
			}
			logger.WarnContext(ctx, "validation failed",
				"op", evt.Op,
				"subject", evt.Subject,
				"kind", domain.KindName(evt.Err),
				"err", evt.Err,
			)
		},
	}
}
