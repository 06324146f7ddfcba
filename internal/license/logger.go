package license

import (
	"context"
	"log/slog"

	"shareware/internal/infrastructure"
)

// logAction logs a license action with structured data and the component
// field the rest of the system filters on.
func logAction(ctx context.Context, level slog.Level, action, msg string, attrs ...slog.Attr) {
	logger := infrastructure.LoggerFromContext(ctx)

	allAttrs := make([]slog.Attr, 0, len(attrs)+2)
	allAttrs = append(allAttrs,
		slog.String("action", action),
		slog.String("component", "license"),
	)
	allAttrs = append(allAttrs, attrs...)

	logger.LogAttrs(ctx, level, msg, allAttrs...)
}
