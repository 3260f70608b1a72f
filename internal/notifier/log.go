package notifier

import (
	"errors"
	"log/slog"

	"github.com/amishk599/pipelines/internal/model"
)

// Ensure LogNotifier implements model.ErrorReporter.
var _ model.ErrorReporter = (*LogNotifier)(nil)

// LogNotifier writes request failures to the given logger as structured
// messages. It is the only error channel; nothing is surfaced to the user.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a reporter that logs each failure via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// ReportError logs err under source. HTTP and shape failures carry their
// status code or offending fields as attributes. A nil err is ignored.
func (n *LogNotifier) ReportError(source string, err error) {
	if err == nil {
		return
	}
	args := []any{"source", source, "error", err.Error()}

	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode != 0 {
		args = append(args, "status", httpErr.StatusCode)
	}
	var shapeErr *model.ShapeError
	if errors.As(err, &shapeErr) && len(shapeErr.Fields) > 0 {
		args = append(args, "fields", shapeErr.Fields)
	}
	n.logger.Error("request failed", args...)
}
