package hook

import (
	"log/slog"
	"time"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // Runs first (pre) / last (post)
	PriorityValidation = 800  // Validate before processing
	PriorityHistory    = 500  // Snapshot capture and history recording
)

// AuditHook logs all dispatched commands.
type AuditHook struct {
	logger *slog.Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger *slog.Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the command being dispatched.
func (h *AuditHook) PreDispatch(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch start",
			"command", cmd.Type,
			"source", cmd.Meta.Source.String(),
			"zone", ctx.ActiveZoneID(),
			"depth", ctx.Depth,
		)
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(cmd *command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.logger == nil {
		return
	}

	if result.Status == handler.StatusError {
		h.logger.Warn("dispatch failed",
			"command", cmd.Type,
			"error", result.Error,
		)
	} else {
		h.logger.Debug("dispatch complete",
			"command", cmd.Type,
			"status", result.Status.String(),
			"message", result.Message,
		)
	}
}

// TimingHook measures command execution time.
// Start times are stored on the ExecutionContext so nested follow-up
// dispatches do not clobber each other.
type TimingHook struct {
	callback func(typ string, duration time.Duration)
}

// timingStartKey is the context value key for timing start time.
const timingStartKey = "_timing_start"

// NewTimingHook creates a timing hook.
func NewTimingHook(callback func(typ string, duration time.Duration)) *TimingHook {
	return &TimingHook{
		callback: callback,
	}
}

// Name implements Hook.
func (h *TimingHook) Name() string { return "timing" }

// Priority implements Hook.
func (h *TimingHook) Priority() int { return PriorityAudit }

// PreDispatch records the start time on the context.
func (h *TimingHook) PreDispatch(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
	ctx.SetValue(timingStartKey, time.Now())
	return true
}

// PostDispatch calculates and reports the duration.
func (h *TimingHook) PostDispatch(cmd *command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	startVal, ok := ctx.GetValue(timingStartKey)
	if !ok {
		return
	}

	start, ok := startVal.(time.Time)
	if ok && h.callback != nil {
		h.callback(cmd.Type, time.Since(start))
	}
}

// FilterHook allows or blocks commands based on a filter function.
type FilterHook struct {
	name     string
	priority int
	filter   func(cmd *command.Command, ctx *execctx.ExecutionContext) (allow bool, reason string)
}

// FilterReasonKey is the context value key holding a filter rejection reason.
const FilterReasonKey = "filter_reason"

// NewFilterHook creates a command filter hook.
func NewFilterHook(name string, priority int, filter func(*command.Command, *execctx.ExecutionContext) (bool, string)) *FilterHook {
	return &FilterHook{
		name:     name,
		priority: priority,
		filter:   filter,
	}
}

// Name implements Hook.
func (h *FilterHook) Name() string { return h.name }

// Priority implements Hook.
func (h *FilterHook) Priority() int { return h.priority }

// PreDispatch applies the filter.
func (h *FilterHook) PreDispatch(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
	if h.filter == nil {
		return true
	}
	allow, reason := h.filter(cmd, ctx)
	if !allow && reason != "" {
		ctx.SetValue(FilterReasonKey, reason)
	}
	return allow
}
