package handler

import (
	"fmt"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/state"
)

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the command was cancelled by middleware.
	StatusCancelled
	// StatusBlocked indicates a when guard rejected the command.
	StatusBlocked
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	case StatusBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// EffectKind is the kind of a side effect requested by a handler.
type EffectKind uint8

const (
	// EffectFocus moves host focus to an item.
	EffectFocus EffectKind = iota
	// EffectScroll scrolls an item into view.
	EffectScroll
	// EffectAnnounce speaks text through a live region.
	EffectAnnounce
	// EffectClipboard writes text to the system clipboard.
	EffectClipboard
)

// String returns a string representation of the effect kind.
func (k EffectKind) String() string {
	switch k {
	case EffectFocus:
		return "focus"
	case EffectScroll:
		return "scroll"
	case EffectAnnounce:
		return "announce"
	case EffectClipboard:
		return "clipboard"
	default:
		return "unknown"
	}
}

// Effect is a side effect applied by sensors after a dispatch commits.
type Effect struct {
	Kind   EffectKind
	ZoneID string
	ItemID string
	Text   string
}

// FocusEffect returns a focus effect for an item.
func FocusEffect(zoneID, itemID string) Effect {
	return Effect{Kind: EffectFocus, ZoneID: zoneID, ItemID: itemID}
}

// ScrollEffect returns a scroll-into-view effect for an item.
func ScrollEffect(zoneID, itemID string) Effect {
	return Effect{Kind: EffectScroll, ZoneID: zoneID, ItemID: itemID}
}

// Result represents the outcome of handling a command.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message.
	Message string

	// Focus is the new focus state. Nil leaves focus unchanged.
	Focus *state.Focus

	// Data is the new application data when DataSet is true.
	Data    any
	DataSet bool

	// Effects are side effects for sensors to apply.
	Effects []Effect

	// Dispatch holds follow-up commands the kernel dispatches after this
	// one commits.
	Dispatch []command.Command

	// Values holds handler-specific return values.
	Values map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// NoOpWithMessage creates a no-operation result with a message.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Result{
		Status: StatusError,
		Error:  fmt.Errorf(format, args...),
	}
}

// Cancelled creates a cancelled result.
func Cancelled() Result {
	return Result{Status: StatusCancelled}
}

// CancelledWithMessage creates a cancelled result with a message.
func CancelledWithMessage(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// Blocked creates a guard-blocked result.
func Blocked() Result {
	return Result{Status: StatusBlocked}
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithFocus returns a copy of the result with a new focus state.
func (r Result) WithFocus(f state.Focus) Result {
	r.Focus = &f
	return r
}

// WithData returns a copy of the result with new application data.
func (r Result) WithData(data any) Result {
	r.Data = data
	r.DataSet = true
	return r
}

// WithEffect returns a copy of the result with an effect added.
func (r Result) WithEffect(e Effect) Result {
	r.Effects = append(r.Effects, e)
	return r
}

// WithDispatch returns a copy of the result with follow-up commands added.
func (r Result) WithDispatch(cmds ...command.Command) Result {
	r.Dispatch = append(r.Dispatch, cmds...)
	return r
}

// WithValue returns a copy of the result with a value added.
func (r Result) WithValue(key string, value any) Result {
	values := make(map[string]any, len(r.Values)+1)
	for k, v := range r.Values {
		values[k] = v
	}
	values[key] = value
	r.Values = values
	return r
}

// GetValue retrieves a value from the result.
func (r Result) GetValue(key string) (any, bool) {
	if r.Values == nil {
		return nil, false
	}
	v, ok := r.Values[key]
	return v, ok
}

// GetValueBool retrieves a bool value from the result.
func (r Result) GetValueBool(key string) bool {
	if v, ok := r.GetValue(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Changed reports whether the result commits new focus or data.
func (r Result) Changed() bool {
	return r.Focus != nil || r.DataSet
}
