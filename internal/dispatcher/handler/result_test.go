package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/state"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.StatusBlocked, "blocked"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		result handler.Result
		status handler.ResultStatus
	}{
		{"success", handler.Success(), handler.StatusOK},
		{"noop", handler.NoOp(), handler.StatusNoOp},
		{"error", handler.Error(errors.New("boom")), handler.StatusError},
		{"errorf", handler.Errorf("bad %d", 1), handler.StatusError},
		{"cancelled", handler.Cancelled(), handler.StatusCancelled},
		{"blocked", handler.Blocked(), handler.StatusBlocked},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.result.Status != tc.status {
				t.Errorf("expected %v, got %v", tc.status, tc.result.Status)
			}
			if tc.result.IsError() != (tc.status == handler.StatusError) {
				t.Errorf("IsError() = %v for %v", tc.result.IsError(), tc.status)
			}
		})
	}
}

func TestResultBuilders(t *testing.T) {
	f := state.NewFocus().WithActive("list")
	r := handler.Success().
		WithMessage("moved").
		WithFocus(f).
		WithData([]string{"a"}).
		WithEffect(handler.FocusEffect("list", "a")).
		WithDispatch(command.New("todo.save", nil)).
		WithValue("rejected", true)

	if r.Message != "moved" {
		t.Errorf("expected message 'moved', got %q", r.Message)
	}
	if r.Focus == nil || r.Focus.ActiveZoneID != "list" {
		t.Errorf("expected focus on list, got %+v", r.Focus)
	}
	if !r.DataSet {
		t.Error("expected DataSet")
	}
	if !r.Changed() {
		t.Error("expected Changed()")
	}
	if len(r.Effects) != 1 || r.Effects[0].Kind != handler.EffectFocus || r.Effects[0].ItemID != "a" {
		t.Errorf("unexpected effects %+v", r.Effects)
	}
	if len(r.Dispatch) != 1 || r.Dispatch[0].Type != "todo.save" {
		t.Errorf("unexpected follow-ups %+v", r.Dispatch)
	}
	if !r.GetValueBool("rejected") {
		t.Error("expected rejected value")
	}
	if handler.NoOp().Changed() {
		t.Error("NoOp() should not be Changed()")
	}
}

func TestWithValueDoesNotAlias(t *testing.T) {
	base := handler.Success().WithValue("a", 1)
	derived := base.WithValue("b", 2)

	if _, ok := base.GetValue("b"); ok {
		t.Error("WithValue mutated the original result")
	}
	if v, _ := derived.GetValue("a"); v != 1 {
		t.Errorf("expected a=1, got %v", v)
	}
}

func TestEffectKindString(t *testing.T) {
	if handler.EffectScroll.String() != "scroll" {
		t.Errorf("expected scroll, got %s", handler.EffectScroll.String())
	}
	if handler.ScrollEffect("z", "i").Kind != handler.EffectScroll {
		t.Error("ScrollEffect kind mismatch")
	}
}
