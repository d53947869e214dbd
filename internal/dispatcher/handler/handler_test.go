package handler_test

import (
	"strings"
	"testing"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

func TestHandlerFunc(t *testing.T) {
	called := false
	fn := handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(command.New("test", nil), execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if fn.Priority() != 0 {
		t.Errorf("expected priority 0, got %d", fn.Priority())
	}
}

func TestHandlerFuncNil(t *testing.T) {
	fn := &handler.HandlerFunc{}
	result := fn.Handle(command.New("test", nil), execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

func TestHandlerFuncWithPriority(t *testing.T) {
	fn := handler.NewHandlerFuncWithPriority(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	}, 42)

	if fn.Priority() != 42 {
		t.Errorf("expected priority 42, got %d", fn.Priority())
	}
}

func TestBaseNamespaceHandler(t *testing.T) {
	h := handler.NewBaseNamespaceHandler("todo")
	h.Register("todo.toggle", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.SuccessWithMessage("toggled")
	})

	if h.Namespace() != "todo" {
		t.Errorf("expected namespace 'todo', got %q", h.Namespace())
	}
	if !h.CanHandle("todo.toggle") {
		t.Error("expected CanHandle(todo.toggle)")
	}
	if h.CanHandle("todo.delete") {
		t.Error("expected !CanHandle(todo.delete)")
	}

	adapter := handler.NewNamespaceAdapter(h)
	result := adapter.Handle(command.New("todo.toggle", nil), execctx.New())
	if result.Message != "toggled" {
		t.Errorf("expected message 'toggled', got %q", result.Message)
	}

	result = h.HandleCommand(command.New("todo.delete", nil), execctx.New())
	if !result.IsError() || !strings.Contains(result.Error.Error(), "todo.delete") {
		t.Errorf("expected unknown command error, got %+v", result)
	}
}
