package dispatcher_test

import (
	"sort"
	"testing"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

func todoNamespace() *handler.BaseNamespaceHandler {
	bnh := handler.NewBaseNamespaceHandler("todo")
	bnh.Register("todo.delete", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})
	return bnh
}

func TestRouterRegisterNamespace(t *testing.T) {
	router := dispatcher.NewRouter()
	router.RegisterNamespace("todo", todoNamespace())

	if !router.HasNamespace("todo") {
		t.Error("expected HasNamespace('todo') to return true")
	}

	router.UnregisterNamespace("todo")
	if router.HasNamespace("todo") {
		t.Error("expected HasNamespace('todo') to return false after unregister")
	}
}

func TestRouterRoute(t *testing.T) {
	router := dispatcher.NewRouter()
	router.RegisterNamespace("todo", todoNamespace())

	if router.Route("todo.delete") == nil {
		t.Fatal("expected non-nil handler for 'todo.delete'")
	}
	if router.Route("todo.rename") != nil {
		t.Error("expected nil handler for command the namespace cannot handle")
	}
	if router.Route("board.move") != nil {
		t.Error("expected nil handler for unknown namespace")
	}
	if router.Route(command.Navigate) != nil {
		t.Error("expected nil handler for command without namespace")
	}
}

func TestRouterFallback(t *testing.T) {
	router := dispatcher.NewRouter()
	fallback := handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})
	router.SetFallback(fallback)

	if router.Route("anything") != fallback {
		t.Error("expected fallback handler")
	}
	if !router.CanRoute("anything") {
		t.Error("expected CanRoute with fallback")
	}
}

func TestRouterNamespaces(t *testing.T) {
	router := dispatcher.NewRouter()
	router.RegisterNamespace("todo", todoNamespace())
	router.RegisterNamespace("board", handler.NewBaseNamespaceHandler("board"))

	got := router.Namespaces()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "board" || got[1] != "todo" {
		t.Errorf("expected [board todo], got %v", got)
	}
	if router.GetNamespaceHandler("board") == nil {
		t.Error("expected board handler")
	}
}

func TestExtractCommandName(t *testing.T) {
	tests := []struct {
		fullName string
		expected string
	}{
		{"todo.delete", "delete"},
		{"board.card.move", "card.move"},
		{"OS_NAVIGATE", "OS_NAVIGATE"},
		{"", ""},
	}

	for _, tc := range tests {
		got := dispatcher.ExtractCommandName(tc.fullName)
		if got != tc.expected {
			t.Errorf("ExtractCommandName(%q) = %q, want %q", tc.fullName, got, tc.expected)
		}
	}
}

func TestBuildCommandType(t *testing.T) {
	tests := []struct {
		namespace string
		name      string
		expected  string
	}{
		{"todo", "delete", "todo.delete"},
		{"", "save", "save"},
	}

	for _, tc := range tests {
		got := dispatcher.BuildCommandType(tc.namespace, tc.name)
		if got != tc.expected {
			t.Errorf("BuildCommandType(%q, %q) = %q, want %q", tc.namespace, tc.name, got, tc.expected)
		}
	}
}
