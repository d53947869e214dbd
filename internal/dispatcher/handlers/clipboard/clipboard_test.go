package clipboard_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	handlers "github.com/dshills/focuskit/internal/dispatcher/handlers/clipboard"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

type failingSystem struct{}

func (failingSystem) WriteText(string) error { return errors.New("no display") }
func (failingSystem) ReadText() (string, error) { return "", errors.New("no display") }

func setup(t *testing.T, zones *zone.Registry, system clipboard.System, logger *slog.Logger) (*dispatcher.Dispatcher, *handlers.Handler) {
	t.Helper()
	h := handlers.New(nil, system, logger)
	d := dispatcher.NewWithDefaults()
	d.SetZones(zones)
	d.RegisterSet(h)
	return d, h
}

func TestCopyWritesBothClipboards(t *testing.T) {
	var cursors []zone.Cursor
	zones := zone.NewRegistry()
	zones.Register("list", zone.Metadata{
		Config: zone.Preset(zone.RoleGrid),
		Items:  []string{"a", "b"},
		Callbacks: zone.Callbacks{
			OnCopy: func(cur zone.Cursor) []command.Command {
				cursors = append(cursors, cur)
				return []command.Command{command.New(command.ClipboardWrite, command.ClipboardPayload{
					Text:  strings.Join(cur.Targets(), "\n"),
					Kind:  "todo",
					Items: []any{"a", "b"},
				})}
			},
		},
	})
	sys := &clipboard.Memory{}
	d, h := setup(t, zones, sys, nil)
	zs := state.ZoneState{}.WithFocus("a", 0).WithSelection([]string{"a", "b"}, "b")
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithZone("list", zs).WithActive("list")})

	if res := d.Dispatch(command.New(command.Copy, nil)); !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}

	if len(cursors) != 1 {
		t.Fatalf("expected one OnCopy call, got %d", len(cursors))
	}
	if text, _ := sys.ReadText(); text != "a\nb" {
		t.Errorf("expected system text %q, got %q", "a\nb", text)
	}
	p, ok := h.Store().Get()
	if !ok || p.Kind != "todo" || len(p.Items) != 2 {
		t.Errorf("unexpected stored payload %+v", p)
	}
}

func TestCopyWithoutCallback(t *testing.T) {
	zones := zone.NewRegistry()
	zones.Register("list", zone.Metadata{Config: zone.Preset(zone.RoleGrid), Items: []string{"a"}})
	d, _ := setup(t, zones, nil, nil)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("list")})

	for _, typ := range []string{command.Copy, command.Cut} {
		if res := d.Dispatch(command.New(typ, nil)); res.Status != handler.StatusNoOp {
			t.Errorf("%s: expected no-op, got %s", typ, res.Status)
		}
	}
}

func TestSystemWriteFailureIsSwallowed(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	d, h := setup(t, zone.NewRegistry(), failingSystem{}, logger)

	res := d.Dispatch(command.New(command.ClipboardWrite, command.ClipboardPayload{Text: "x"}))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if _, ok := h.Store().Get(); !ok {
		t.Error("expected structured store to hold the payload")
	}
	if !strings.Contains(buf.String(), "clipboard write failed") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func pasteZones(accepting map[string]bool, calls *[]string) *zone.Registry {
	onPaste := func(id string) zone.PasteCallback {
		return func(cur zone.Cursor, payload any) ([]command.Command, bool) {
			*calls = append(*calls, id)
			if !accepting[id] {
				return nil, false
			}
			return []command.Command{command.New("board.insert", payload)}, true
		}
	}
	zones := zone.NewRegistry()
	zones.Register("board", zone.Metadata{Config: zone.Preset(zone.RoleGroup), Items: []string{"col"},
		Callbacks: zone.Callbacks{OnPaste: onPaste("board")}})
	zones.Register("column", zone.Metadata{ParentID: "board", Config: zone.Preset(zone.RoleGroup), Items: []string{"c1"}})
	zones.Register("cards", zone.Metadata{ParentID: "column", Config: zone.Preset(zone.RoleListbox), Items: []string{"k1"},
		Callbacks: zone.Callbacks{OnPaste: onPaste("cards")}})
	return zones
}

func TestPasteBubbles(t *testing.T) {
	var calls []string
	var inserted []any
	zones := pasteZones(map[string]bool{"board": true}, &calls)
	d, h := setup(t, zones, nil, nil)
	d.RegisterHandlerFunc("board.insert", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		inserted = append(inserted, cmd.Payload)
		return handler.Success()
	})
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("cards")})
	h.Store().Set(command.ClipboardPayload{Kind: "card", Items: []any{"k9"}})

	res := d.Dispatch(command.New(command.Paste, nil))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if len(calls) != 2 || calls[0] != "cards" || calls[1] != "board" {
		t.Errorf("expected offers to cards then board, got %v", calls)
	}
	if v, _ := res.GetValue(handlers.AcceptedKey); v != "board" {
		t.Errorf("expected board to accept, got %v", v)
	}
	if len(inserted) != 1 {
		t.Fatalf("expected one follow-up, got %d", len(inserted))
	}
	if p := inserted[0].(command.ClipboardPayload); p.Kind != "card" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestPasteRejected(t *testing.T) {
	var calls []string
	zones := pasteZones(map[string]bool{}, &calls)
	d, h := setup(t, zones, nil, nil)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("cards")})
	h.Store().Set(command.ClipboardPayload{Kind: "card"})

	res := d.Dispatch(command.New(command.Paste, nil))
	if res.Status != handler.StatusNoOp || res.Message != handlers.MessageRejected {
		t.Errorf("expected rejected no-op, got %s %q", res.Status, res.Message)
	}
}

func TestPasteFallsBackToSystemText(t *testing.T) {
	var calls []string
	zones := pasteZones(map[string]bool{"cards": true}, &calls)
	sys := &clipboard.Memory{}
	d, _ := setup(t, zones, sys, nil)
	d.RegisterHandlerFunc("board.insert", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success()
	})
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("cards")})

	if res := d.Dispatch(command.New(command.Paste, nil)); res.Message != handlers.MessageEmpty {
		t.Errorf("expected empty clipboard, got %s %q", res.Status, res.Message)
	}

	_ = sys.WriteText("from outside")
	if res := d.Dispatch(command.New(command.Paste, nil)); !res.IsOK() {
		t.Errorf("expected system text to paste, got %s", res.Status)
	}
}
