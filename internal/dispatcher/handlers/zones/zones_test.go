package zones_test

import (
	"testing"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/focus"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/zones"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

func newDispatcher(reg *zone.Registry) *dispatcher.Dispatcher {
	d := dispatcher.NewWithDefaults()
	d.SetZones(reg)
	d.RegisterSet(zones.New())
	d.RegisterSet(focus.New())
	return d
}

func TestRegisterAddsZone(t *testing.T) {
	reg := zone.NewRegistry()
	d := newDispatcher(reg)

	res := d.Dispatch(command.New(command.ZoneRegister, zones.RegisterPayload{
		ID:   "list",
		Meta: zone.Metadata{Config: zone.Preset(zone.RoleListbox), Items: []string{"a", "b"}},
	}))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if !reg.Has("list") {
		t.Fatal("expected zone 'list' to be registered")
	}
	if d.State().Focus.ActiveZoneID != "" {
		t.Errorf("expected no active zone, got %q", d.State().Focus.ActiveZoneID)
	}
}

func TestRegisterAutoFocus(t *testing.T) {
	reg := zone.NewRegistry()
	d := newDispatcher(reg)

	res := d.Dispatch(command.New(command.ZoneRegister, zones.RegisterPayload{
		ID:   "menu",
		Meta: zone.Metadata{Config: zone.Preset(zone.RoleMenu), Items: []string{"open", "save"}},
	}))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}

	f := d.State().Focus
	if f.ActiveZoneID != "menu" {
		t.Errorf("expected active zone 'menu', got %q", f.ActiveZoneID)
	}
	if got := f.Zone("menu").FocusedItemID; got != "open" {
		t.Errorf("expected focus on 'open', got %q", got)
	}
	if len(res.Effects) == 0 || res.Effects[0].Kind != handler.EffectFocus {
		t.Errorf("expected a focus effect, got %+v", res.Effects)
	}
}

func TestRegisterErrors(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("a", zone.Metadata{ParentID: "b"})
	d := newDispatcher(reg)

	res := d.Dispatch(command.New(command.ZoneRegister, zones.RegisterPayload{}))
	if res.Status != handler.StatusError {
		t.Errorf("expected error for empty id, got %s", res.Status)
	}

	res = d.Dispatch(command.New(command.ZoneRegister, zones.RegisterPayload{
		ID:   "b",
		Meta: zone.Metadata{ParentID: "a"},
	}))
	if res.Status != handler.StatusError {
		t.Errorf("expected error for parent cycle, got %s", res.Status)
	}
	if reg.Has("b") {
		t.Error("expected cyclic zone to stay unregistered")
	}
}

func TestUnregisterReturnsToParent(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("page", zone.Metadata{Config: zone.Preset(zone.RoleToolbar), Items: []string{"x", "y"}})
	reg.Register("dialog", zone.Metadata{ParentID: "page", Config: zone.Preset(zone.RoleDialog), Items: []string{"ok"}})
	d := newDispatcher(reg)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().
		WithZone("page", state.ZoneState{}.WithFocus("y", 1)).
		WithZone("dialog", state.ZoneState{}.WithFocus("ok", 0)).
		WithActive("dialog")})

	res := d.Dispatch(command.New(command.ZoneUnregister, zones.UnregisterPayload{ID: "dialog"}))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}
	if reg.Has("dialog") {
		t.Error("expected zone 'dialog' to be removed")
	}

	f := d.State().Focus
	if f.HasZone("dialog") {
		t.Error("expected dialog state to be dropped")
	}
	if f.ActiveZoneID != "page" {
		t.Errorf("expected active zone 'page', got %q", f.ActiveZoneID)
	}
	if got := f.Zone("page").FocusedItemID; got != "y" {
		t.Errorf("expected focus restored to 'y', got %q", got)
	}
}

func TestUnregisterInactiveZone(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("a", zone.Metadata{Items: []string{"1"}})
	reg.Register("b", zone.Metadata{Items: []string{"2"}})
	d := newDispatcher(reg)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().
		WithZone("a", state.ZoneState{}.WithFocus("1", 0)).
		WithZone("b", state.ZoneState{}.WithFocus("2", 0)).
		WithActive("a")})

	d.Dispatch(command.New(command.ZoneUnregister, zones.UnregisterPayload{ID: "b"}))

	f := d.State().Focus
	if f.ActiveZoneID != "a" || f.Zone("a").FocusedItemID != "1" {
		t.Errorf("expected focus to stay on a/1, got %+v", f)
	}
	if f.HasZone("b") {
		t.Error("expected state for 'b' to be dropped")
	}

	res := d.Dispatch(command.New(command.ZoneUnregister, zones.UnregisterPayload{ID: "b"}))
	if res.Status != handler.StatusNoOp {
		t.Errorf("expected no-op for unknown zone, got %s", res.Status)
	}
}

func TestUnregisterRootRecovers(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("a", zone.Metadata{Items: []string{"1"}})
	reg.Register("b", zone.Metadata{Items: []string{"2"}})
	d := newDispatcher(reg)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().
		WithZone("a", state.ZoneState{}.WithFocus("1", 0)).
		WithActive("a")})

	d.Dispatch(command.New(command.ZoneUnregister, zones.UnregisterPayload{ID: "a"}))

	f := d.State().Focus
	if f.ActiveZoneID != "b" || f.Zone("b").FocusedItemID != "2" {
		t.Errorf("expected recovery to b/2, got active %q item %q", f.ActiveZoneID, f.Zone("b").FocusedItemID)
	}
}

func TestItemsRecoverRemovedFocus(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("list", zone.Metadata{Items: []string{"a", "b", "c"}})
	d := newDispatcher(reg)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().
		WithZone("list", state.ZoneState{}.WithFocus("b", 1)).
		WithActive("list")})

	res := d.Dispatch(command.New(command.ZoneItems, zones.ItemsPayload{ID: "list", Items: []string{"a", "c"}}))
	if !res.IsOK() {
		t.Fatalf("expected ok, got %s", res.Status)
	}

	meta, _ := reg.Get("list")
	if len(meta.Items) != 2 {
		t.Errorf("expected 2 items, got %v", meta.Items)
	}
	if got := d.State().Focus.Zone("list").FocusedItemID; got != "c" {
		t.Errorf("expected focus to move to 'c', got %q", got)
	}
}

func TestItemsKeepFocus(t *testing.T) {
	reg := zone.NewRegistry()
	reg.Register("list", zone.Metadata{Items: []string{"a", "b"}})
	d := newDispatcher(reg)
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().
		WithZone("list", state.ZoneState{}.WithFocus("a", 0)).
		WithActive("list")})

	d.Dispatch(command.New(command.ZoneItems, zones.ItemsPayload{ID: "list", Items: []string{"b", "a"}}))
	if got := d.State().Focus.Zone("list").FocusedItemID; got != "a" {
		t.Errorf("expected focus to stay on 'a', got %q", got)
	}

	res := d.Dispatch(command.New(command.ZoneItems, zones.ItemsPayload{ID: "list", Items: []string{"b", "a"}}))
	if res.Status != handler.StatusNoOp {
		t.Errorf("expected no-op for unchanged items, got %s", res.Status)
	}
	res = d.Dispatch(command.New(command.ZoneItems, zones.ItemsPayload{ID: "missing"}))
	if res.Status != handler.StatusNoOp {
		t.Errorf("expected no-op for unknown zone, got %s", res.Status)
	}
}
