package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/kernel"
	"github.com/dshills/focuskit/internal/zone"
)

// Layout is a static description of zones, items and their rectangles.
//
//	focus: {zone: list, item: a}
//	zones:
//	  - id: list
//	    role: listbox
//	    rect: [0, 0, 200, 300]
//	    items:
//	      - {id: a, label: Apple, rect: [0, 0, 200, 20]}
//	      - {id: b, label: Banana, rect: [0, 20, 200, 20], disabled: true}
//
// Rectangles are [left, top, width, height].
type Layout struct {
	Focus LayoutFocus  `yaml:"focus"`
	Zones []LayoutZone `yaml:"zones"`
}

// LayoutFocus is the initial focus position.
type LayoutFocus struct {
	Zone string `yaml:"zone"`
	Item string `yaml:"item"`
}

// LayoutZone describes one zone. Loop and Seamless override the role preset.
type LayoutZone struct {
	ID       string       `yaml:"id"`
	Role     string       `yaml:"role"`
	Parent   string       `yaml:"parent"`
	Rect     []float64    `yaml:"rect"`
	Loop     *bool        `yaml:"loop"`
	Seamless bool         `yaml:"seamless"`
	Items    []LayoutItem `yaml:"items"`
}

// LayoutItem describes one item of a zone.
type LayoutItem struct {
	ID         string       `yaml:"id"`
	Label      string       `yaml:"label"`
	Rect       []float64    `yaml:"rect"`
	Disabled   bool         `yaml:"disabled"`
	Expandable bool         `yaml:"expandable"`
	Value      *LayoutValue `yaml:"value"`
}

// LayoutValue is the range of a value item such as a slider.
type LayoutValue struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
	Now  float64 `yaml:"now"`
}

var (
	errEmptyZoneID = errors.New("layout: zone without id")
	errEmptyItemID = errors.New("layout: item without id")
	errDuplicateID = errors.New("layout: duplicate id")
	errBadRect     = errors.New("layout: rect must have four values")
	errUnknownRole = errors.New("layout: unknown role")
)

// LoadLayout reads a YAML layout file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout %s: %w", path, err)
	}
	l, err := DecodeLayout(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// DecodeLayout decodes and validates a YAML layout.
func DecodeLayout(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Validate checks ids, roles and rectangles.
func (l *Layout) Validate() error {
	var errs []error
	zones := make(map[string]bool)
	items := make(map[string]bool)
	for _, z := range l.Zones {
		switch {
		case z.ID == "":
			errs = append(errs, errEmptyZoneID)
			continue
		case zones[z.ID]:
			errs = append(errs, fmt.Errorf("%w: zone %q", errDuplicateID, z.ID))
		}
		zones[z.ID] = true
		if z.Role != "" && !zone.IsKnownRole(zone.Role(z.Role)) {
			errs = append(errs, fmt.Errorf("%w: %q in zone %q", errUnknownRole, z.Role, z.ID))
		}
		if _, err := parseRect(z.Rect); err != nil {
			errs = append(errs, fmt.Errorf("zone %q: %w", z.ID, err))
		}
		for _, it := range z.Items {
			switch {
			case it.ID == "":
				errs = append(errs, fmt.Errorf("zone %q: %w", z.ID, errEmptyItemID))
				continue
			case items[it.ID]:
				errs = append(errs, fmt.Errorf("%w: item %q", errDuplicateID, it.ID))
			}
			items[it.ID] = true
			if _, err := parseRect(it.Rect); err != nil {
				errs = append(errs, fmt.Errorf("item %q: %w", it.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Viewport returns the rectangles of the layout.
func (l *Layout) Viewport() *geom.MapViewport {
	vp := geom.NewMapViewport()
	for _, z := range l.Zones {
		if r, _ := parseRect(z.Rect); !r.IsEmpty() {
			vp.SetZone(z.ID, r)
		}
		for _, it := range z.Items {
			if r, _ := parseRect(it.Rect); !r.IsEmpty() {
				vp.SetItem(it.ID, r)
			}
		}
	}
	return vp
}

// Metadata converts a layout zone to zone metadata.
func (z LayoutZone) Metadata() zone.Metadata {
	role := zone.Role(z.Role)
	if role == "" {
		role = zone.RoleGroup
	}
	meta := zone.Metadata{
		ParentID: z.Parent,
		Config:   zone.Preset(role),
		Items:    make([]string, 0, len(z.Items)),
		Labels:   make(map[string]string),
		Disabled: make(map[string]bool),
		Values:   make(map[string]zone.ValueRange),
		Parents:  make(map[string]bool),
	}
	if z.Loop != nil {
		meta.Config.Loop = *z.Loop
	}
	meta.Config.Seamless = meta.Config.Seamless || z.Seamless

	for _, it := range z.Items {
		meta.Items = append(meta.Items, it.ID)
		if it.Label != "" {
			meta.Labels[it.ID] = it.Label
		}
		if it.Disabled {
			meta.Disabled[it.ID] = true
		}
		if it.Expandable {
			meta.Parents[it.ID] = true
		}
		if v := it.Value; v != nil {
			meta.Values[it.ID] = zone.ValueRange{Min: v.Min, Max: v.Max, Step: v.Step, Now: v.Now}
		}
	}
	return meta
}

// Apply registers the layout's zones in file order and moves focus to the
// layout's initial position.
func (l *Layout) Apply(k *kernel.Kernel) error {
	for _, z := range l.Zones {
		if res := k.Register(z.ID, z.Metadata()); res.Status == handler.StatusError {
			return fmt.Errorf("registering zone %q: %w", z.ID, res.Error)
		}
	}
	if l.Focus.Zone == "" {
		return nil
	}
	res := k.Dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: l.Focus.Zone, ItemID: l.Focus.Item}))
	if res.Status == handler.StatusError {
		return fmt.Errorf("initial focus: %w", res.Error)
	}
	return nil
}

// openLayout loads a layout and returns a kernel with it applied.
func (a *App) openLayout(cmd *cobra.Command, path string) (*kernel.Kernel, *Layout, error) {
	l, err := LoadLayout(path)
	if err != nil {
		return nil, nil, err
	}
	opts := kernelOptions()
	opts.Viewport = l.Viewport()
	k, err := a.newKernel(cmd, opts)
	if err != nil {
		return nil, nil, err
	}
	if err := l.Apply(k); err != nil {
		k.Dispose()
		return nil, nil, err
	}
	return k, l, nil
}

// kernelOptions keeps the CLI away from the system clipboard.
func kernelOptions() kernel.Options {
	return kernel.Options{Clipboard: &clipboard.Memory{}}
}

func parseRect(v []float64) (geom.Rect, error) {
	switch len(v) {
	case 0:
		return geom.Rect{}, nil
	case 4:
		return geom.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
	default:
		return geom.Rect{}, fmt.Errorf("%w, got %d", errBadRect, len(v))
	}
}
