package persist

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Merge deep-merges src onto dst and returns the result. Nested objects
// merge key by key; any other src value replaces the dst value. Neither
// argument is modified.
func Merge(dst, src map[string]any) map[string]any {
	out := maps.Clone(dst)
	if out == nil {
		out = make(map[string]any, len(src))
	}
	for k, sv := range src {
		sm, sok := sv.(map[string]any)
		dm, dok := out[k].(map[string]any)
		if sok && dok {
			out[k] = Merge(dm, sm)
			continue
		}
		out[k] = sv
	}
	return out
}

// Hydrate merges the persisted JSON document onto defaults and decodes the
// result into a value of type T. An empty persisted document yields
// defaults.
func Hydrate[T any](defaults T, persisted []byte) (T, error) {
	if len(persisted) == 0 {
		return defaults, nil
	}

	base, err := toObject(defaults)
	if err != nil {
		return defaults, err
	}
	var saved map[string]any
	if err := json.Unmarshal(persisted, &saved); err != nil {
		return defaults, fmt.Errorf("persist: decode: %w", err)
	}
	if saved == nil {
		return defaults, ErrNotObject
	}

	merged, err := json.Marshal(Merge(base, saved))
	if err != nil {
		return defaults, fmt.Errorf("persist: encode: %w", err)
	}
	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return defaults, fmt.Errorf("persist: decode merged: %w", err)
	}
	return out, nil
}

func toObject(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("persist: encode defaults: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, err)
	}
	if m == nil {
		return nil, ErrNotObject
	}
	return m, nil
}
