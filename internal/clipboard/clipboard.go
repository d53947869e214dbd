// Package clipboard holds the system clipboard adapter and the structured
// clipboard used for copy and paste between zones.
//
// Plain text goes to the system clipboard. The structured payload (items
// plus a kind tag) stays in-process, where paste offers it to the focused
// zone and then to each ancestor until one accepts it.
package clipboard

import (
	"errors"
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/focuskit/internal/command"
)

// ErrUnavailable indicates no system clipboard is available.
var ErrUnavailable = errors.New("clipboard: system clipboard unavailable")

// System is the host's plain-text clipboard.
type System interface {
	WriteText(text string) error
	ReadText() (string, error)
}

// OS is the system clipboard of the local machine.
type OS struct{}

// WriteText implements System.
func (OS) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(strings.ReplaceAll(text, "\r\n", "\n"))
}

// ReadText implements System.
func (OS) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

// Memory is an in-process System for headless hosts and tests.
type Memory struct {
	mu   sync.Mutex
	text string
}

// WriteText implements System.
func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// ReadText implements System.
func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Store is the structured clipboard.
type Store struct {
	mu      sync.RWMutex
	payload command.ClipboardPayload
	set     bool
}

// NewStore creates an empty structured clipboard.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the stored payload.
func (s *Store) Set(p command.ClipboardPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = p
	s.set = true
}

// Get returns the stored payload.
func (s *Store) Get() (command.ClipboardPayload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload, s.set
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = command.ClipboardPayload{}
	s.set = false
}
