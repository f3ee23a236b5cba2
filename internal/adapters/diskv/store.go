// Package diskv persists host-owned view state (selection and collapsed groups)
// in a diskv key/value directory.
package diskv

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	dv "github.com/peterbourgon/diskv/v3"

	"github.com/example/tabdeck/internal/ports/secondary"
)

const (
	selectionKey = "selection"
	collapsedKey = "collapsed"
)

// Store implements secondary.SelectionStore and secondary.ViewStateStore.
type Store struct {
	mu sync.Mutex
	d  *dv.Diskv
}

// Open creates a Store rooted at dir.
func Open(dir string) *Store {
	return &Store{d: dv.New(dv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})}
}

type selectionDoc struct {
	IDs    []int `json:"ids"`
	LastID int   `json:"last_id"`
}

// GetSelection returns the persisted selection, empty when nothing was saved.
func (s *Store) GetSelection(ctx context.Context) (*secondary.SelectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc selectionDoc
	if err := s.read(selectionKey, &doc); err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}
	return &secondary.SelectionRecord{IDs: doc.IDs, LastID: doc.LastID}, nil
}

// SetSelection replaces the selection.
func (s *Store) SetSelection(ctx context.Context, sel *secondary.SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sel == nil || len(sel.IDs) == 0 {
		return s.erase(selectionKey)
	}
	if err := s.write(selectionKey, selectionDoc{IDs: sel.IDs, LastID: sel.LastID}); err != nil {
		return fmt.Errorf("failed to write selection: %w", err)
	}
	return nil
}

// ClearSelection empties the selection.
func (s *Store) ClearSelection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.erase(selectionKey)
}

// Collapsed returns the ids of collapsed groups.
func (s *Store) Collapsed(ctx context.Context) (map[int]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int
	if err := s.read(collapsedKey, &ids); err != nil {
		return nil, fmt.Errorf("failed to read collapsed groups: %w", err)
	}
	out := make(map[int]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// SetCollapsed records a group's collapsed flag.
func (s *Store) SetCollapsed(ctx context.Context, groupID int, collapsed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int
	if err := s.read(collapsedKey, &ids); err != nil {
		return fmt.Errorf("failed to read collapsed groups: %w", err)
	}
	set := make(map[int]bool, len(ids)+1)
	for _, id := range ids {
		set[id] = true
	}
	if collapsed {
		set[groupID] = true
	} else {
		delete(set, groupID)
	}

	ids = ids[:0]
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if err := s.write(collapsedKey, ids); err != nil {
		return fmt.Errorf("failed to write collapsed groups: %w", err)
	}
	return nil
}

// read decodes key into v. A missing key leaves v untouched.
func (s *Store) read(key string, v any) error {
	if !s.d.Has(key) {
		return nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.d.Write(key, data)
}

func (s *Store) erase(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to erase %s: %w", key, err)
	}
	return nil
}

var (
	_ secondary.SelectionStore = (*Store)(nil)
	_ secondary.ViewStateStore = (*Store)(nil)
)
