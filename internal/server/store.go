package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/segment-tools-mcp/internal/selection"
)

// selectionStore keeps the selections created during a session, keyed by
// their ID, so later tool calls can refer to them.
//
// selectionStore is safe for concurrent use.
type selectionStore struct {
	mu   sync.RWMutex
	byID map[string]*selection.Selection
}

func newSelectionStore() *selectionStore {
	return &selectionStore{byID: make(map[string]*selection.Selection)}
}

// put stores s, replacing any selection with the same ID.
func (st *selectionStore) put(s *selection.Selection) {
	st.mu.Lock()
	st.byID[s.ID] = s
	st.mu.Unlock()
}

// get returns the selection with the given ID.
func (st *selectionStore) get(id string) (*selection.Selection, error) {
	if id == "" {
		return nil, fmt.Errorf("selection id is required")
	}
	st.mu.RLock()
	s, ok := st.byID[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown selection: %s", id)
	}
	return s, nil
}

// remove deletes the selection with the given ID and reports whether it
// existed.
func (st *selectionStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.byID[id]
	delete(st.byID, id)
	return ok
}

// list returns the IDs of all stored selections in sorted order.
func (st *selectionStore) list() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	ids := make([]string, 0, len(st.byID))
	for id := range st.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
