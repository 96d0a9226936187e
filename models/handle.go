// Package models holds the opaque owner-handle plumbing shared by users
// of the spatial packages: shapes and transforms carry a Ctx handle that
// the library round-trips without interpretation, and an OwnerTable maps
// handles back to owners without raw pointers riding along with the
// geometry.
package models

import "sync"

// Handle identifies an owner registered in an OwnerTable.
type Handle uint32

// A sequential handle generator.
type SequentialIDGenerator struct {
	mutex       sync.Mutex
	currentID   Handle
	reusableIDs map[Handle]struct{}
}

// New returns a sequential handle.
func (g *SequentialIDGenerator) New() Handle {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	for id := range g.reusableIDs {
		delete(g.reusableIDs, id)
		return id
	}

	g.currentID++
	return g.currentID
}

// Reuse marks the given handle as reusable. Reusable handles are returned
// in priority when using New.
func (g *SequentialIDGenerator) Reuse(id Handle) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.reusableIDs == nil {
		g.reusableIDs = make(map[Handle]struct{})
	}

	g.reusableIDs[id] = struct{}{}
}
