package models

import (
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeUnknownHandle tags errors returned when a handle is not
// registered.
const ErrTypeUnknownHandle = "unknown_handle"

// OwnerTable maps handles to owners. Handles are what shape and transform
// Ctx fields should carry; the table keeps ownership with the caller.
type OwnerTable struct {
	mutex  sync.RWMutex
	ids    SequentialIDGenerator
	owners map[Handle]any
}

func NewOwnerTable() *OwnerTable {
	return &OwnerTable{
		owners: make(map[Handle]any),
	}
}

// Register stores owner and returns its handle.
func (t *OwnerTable) Register(owner any) Handle {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := t.ids.New()
	t.owners[id] = owner
	return id
}

// Owner resolves a handle back to its owner.
func (t *OwnerTable) Owner(id Handle) (any, error) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	owner, ok := t.owners[id]
	if !ok {
		return nil, errors.New("handle is not registered").
			WithType(ErrTypeUnknownHandle).
			WithTag("handle", id)
	}
	return owner, nil
}

// Deregister drops a handle and marks it reusable. Deregistering an
// unknown handle is a no-op.
func (t *OwnerTable) Deregister(id Handle) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.owners[id]; !ok {
		return
	}

	delete(t.owners, id)
	t.ids.Reuse(id)
}

// Len returns the number of registered owners.
func (t *OwnerTable) Len() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return len(t.owners)
}
