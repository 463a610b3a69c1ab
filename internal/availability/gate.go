// Package availability wraps the room catalog's check/lock/unlock calls with
// the locked-state invariant: for one room, check-then-lock is atomic with
// respect to concurrent callers, so two overlapping requests can never both
// observe availability and both lock.
package availability

import (
	"context"
	"sync"

	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/internal/rooms"
)

// Gate is the availability collaborator the saga talks to.
type Gate interface {
	// CheckAndLock atomically checks the range and locks it when free.
	// A false result with nil error is a genuine overlap, not a fault.
	CheckAndLock(ctx context.Context, roomID string, r models.DateRange) (bool, error)
	// Unlock releases a held range. Idempotent: unlocking a range that is
	// not held is a no-op.
	Unlock(ctx context.Context, roomID string, r models.DateRange) error
}

type gate struct {
	catalog rooms.Catalog

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewGate(catalog rooms.Catalog) Gate {
	return &gate{catalog: catalog, locks: make(map[string]*sync.Mutex)}
}

// roomMutex returns the per-room mutex, creating it on first use.
func (g *gate) roomMutex(roomID string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, ok := g.locks[roomID]
	if !ok {
		m = &sync.Mutex{}
		g.locks[roomID] = m
	}
	return m
}

func (g *gate) CheckAndLock(ctx context.Context, roomID string, r models.DateRange) (bool, error) {
	m := g.roomMutex(roomID)
	m.Lock()
	defer m.Unlock()

	free, err := g.catalog.CheckAvailability(ctx, roomID, r)
	if err != nil {
		return false, err
	}
	if !free {
		return false, nil
	}
	if err := g.catalog.Lock(ctx, roomID, r); err != nil {
		return false, err
	}
	return true, nil
}

func (g *gate) Unlock(ctx context.Context, roomID string, r models.DateRange) error {
	m := g.roomMutex(roomID)
	m.Lock()
	defer m.Unlock()
	return g.catalog.Unlock(ctx, roomID, r)
}
