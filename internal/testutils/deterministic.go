package testutils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// Thread-safe counter behind GenerateID in test mode
	idCounter uint64
	idMutex   sync.Mutex
)

// SequentialIDs produces deterministic UUID-shaped identifiers:
// 00000001-0000-4000-8000-000000000001, 00000002-0000-4000-8000-000000000002, ...
// The zero value is ready to use.
type SequentialIDs struct {
	mu sync.Mutex
	n  uint64
}

// Next returns the next identifier.
func (g *SequentialIDs) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return sequentialUUID(g.n)
}

// GenerateID returns a random UUID, or the next shared sequential one in test mode.
func GenerateID(testMode bool) string {
	if !testMode {
		return uuid.NewString()
	}
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter++
	return sequentialUUID(idCounter)
}

// ResetTestCounters resets the shared sequential counter.
// This should only be called from test code to ensure consistent test runs.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}

// Format: xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx, version 4 with variant 8.
func sequentialUUID(n uint64) string {
	return uuid.MustParse(fmt.Sprintf("%08x-0000-4000-8000-%012x", n, n)).String()
}
