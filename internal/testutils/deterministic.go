// Package testutils provides deterministic identifiers and transcript helpers
// so test-mode runs and golden comparisons produce stable output.
package testutils

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	idCounter uint64
	idMutex   sync.Mutex
)

// GenerateSessionID returns a random UUID, or in test mode a deterministic
// one of the form 00000001-0000-4000-8000-000000000001.
func GenerateSessionID(testMode bool) string {
	if !testMode {
		return uuid.NewString()
	}

	idMutex.Lock()
	defer idMutex.Unlock()

	idCounter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", idCounter, idCounter)
}

// ResetTestCounters resets the deterministic counters.
func ResetTestCounters() {
	idMutex.Lock()
	defer idMutex.Unlock()
	idCounter = 0
}
