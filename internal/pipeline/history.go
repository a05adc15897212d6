package pipeline

import (
	"sync"

	"github.com/panbanda/waypoint/pkg/models"
)

// History is the append-only record of phase executions in a Session.
// It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	records []models.PhaseRecord
}

// Append adds rec to the end of the history. A timestamp earlier than the
// previous record's is raised to it so the sequence stays monotonic.
func (h *History) Append(rec models.PhaseRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.records); n > 0 {
		if last := h.records[n-1].Timestamp; rec.Timestamp.Before(last) {
			rec.Timestamp = last
		}
	}
	h.records = append(h.records, rec)
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// All returns a copy of every record in order.
func (h *History) All() []models.PhaseRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]models.PhaseRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Last returns a copy of the most recent n records in order.
func (h *History) Last(n int) []models.PhaseRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 {
		return []models.PhaseRecord{}
	}
	if n > len(h.records) {
		n = len(h.records)
	}
	out := make([]models.PhaseRecord, n)
	copy(out, h.records[len(h.records)-n:])
	return out
}
