package tokebi

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tokebi-analytics/tokebi-go/adapters"
)

// OfflineStore is the bounded, storage-backed retry buffer for batches that
// failed delivery. While the process runs the store is only appended to; the
// single load happens at startup, after which the backing record is deleted
// and the in-memory queue is the sole source of truth.
type OfflineStore struct {
	storage   StorageAdapter
	logger    LoggerAdapter
	maxEvents int

	// Guards against Persist and LoadAndClear interleaving on the same
	// record, e.g. a flush failure racing the startup replay.
	mu sync.Mutex
}

// NewOfflineStore creates an OfflineStore retaining at most maxEvents events.
func NewOfflineStore(storage StorageAdapter, logger LoggerAdapter, maxEvents int) *OfflineStore {
	return &OfflineStore{storage: storage, logger: logger, maxEvents: maxEvents}
}

// Persist appends events to the stored record, most recent last, trimming the
// oldest entries beyond the retention cap. A corrupt existing record is
// logged, discarded and overwritten rather than propagated.
func (s *OfflineStore) Persist(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.readRecord()
	all := append(existing, events...)

	if len(all) > s.maxEvents {
		evicted := len(all) - s.maxEvents
		all = all[evicted:]
		s.logger.Warn("Offline store full, evicted %d oldest events (cap %d)", evicted, s.maxEvents)
		metricEventsEvicted.Add(float64(evicted))
	}

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode offline events: %w", err)
	}
	if err := s.storage.Write(offlineEventsKey, data); err != nil {
		return fmt.Errorf("write offline events: %w", err)
	}

	metricEventsPersisted.Add(float64(len(events)))
	s.logger.Info("Saved %d failed events for retry (total stored: %d)", len(events), len(all))
	return nil
}

// LoadAndClear returns all stored events and deletes the backing record.
// Intended to run once per process start, before the first flush. An absent
// record yields an empty result without error.
func (s *OfflineStore) LoadAndClear() ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.readRecord()
	if err := s.storage.Delete(offlineEventsKey); err != nil {
		return nil, fmt.Errorf("clear offline events: %w", err)
	}
	if len(events) > 0 {
		metricEventsReplayed.Add(float64(len(events)))
		s.logger.Info("Loaded %d saved events for retry", len(events))
	}
	return events, nil
}

// readRecord decodes the stored record defensively: absence and corruption
// both yield nil. Callers hold s.mu.
func (s *OfflineStore) readRecord() []Event {
	data, err := s.storage.Read(offlineEventsKey)
	if err != nil {
		if !errors.Is(err, adapters.ErrNotFound) {
			s.logger.Warn("Failed to read offline events, starting fresh: %v", err)
		}
		return nil
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		s.logger.Warn("Offline events record corrupted, starting fresh: %v", err)
		return nil
	}
	return events
}
