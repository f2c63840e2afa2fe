package storage

import (
	"sort"
	"sync"

	"railboard.dev/schedule/model"
)

// In memory implementation of Storage. Suitable for tests and for
// hosts that persist elsewhere.

type memoryRefKey struct {
	TripID     string
	FromStopID string
	ToStopID   string
	TravelDate string
}

type MemoryStorage struct {
	mu   sync.Mutex
	refs map[memoryRefKey]model.SavedTrainRef
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		refs: map[memoryRefKey]model.SavedTrainRef{},
	}
}

func refKey(ref model.SavedTrainRef) memoryRefKey {
	return memoryRefKey{
		TripID:     ref.TripID,
		FromStopID: ref.FromStopID,
		ToStopID:   ref.ToStopID,
		TravelDate: travelDateKey(ref.TravelDate),
	}
}

func (s *MemoryStorage) SavedRefs() ([]model.SavedTrainRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	refs := make([]model.SavedTrainRef, 0, len(s.refs))
	for _, ref := range s.refs {
		refs = append(refs, ref)
	}
	sort.SliceStable(refs, func(i, j int) bool {
		if !refs[i].SavedAt.Equal(refs[j].SavedAt) {
			return refs[i].SavedAt.Before(refs[j].SavedAt)
		}
		return refs[i].TripID < refs[j].TripID
	})
	return refs, nil
}

func (s *MemoryStorage) SaveRef(ref model.SavedTrainRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := refKey(ref)
	if _, found := s.refs[key]; found {
		return nil
	}
	s.refs[key] = ref
	return nil
}

func (s *MemoryStorage) DeleteRef(tripID, fromStopID, toStopID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.refs {
		if key.TripID == tripID && key.FromStopID == fromStopID && key.ToStopID == toStopID {
			delete(s.refs, key)
		}
	}
	return nil
}

func (s *MemoryStorage) ClearRefs() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs = map[memoryRefKey]model.SavedTrainRef{}
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}
