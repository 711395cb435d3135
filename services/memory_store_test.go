package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/NomadCrew/feedback-portal/internal/store"
	"github.com/NomadCrew/feedback-portal/types"
)

// memoryStore is a store.FeedbackStore backed by a map with a ticking clock.
type memoryStore struct {
	mu     sync.Mutex
	nextID int64
	now    time.Time
	rows   map[int64]types.Feedback
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		now:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		rows: make(map[int64]types.Feedback),
	}
}

func (m *memoryStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memoryStore) CreateFeedback(_ context.Context, fb *types.FeedbackCreate) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	row := types.Feedback{
		ID:        m.nextID,
		Name:      fb.Name,
		Email:     fb.Email,
		Message:   fb.Message,
		Rating:    fb.Rating,
		CreatedAt: m.tick(),
	}
	m.rows[row.ID] = row
	return &row, nil
}

func (m *memoryStore) ListFeedback(_ context.Context) ([]*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*types.Feedback, 0, len(m.rows))
	for _, row := range m.rows {
		row := row
		out = append(out, &row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *memoryStore) GetFeedback(_ context.Context, id int64) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &row, nil
}

func (m *memoryStore) RespondToFeedback(_ context.Context, id int64, response string) (*types.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	at := m.tick()
	row.Response = &response
	row.RespondedAt = &at
	m.rows[id] = row
	return &row, nil
}

func (m *memoryStore) DeleteFeedback(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryStore) Ping(context.Context) error { return nil }
