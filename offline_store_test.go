package tokebi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokebi-analytics/tokebi-go/adapters"
)

func newTestOfflineStore(storage StorageAdapter, cap int) *OfflineStore {
	return NewOfflineStore(storage, adapters.NewNoOpLoggerAdapter(), cap)
}

func makeEvents(prefix string, n int) []Event {
	events := make([]Event, n)
	for i := range events {
		events[i] = Event{EventType: fmt.Sprintf("%s%d", prefix, i), GameID: "g1"}
	}
	return events
}

func TestOfflineStore_PersistAndLoad(t *testing.T) {
	storage := adapters.NewMemoryStorageAdapter()
	store := newTestOfflineStore(storage, 500)

	require.NoError(t, store.Persist(makeEvents("a", 3)))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "a0", loaded[0].EventType)
	assert.Equal(t, "a2", loaded[2].EventType)
}

func TestOfflineStore_PersistAppends(t *testing.T) {
	store := newTestOfflineStore(adapters.NewMemoryStorageAdapter(), 500)

	require.NoError(t, store.Persist(makeEvents("first", 2)))
	require.NoError(t, store.Persist(makeEvents("second", 2)))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 4)
	assert.Equal(t, "first0", loaded[0].EventType)
	assert.Equal(t, "second1", loaded[3].EventType)
}

func TestOfflineStore_LoadAndClearDeletesRecord(t *testing.T) {
	storage := adapters.NewMemoryStorageAdapter()
	store := newTestOfflineStore(storage, 500)

	require.NoError(t, store.Persist(makeEvents("a", 1)))

	_, err := store.LoadAndClear()
	require.NoError(t, err)

	_, err = storage.Read("Analytics/TokebiOfflineEvents.json")
	assert.ErrorIs(t, err, adapters.ErrNotFound)

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestOfflineStore_AbsentRecordIsEmpty(t *testing.T) {
	store := newTestOfflineStore(adapters.NewMemoryStorageAdapter(), 500)

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestOfflineStore_BoundedRetentionEvictsOldestFirst(t *testing.T) {
	store := newTestOfflineStore(adapters.NewMemoryStorageAdapter(), 5)

	require.NoError(t, store.Persist(makeEvents("old", 4)))
	require.NoError(t, store.Persist(makeEvents("new", 4)))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 5)
	assert.Equal(t, "old3", loaded[0].EventType, "oldest surviving event")
	assert.Equal(t, "new3", loaded[4].EventType, "most recent event last")
}

func TestOfflineStore_SingleOversizedBatchKeepsMostRecent(t *testing.T) {
	store := newTestOfflineStore(adapters.NewMemoryStorageAdapter(), 500)

	require.NoError(t, store.Persist(makeEvents("e", 600)))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 500)
	assert.Equal(t, "e100", loaded[0].EventType)
	assert.Equal(t, "e599", loaded[499].EventType)
}

func TestOfflineStore_CorruptRecordTreatedAsEmpty(t *testing.T) {
	storage := adapters.NewMemoryStorageAdapter()
	require.NoError(t, storage.Write("Analytics/TokebiOfflineEvents.json", []byte("not json{")))

	store := newTestOfflineStore(storage, 500)

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestOfflineStore_CorruptRecordOverwrittenByPersist(t *testing.T) {
	storage := adapters.NewMemoryStorageAdapter()
	require.NoError(t, storage.Write("Analytics/TokebiOfflineEvents.json", []byte(`{"not":"an array"}`)))

	store := newTestOfflineStore(storage, 500)
	require.NoError(t, store.Persist(makeEvents("a", 2)))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
}

func TestOfflineStore_PersistNothingIsNoOp(t *testing.T) {
	storage := adapters.NewMemoryStorageAdapter()
	store := newTestOfflineStore(storage, 500)

	require.NoError(t, store.Persist(nil))
	assert.Equal(t, 0, storage.Len())
}

func TestOfflineStore_RoundTripPreservesEventFields(t *testing.T) {
	store := newTestOfflineStore(adapters.NewMemoryStorageAdapter(), 500)

	event := Event{
		EventType:   "level_complete",
		GameID:      "g1",
		PlayerID:    "player_1_abcdef01",
		Platform:    "go",
		Environment: "development",
		SessionID:   "session_1_abcdef01",
		Payload:     map[string]any{"level": "3", "score": float64(100)},
		Timestamp:   1700000000,
	}
	require.NoError(t, store.Persist([]Event{event}))

	loaded, err := store.LoadAndClear()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, event, loaded[0])
}
