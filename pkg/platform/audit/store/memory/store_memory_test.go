package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	audit "cardcheck/pkg/platform/audit"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	for _, subject := range []string{"a", "b", "a", "c"} {
		require.NoError(t, store.Append(ctx, audit.Event{SubjectID: subject, Action: audit.ActionClassified}))
	}

	t.Run("lists by subject in append order", func(t *testing.T) {
		events, err := store.ListBySubject(ctx, "a")
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("recent is newest first and bounded", func(t *testing.T) {
		events, err := store.ListRecent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "c", events[0].SubjectID)
		assert.Equal(t, "a", events[1].SubjectID)
	})

	t.Run("limit larger than store returns everything", func(t *testing.T) {
		events, err := store.ListRecent(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, events, 4)
	})

	t.Run("clear empties the store", func(t *testing.T) {
		store.Clear()
		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestInMemoryStoreNonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.Append(ctx, audit.Event{SubjectID: "a"}))

	for _, limit := range []int{0, -1, -1000} {
		events, err := store.ListRecent(ctx, limit)
		require.NoError(t, err)
		assert.Empty(t, events)
	}
}

func TestInMemoryStoreIsBounded(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(WithCapacity(3))
	for _, subject := range []string{"a", "b", "a", "c", "d"} {
		require.NoError(t, store.Append(ctx, audit.Event{SubjectID: subject}))
	}
	assert.Equal(t, 3, store.Len())

	t.Run("oldest events are overwritten", func(t *testing.T) {
		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		subjects := make([]string, len(events))
		for i, e := range events {
			subjects[i] = e.SubjectID
		}
		assert.Equal(t, []string{"d", "c", "a"}, subjects)
	})

	t.Run("subject listing only sees retained events", func(t *testing.T) {
		events, err := store.ListBySubject(ctx, "a")
		require.NoError(t, err)
		assert.Len(t, events, 1)

		events, err = store.ListBySubject(ctx, "b")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("clear resets the ring", func(t *testing.T) {
		store.Clear()
		assert.Zero(t, store.Len())
		require.NoError(t, store.Append(ctx, audit.Event{SubjectID: "e"}))
		events, err := store.ListRecent(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "e", events[0].SubjectID)
	})
}

func TestInMemoryStoreDefaultCapacity(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(WithCapacity(0))
	for range DefaultCapacity + 5 {
		require.NoError(t, store.Append(ctx, audit.Event{SubjectID: "x"}))
	}
	assert.Equal(t, DefaultCapacity, store.Len())
}
