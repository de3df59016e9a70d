package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/shandysiswandi/reqguard/internal/subscriber/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CreateGet(t *testing.T) {
	ctx := context.Background()
	m := New()

	require.NoError(t, m.Create(ctx, entity.Subscriber{ID: "1", Name: "John", Email: "John@Example.com"}))
	assert.ErrorIs(t, m.Create(ctx, entity.Subscriber{ID: "2", Email: "john@example.com"}), entity.ErrEmailTaken)

	got, err := m.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "John", got.Name)

	_, err = m.Get(ctx, "2")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMemory_List(t *testing.T) {
	ctx := context.Background()
	m := New()
	for i := range 5 {
		require.NoError(t, m.Create(ctx, entity.Subscriber{ID: fmt.Sprint(i), Email: fmt.Sprintf("u%d@example.com", i)}))
	}

	page, total, err := m.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "2", page[0].ID)
	assert.Equal(t, "3", page[1].ID)

	page, _, err = m.List(ctx, 4, 10)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, _, err = m.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			_ = m.Create(ctx, entity.Subscriber{ID: fmt.Sprint(i), Email: fmt.Sprintf("u%d@example.com", i)})
			_, _, _ = m.List(ctx, 0, 10)
		})
	}
	wg.Wait()

	_, total, err := m.List(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}
