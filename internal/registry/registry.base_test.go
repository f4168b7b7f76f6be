package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Aniket1026/yoto/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("views", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("views", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	v, ok := r.Get("views")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, common.ErrRequiredField)
}

func TestMustGetMissing(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.MustGet("playlists")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetOrCreateRunsCreatorOnce(t *testing.T) {
	r := NewRegistry[string]()
	calls := 0
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.GetOrCreate("video", func() (string, error) {
				mu.Lock()
				calls++
				mu.Unlock()
				return "resolver", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "resolver", v)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, calls)

	_, err := r.GetOrCreate("broken", func() (string, error) { return "", errors.New("boom") })
	assert.Error(t, err)
	_, ok := r.Get("broken")
	assert.False(t, ok)
}

func TestClearAndClearAll(t *testing.T) {
	r := NewRegistry[int]()
	for i := 0; i < 3; i++ {
		_, _ = r.Register(fmt.Sprintf("k%d", i), i)
	}
	assert.Equal(t, []string{"k0", "k1", "k2"}, r.Names())

	deleted, err := r.Clear("k0", nil)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = r.Clear("k0", nil)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = r.ClearAll(func(int) error { return errors.New("close failed") })
	assert.Error(t, err)
	assert.Len(t, r.Names(), 2)

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, r.Names())
}
