package emissions

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Upsert(
		EmissionFactor{ID: "b", Factor: 1},
		EmissionFactor{ID: "a", Factor: 2},
	)
	r.Upsert(EmissionFactor{ID: "b", Factor: 3})

	assert.Equal(t, 2, len(r.List()))
	got, ok := r.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3.0, got.Factor)
	_, ok = r.Get("c")
	assert.False(t, ok)

	list := r.List()
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Upsert(EmissionFactor{ID: string(rune('a' + i)), Factor: 1})
		}()
		go func() {
			defer wg.Done()
			_ = r.List()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, len(r.List()))
}
