package cache

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLoader hands out one promise per reference and counts requests.
type countingLoader struct {
	mu       sync.Mutex
	requests map[string]int
	promises map[string]*Promise
	ready    map[string]Texture
}

func newCountingLoader() *countingLoader {
	return &countingLoader{
		requests: make(map[string]int),
		promises: make(map[string]*Promise),
		ready:    make(map[string]Texture),
	}
}

func (l *countingLoader) Load(ref string) Future {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests[ref]++
	if tex, ok := l.ready[ref]; ok {
		return Ready(tex)
	}
	p := NewPromise()
	l.promises[ref] = p
	return p
}

func TestResolveIsIdentityStable(t *testing.T) {
	loader := newCountingLoader()
	c := NewImageCache(loader)

	first := c.Resolve("a.png")
	second := c.Resolve("a.png")

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.requests["a.png"])
	assert.Equal(t, 1, c.Loads())
	assert.Equal(t, 1, c.Len())
}

func TestDimensionsPendingThenReady(t *testing.T) {
	loader := newCountingLoader()
	c := NewImageCache(loader)

	w, h := c.Dimensions("photo.png")
	assert.Zero(t, w)
	assert.Zero(t, h)
	assert.True(t, c.Resolve("photo.png").Pending())
	assert.Equal(t, 1, c.PendingCount())

	assert.Equal(t, 0, c.Maintain(), "nothing finished yet")

	loader.promises["photo.png"].Fulfill(Texture{ID: 7, Width: 640, Height: 480})
	assert.Equal(t, 1, c.Maintain())
	assert.Equal(t, 0, c.PendingCount())

	w, h = c.Dimensions("photo.png")
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	tex, ok := c.Resolve("photo.png").Texture()
	require.True(t, ok)
	assert.EqualValues(t, 7, tex.ID)
	assert.Equal(t, 1, loader.requests["photo.png"], "dimension queries must not reload")
}

func TestSynchronousLoadReadyImmediately(t *testing.T) {
	loader := newCountingLoader()
	loader.ready["icon.png"] = Texture{ID: 3, Width: 16, Height: 16}
	c := NewImageCache(loader)

	h := c.Resolve("icon.png")
	assert.False(t, h.Pending())
	assert.Equal(t, 0, c.PendingCount())
	w, _ := h.Dimensions()
	assert.Equal(t, 16, w)
}

func TestFailedLoad(t *testing.T) {
	boom := errors.New("no such file")
	c := NewImageCache(LoaderFunc(func(string) Future { return Failed(boom) }))

	h := c.Resolve("missing.png")
	assert.False(t, h.Pending())
	_, ok := h.Texture()
	assert.False(t, ok)
	assert.ErrorIs(t, h.Err(), ErrLoadFailed)
	assert.ErrorIs(t, h.Err(), boom)

	w, hgt := h.Dimensions()
	assert.Zero(t, w+hgt)
}

func TestEmptyTextureIsFailure(t *testing.T) {
	c := NewImageCache(LoaderFunc(func(string) Future { return Ready(Texture{ID: 1}) }))
	assert.ErrorIs(t, c.Resolve("empty.png").Err(), ErrLoadFailed)
}

func TestRemoveReloads(t *testing.T) {
	loader := newCountingLoader()
	c := NewImageCache(loader)

	first := c.Resolve("a.png")
	assert.True(t, c.Remove("a.png"))
	assert.False(t, c.Remove("a.png"))
	assert.Equal(t, 0, c.PendingCount())

	second := c.Resolve("a.png")
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, loader.requests["a.png"])
}

func TestPromiseFirstCompletionWins(t *testing.T) {
	p := NewPromise()
	_, done, _ := p.Poll()
	assert.False(t, done)

	p.Fulfill(Texture{ID: 1, Width: 1, Height: 1})
	p.Fail(errors.New("late"))

	tex, done, err := p.Poll()
	assert.True(t, done)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, tex.ID)
}

func TestResolveConcurrent(t *testing.T) {
	loader := newCountingLoader()
	c := NewImageCache(loader)

	var wg sync.WaitGroup
	handles := make([]*Handle, 32)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = c.Resolve("shared.png")
		}(i)
	}
	wg.Wait()

	for _, h := range handles[1:] {
		assert.Same(t, handles[0], h)
	}
	assert.Equal(t, 1, loader.requests["shared.png"])
}
