package cache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/gpucore"
)

// ErrLoadFailed wraps the error of an image load that did not complete.
var ErrLoadFailed = errors.New("cache: image load failed")

// Texture is a loaded image on the device.
type Texture struct {
	ID            gpucore.TextureID
	Width, Height int
}

// Future is a possibly pending load. Poll never blocks: it reports done=false
// until the load finishes, then returns the texture or the error.
type Future interface {
	Poll() (tex Texture, done bool, err error)
}

// Loader starts loading image references.
type Loader interface {
	Load(ref string) Future
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ref string) Future

// Load implements Loader.
func (f LoaderFunc) Load(ref string) Future { return f(ref) }

// Handle is the memoized entry for one image reference. The same *Handle is
// returned for every resolution of a reference.
type Handle struct {
	ref    string
	future Future
	result atomic.Pointer[loadResult]
}

type loadResult struct {
	tex Texture
	err error
}

// Ref returns the image reference.
func (h *Handle) Ref() string { return h.ref }

// Pending reports whether the load has not finished yet.
func (h *Handle) Pending() bool { return h.result.Load() == nil }

// Texture returns the loaded texture. ok is false while pending or after a
// failed load.
func (h *Handle) Texture() (tex Texture, ok bool) {
	r := h.result.Load()
	if r == nil || r.err != nil {
		return Texture{}, false
	}
	return r.tex, true
}

// Err returns the load error, if the load failed.
func (h *Handle) Err() error {
	if r := h.result.Load(); r != nil {
		return r.err
	}
	return nil
}

// Dimensions returns the pixel size, or zeros until the texture is ready.
func (h *Handle) Dimensions() (width, height int) {
	tex, ok := h.Texture()
	if !ok {
		return 0, 0
	}
	return tex.Width, tex.Height
}

// poll checks the future once and records a finished result.
func (h *Handle) poll() bool {
	if !h.Pending() {
		return true
	}
	tex, done, err := h.future.Poll()
	if !done {
		return false
	}
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrLoadFailed, h.ref, err)
		uirender.Logger().Warn("image load failed", "ref", h.ref, "err", err)
	} else if tex.ID == gpucore.InvalidID || tex.Width <= 0 || tex.Height <= 0 {
		err = fmt.Errorf("%w: %s: empty texture %dx%d", ErrLoadFailed, h.ref, tex.Width, tex.Height)
		uirender.Logger().Warn("image load returned empty texture", "ref", h.ref)
	}
	h.result.Store(&loadResult{tex: tex, err: err})
	return true
}

// ImageCache resolves image references to textures, loading each reference
// once. Entries are never evicted; Remove drops one explicitly.
//
// ImageCache is safe for concurrent use.
type ImageCache struct {
	mu      sync.Mutex
	loader  Loader
	entries map[string]*Handle
	// pending keeps unfinished handles in resolution order.
	pending []*Handle
	loads   int
}

// NewImageCache creates a cache backed by loader.
func NewImageCache(loader Loader) *ImageCache {
	return &ImageCache{
		loader:  loader,
		entries: make(map[string]*Handle),
	}
}

// Resolve returns the handle for ref, starting its load on first use.
// Loads that complete synchronously are ready on return.
func (c *ImageCache) Resolve(ref string) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h, ok := c.entries[ref]; ok {
		return h
	}

	h := &Handle{ref: ref, future: c.loader.Load(ref)}
	c.entries[ref] = h
	c.loads++
	if !h.poll() {
		c.pending = append(c.pending, h)
		uirender.Logger().Debug("image pending", "ref", ref)
	}
	return h
}

// Dimensions returns the pixel size of ref, or zeros until it is known.
func (c *ImageCache) Dimensions(ref string) (width, height int) {
	return c.Resolve(ref).Dimensions()
}

// Maintain polls pending loads and returns how many finished.
func (c *ImageCache) Maintain() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	finished := 0
	kept := c.pending[:0]
	for _, h := range c.pending {
		if h.poll() {
			finished++
			continue
		}
		kept = append(kept, h)
	}
	clear(c.pending[len(kept):])
	c.pending = kept
	return finished
}

// Remove forgets ref. A later Resolve loads it again. The texture itself is
// owned by the loader.
func (c *ImageCache) Remove(ref string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.entries[ref]
	if !ok {
		return false
	}
	delete(c.entries, ref)
	for i, p := range c.pending {
		if p == h {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of cached references.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// PendingCount returns the number of unfinished loads.
func (c *ImageCache) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Loads returns the number of load requests issued.
func (c *ImageCache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

// Promise is a Future completed by the loader.
type Promise struct {
	mu   sync.Mutex
	done bool
	tex  Texture
	err  error
}

// NewPromise returns an unfinished promise.
func NewPromise() *Promise { return &Promise{} }

// Ready returns a future that has already completed with tex.
func Ready(tex Texture) Future {
	return &Promise{done: true, tex: tex}
}

// Failed returns a future that has already failed with err.
func Failed(err error) Future {
	return &Promise{done: true, err: err}
}

// Fulfill completes the promise with tex. Later completions are ignored.
func (p *Promise) Fulfill(tex Texture) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.done {
		p.done, p.tex = true, tex
	}
}

// Fail completes the promise with err. Later completions are ignored.
func (p *Promise) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.done {
		p.done, p.err = true, err
	}
}

// Poll implements Future.
func (p *Promise) Poll() (Texture, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tex, p.done, p.err
}
