package assets

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	// Decoders beyond the ones imgio registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/cache"
	"github.com/gogpu/uirender/gpucore"
)

// Loader errors.
var (
	// ErrNotImage is returned for files whose content is not an image.
	ErrNotImage = errors.New("assets: not an image")

	// ErrInvalidRef is returned for references that escape the root.
	ErrInvalidRef = errors.New("assets: invalid image reference")
)

// sniffLen is how much of a file filetype needs to recognize it.
const sniffLen = 262

// Option configures a FileLoader.
type Option func(*FileLoader)

// WithMaxSize scales images down so neither side exceeds n pixels.
// Zero disables scaling.
func WithMaxSize(n int) Option {
	return func(l *FileLoader) {
		if n >= 0 {
			l.maxSize = n
		}
	}
}

// FileLoader loads image references as paths relative to a root directory.
type FileLoader struct {
	device  gpucore.Device
	root    string
	maxSize int

	wg sync.WaitGroup
}

var _ cache.Loader = (*FileLoader)(nil)

// NewFileLoader creates a loader that uploads into device.
func NewFileLoader(device gpucore.Device, root string, opts ...Option) *FileLoader {
	l := &FileLoader{device: device, root: root}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load starts decoding ref in the background.
func (l *FileLoader) Load(ref string) cache.Future {
	path, err := l.path(ref)
	if err != nil {
		return cache.Failed(err)
	}

	f := &fileFuture{loader: l, ref: ref}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.decode(path)
		f.mu.Lock()
		f.img, f.err, f.decoded = img, err, true
		f.mu.Unlock()
	}()
	return f
}

// Wait blocks until every started decode has finished. Uploads still happen
// on the next poll.
func (l *FileLoader) Wait() {
	l.wg.Wait()
}

func (l *FileLoader) path(ref string) (string, error) {
	rel := filepath.FromSlash(ref)
	if ref == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(l.root, rel), nil
}

func (l *FileLoader) decode(path string) (*image.RGBA, error) {
	if err := sniff(path); err != nil {
		return nil, err
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}

	b := img.Bounds()
	if w, h, ok := fitSize(b.Dx(), b.Dy(), l.maxSize); ok {
		uirender.Logger().Debug("assets: scaling image",
			"path", path, "from", b.Size(), "to", image.Pt(w, h))
		return transform.Resize(img, w, h, transform.Linear), nil
	}
	return clone.AsRGBA(img), nil
}

// sniff rejects files that are not images before handing them to a decoder.
func sniff(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("assets: %w", err)
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("assets: read %s: %w", path, err)
	}
	if !filetype.IsImage(head[:n]) {
		return fmt.Errorf("%w: %s", ErrNotImage, path)
	}
	return nil
}

// fitSize returns the size that fits w x h inside max x max, keeping the
// aspect ratio. ok is false when no scaling is needed.
func fitSize(w, h, maxSize int) (int, int, bool) {
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return w, h, false
	}
	if w >= h {
		return maxSize, max(1, h*maxSize/w), true
	}
	return max(1, w*maxSize/h), maxSize, true
}

// fileFuture is the cache.Future of one file load.
type fileFuture struct {
	loader *FileLoader
	ref    string

	mu      sync.Mutex
	decoded bool
	img     *image.RGBA
	err     error
	done    bool
	tex     cache.Texture
}

// Poll uploads the decoded image on the first poll after decoding finished.
// It runs on the render thread.
func (f *fileFuture) Poll() (cache.Texture, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return f.tex, true, f.err
	}
	if !f.decoded {
		return cache.Texture{}, false, nil
	}
	f.done = true
	if f.err != nil {
		return cache.Texture{}, true, f.err
	}

	img := f.img
	f.img = nil
	f.tex, f.err = upload(f.loader.device, f.ref, img)
	return f.tex, true, f.err
}

func upload(device gpucore.Device, label string, img *image.RGBA) (cache.Texture, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return cache.Texture{}, fmt.Errorf("assets: %s: empty image", label)
	}
	id, err := device.CreateTexture(label, w, h, gpucore.TextureFormatRGBA8Unorm)
	if err != nil {
		return cache.Texture{}, fmt.Errorf("assets: %s: %w", label, err)
	}
	device.WriteTexture(id, gpucore.Region{Width: uint32(w), Height: uint32(h)}, tightRows(img))
	return cache.Texture{ID: id, Width: w, Height: h}, nil
}

// tightRows returns the pixels without row padding.
func tightRows(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride == w*4 && img.Rect.Min == (image.Point{}) {
		return img.Pix[:w*h*4]
	}
	out := make([]byte, 0, w*h*4)
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		off := img.PixOffset(img.Rect.Min.X, y)
		out = append(out, img.Pix[off:off+w*4]...)
	}
	return out
}
