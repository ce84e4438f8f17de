package text

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/uirender"
)

// FontID identifies a registered font.
type FontID uint32

// DefaultFont is the id of the font passed to NewRegistry.
const DefaultFont FontID = 0

// Font is a parsed font usable for shaping and rasterization.
// It is read-only and safe to share.
type Font struct {
	name    string
	outline *sfnt.Font
	shaping *font.Font
}

// Name returns the logical name the font was registered under.
func (f *Font) Name() string { return f.name }

// parseFont parses data with both the shaping and the outline parser.
func parseFont(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	outline, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFont, name, err)
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidFont, name, err)
	}
	return &Font{name: name, outline: outline, shaping: face.Font}, nil
}

// Registry maps logical font names to FontIDs. The font given to
// NewRegistry is always DefaultFont.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts []*Font
	names map[string]FontID
}

// NewRegistry creates a registry with a default font. An unusable default
// font is an error: no text can render without it.
func NewRegistry(defaultName string, data []byte) (*Registry, error) {
	f, err := parseFont(defaultName, data)
	if err != nil {
		return nil, fmt.Errorf("text: default font: %w", err)
	}
	r := &Registry{
		fonts: []*Font{f},
		names: map[string]FontID{defaultName: DefaultFont},
	}
	return r, nil
}

// Register parses data and binds it to name. Registering an existing name
// points the name at the new font.
func (r *Registry) Register(name string, data []byte) (FontID, error) {
	if name == "" {
		return DefaultFont, ErrEmptyFontName
	}
	f, err := parseFont(name, data)
	if err != nil {
		return DefaultFont, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	id := FontID(len(r.fonts)) //nolint:gosec // font count is tiny
	r.fonts = append(r.fonts, f)
	r.names[name] = id
	return id, nil
}

// Lookup returns the id registered for name, or ErrFontNotFound.
func (r *Registry) Lookup(name string) (FontID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.names[name]
	if !ok {
		return DefaultFont, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return id, nil
}

// Resolve returns the id for name, falling back to DefaultFont for empty
// or unregistered names.
func (r *Registry) Resolve(name string) FontID {
	if name == "" {
		return DefaultFont
	}
	id, err := r.Lookup(name)
	if err != nil {
		uirender.Logger().Debug("using default font", "err", err)
	}
	return id
}

// Font returns the font for id. Unknown ids return the default font.
func (r *Registry) Font(id FontID) *Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < len(r.fonts) {
		return r.fonts[id]
	}
	return r.fonts[DefaultFont]
}

// Len returns the number of registered fonts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fonts)
}
