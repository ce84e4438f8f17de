// Command uidemo renders a UI scene through the compositor headlessly.
//
// It runs the frame loop against the in-memory recording device, logs what
// each frame drew and can dump the glyph atlas as a PNG:
//
//	uidemo -scene panel.yaml -config demo.toml -atlas atlas.png
//	uidemo -scene panel.yaml -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/uirender"
	"github.com/gogpu/uirender/assets"
	"github.com/gogpu/uirender/cache"
	"github.com/gogpu/uirender/recording"
	"github.com/gogpu/uirender/render"
	"github.com/gogpu/uirender/scene"
	"github.com/gogpu/uirender/text"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file")
		scenePath  = flag.String("scene", "", "YAML scene file (default: built-in demo)")
		atlasPath  = flag.String("atlas", "", "write the glyph atlas to this PNG")
		watch      = flag.Bool("watch", false, "re-render when the scene file changes")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	uirender.SetLogger(logger)

	if err := run(*configPath, *scenePath, *atlasPath, *watch, logger); err != nil {
		logger.Error("uidemo failed", "err", err)
		os.Exit(1)
	}
}

// host owns the compositor and its collaborators.
type host struct {
	cfg      demoConfig
	device   *recording.Device
	loader   *assets.FileLoader
	images   *cache.ImageCache
	renderer *render.Renderer
	vp       uirender.Viewport
	frame    uint64
	log      *slog.Logger
}

func newHost(cfg demoConfig, log *slog.Logger) (*host, error) {
	fonts, err := text.NewRegistry(cfg.Render.DefaultFontName, goregular.TTF)
	if err != nil {
		return nil, err
	}
	device := recording.NewDevice()
	loader := assets.NewFileLoader(device, cfg.Assets, assets.WithMaxSize(cfg.MaxImageSize))
	images := cache.NewImageCache(loader)

	r, err := render.New(device, fonts, images, cfg.Render)
	if err != nil {
		return nil, err
	}
	return &host{
		cfg:      cfg,
		device:   device,
		loader:   loader,
		images:   images,
		renderer: r,
		vp:       uirender.NewViewport(cfg.Window.Width, cfg.Window.Height, cfg.Window.Scale),
		log:      log,
	}, nil
}

// renderFrame prepares and draws one frame.
func (h *host) renderFrame(tree scene.Primitive) error {
	stats, err := h.renderer.Prepare(h.frame, tree, h.vp)
	if err != nil {
		return fmt.Errorf("frame %d: %w", h.frame, err)
	}
	pass := recording.NewPass()
	h.renderer.Draw(h.frame, pass)

	h.log.Info("frame",
		"index", h.frame,
		"slot", stats.Slot,
		"layers", stats.Layers,
		"quads", stats.Quads,
		"glyphs", stats.Glyphs,
		"images", stats.Images,
		"draws", len(pass.Draws()),
		"atlas_generation", stats.AtlasGeneration)
	h.frame++
	return nil
}

func (h *host) dumpAtlas(path string) error {
	img, err := h.device.TextureImage(h.renderer.AtlasTexture())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func run(configPath, scenePath, atlasPath string, watch bool, log *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	h, err := newHost(cfg, log)
	if err != nil {
		return err
	}
	defer h.renderer.Dispose()

	tree, err := loadScene(scenePath, h.images, h.vp)
	if err != nil {
		return err
	}
	for range cfg.Frames {
		if err := h.renderFrame(tree); err != nil {
			return err
		}
		// Let image decodes land before the next frame's Maintain.
		h.loader.Wait()
	}

	layouts := h.renderer.TextLayoutStats()
	log.Debug("text layout cache", "entries", layouts.Len, "hits", layouts.Hits, "misses", layouts.Misses)

	if atlasPath != "" {
		if err := h.dumpAtlas(atlasPath); err != nil {
			return fmt.Errorf("dump atlas: %w", err)
		}
		log.Info("atlas written", "path", atlasPath, "glyphs", h.renderer.Atlas().Len())
	}

	if !watch {
		return nil
	}
	if scenePath == "" {
		return errors.New("-watch needs -scene")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return h.watch(ctx, scenePath)
}

// watch re-renders scenePath whenever it is written. Editors that replace
// the file are handled by watching the directory.
func (h *host) watch(ctx context.Context, scenePath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(scenePath)); err != nil {
		return err
	}
	target := filepath.Clean(scenePath)
	h.log.Info("watching", "scene", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			tree, err := loadScene(scenePath, h.images, h.vp)
			if err != nil {
				h.log.Warn("scene reload failed", "err", err)
				continue
			}
			if err := h.renderFrame(tree); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			h.log.Warn("watch error", "err", err)
		}
	}
}
