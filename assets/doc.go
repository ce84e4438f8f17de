// Package assets loads image references from disk for the image cache.
//
// [FileLoader] implements cache.Loader. Files are sniffed and decoded on a
// background goroutine; the device upload happens when the cache polls the
// load from the render thread, so the gpucore.Device is never touched
// concurrently:
//
//	loader := assets.NewFileLoader(device, "testdata", assets.WithMaxSize(1024))
//	images := cache.NewImageCache(loader)
//	r, err := render.New(device, fonts, images, render.DefaultConfig())
package assets
