package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeySharma/frame-generator/assets"
	"github.com/MikeySharma/frame-generator/internal/config"
	"github.com/MikeySharma/frame-generator/internal/utils"
	"github.com/MikeySharma/frame-generator/internal/web"
	"github.com/MikeySharma/frame-generator/pkg/catalog"
	"github.com/MikeySharma/frame-generator/pkg/compositor"
	"github.com/MikeySharma/frame-generator/pkg/loader"
	"github.com/MikeySharma/frame-generator/pkg/output"
	"github.com/MikeySharma/frame-generator/pkg/session"
	"github.com/MikeySharma/frame-generator/pkg/types"
)

func main() {
	var in, frameID, outDir, ext, configPath, assetsDir, addr string
	var zoom, size float64
	var quality int
	var serve, list, initConfig bool

	flag.StringVar(&in, "in", "", "input photo path or URL (jpg/png/gif/webp)")
	flag.StringVar(&frameID, "frame", "", "frame id (see -list)")
	flag.Float64Var(&zoom, "zoom", types.ZoomRange.Default, "photo zoom (0.5..2.0)")
	flag.Float64Var(&size, "size", types.FrameSizeRange.Default, "frame size (0.5..1.5)")
	flag.StringVar(&outDir, "out", "", "output directory (default from config)")
	flag.StringVar(&ext, "ext", "", "output format: png|webp (default from config)")
	flag.IntVar(&quality, "quality", 0, "WebP quality (1-100), 0 keeps the config value")
	flag.StringVar(&configPath, "config", "", "config file (default "+config.GetConfigPath()+" if present)")
	flag.StringVar(&assetsDir, "assets", "", "directory holding frames/<id>.png, overrides the embedded frames")
	flag.BoolVar(&serve, "serve", false, "run the local preview server")
	flag.StringVar(&addr, "addr", "", "preview server listen address (default from config)")
	flag.BoolVar(&list, "list", false, "list available frames and exit")
	flag.BoolVar(&initConfig, "init-config", false, "write the effective configuration to -config (or the default path) and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	} else {
		log.Println("[INFO] Loaded environment variables from .env file")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.ApplyEnv()
	if outDir != "" {
		cfg.Output.OutputDir = outDir
	}
	if ext != "" {
		cfg.Output.Format = ext
	}
	if quality != 0 {
		cfg.Output.Quality = quality
	}
	if assetsDir != "" {
		cfg.Catalog.AssetsDir = assetsDir
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if initConfig {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := cfg.SaveToFile(path); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", path)
		return
	}

	cat := catalog.New(frameFS(cfg.Catalog.AssetsDir), nil)
	if list {
		for _, f := range cat.Frames() {
			fmt.Printf("%-8s %s\n", f.ID, f.Name)
		}
		return
	}

	format, _ := types.ParseFormat(cfg.Output.Format)
	enc := output.NewEncoder(format)
	enc.Quality = cfg.Output.Quality
	enc.Lossless = cfg.Output.Lossless

	comp := compositor.NewWithConfig(compositor.Config{
		CanvasSize:  cfg.Compositor.CanvasSize,
		ClipDivisor: cfg.Compositor.ClipDivisor,
		PhotoScale:  cfg.Compositor.PhotoScale,
	})
	ld := loader.NewWithConfig(loader.Config{
		SupportedFormats: cfg.Loader.SupportedFormats,
		MaxBytes:         cfg.Loader.MaxUploadBytes,
		MinImageSize:     cfg.Loader.MinImageSize,
	})

	if frameID == "" {
		frameID = cfg.Catalog.DefaultFrame
	}
	if _, err := cat.Lookup(frameID); err != nil {
		log.Fatalf("%v (available: %s)", err, strings.Join(cat.IDs(), ", "))
	}
	if !types.ZoomRange.Contains(zoom) {
		log.Printf("[WARN] zoom %.2f outside %.1f..%.1f, clamping", zoom, types.ZoomRange.Min, types.ZoomRange.Max)
	}
	if !types.FrameSizeRange.Contains(size) {
		log.Printf("[WARN] size %.2f outside %.1f..%.1f, clamping", size, types.FrameSizeRange.Min, types.FrameSizeRange.Max)
	}
	params := types.Params{FrameID: frameID, Zoom: zoom, FrameSize: size}.Clamped()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serve {
		store := session.New(comp, cat, enc)
		if err := store.Update(ctx, params); err != nil {
			log.Fatal(err)
		}
		srv := web.NewServer(store, cat, ld, cfg.Loader.MaxUploadBytes)
		if err := run(ctx, cfg.Server.Addr, srv.Router()); err != nil {
			log.Fatal(err)
		}
		return
	}

	if in == "" {
		log.Fatalf("usage: %s -in photo.jpg|URL [-frame frame1] [-zoom 1.0] [-size 0.9] [-out dir] [-ext png|webp] | -serve [-addr host:port] | -list", filepath.Base(os.Args[0]))
	}

	if !loader.IsURL(in) && !utils.IsPhotoFile(in) {
		log.Printf("[WARN] %s does not look like a photo, trying to decode anyway", in)
	}
	src, err := loader.OpenSource(ctx, in)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	pair, err := ld.LoadPair(ctx, src, cat, params.FrameID)
	if err != nil {
		log.Fatal(err)
	}
	b := pair.Photo.Bounds()
	log.Printf("photo=%dx%d frame=%s zoom=%.1f size=%.1f", b.Dx(), b.Dy(), params.FrameID, params.Zoom, params.FrameSize)

	img := comp.Compose(pair.Photo, pair.Frame, params)

	name := in
	if loader.IsURL(in) {
		name = ""
	}
	outPath := utils.OutputPath(name, cfg.Output.OutputDir, output.BaseName, format.Ext())
	if err := enc.Save(img, outPath); err != nil {
		log.Fatalf("save %s failed: %v", outPath, err)
	}
	log.Printf("wrote %s", outPath)
}

// loadConfig reads path, or the default config file when it exists, or falls back to defaults
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	if def := config.GetConfigPath(); fileExists(def) {
		return config.LoadFromFile(def)
	}
	return config.Default(), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func frameFS(dir string) fs.FS {
	if dir == "" {
		return assets.FS
	}
	if !utils.DirExists(filepath.Join(dir, "frames")) {
		log.Printf("[WARN] %s has no frames directory", dir)
	}
	return os.DirFS(dir)
}

func run(ctx context.Context, addr string, h http.Handler) error {
	server := &http.Server{
		Addr:    addr,
		Handler: h,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[INFO] frame generator preview running on http://%s", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Println("[INFO] shutting down")
	return server.Shutdown(shutdownCtx)
}
