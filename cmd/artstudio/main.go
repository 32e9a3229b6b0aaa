// Package main is the entry point for the ArtStudio drawing engine.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/assistant"
	"github.com/jwulff/artstudio-go/internal/codec"
	"github.com/jwulff/artstudio-go/internal/config"
	"github.com/jwulff/artstudio-go/internal/domain"
	"github.com/jwulff/artstudio-go/internal/render"
	"github.com/jwulff/artstudio-go/internal/server"
	"github.com/jwulff/artstudio-go/internal/session"
	"github.com/jwulff/artstudio-go/internal/storage"
	"github.com/jwulff/artstudio-go/internal/storage/sqlite"
	"github.com/jwulff/artstudio-go/internal/stroke"
)

func main() {
	fmt.Println("ArtStudio Pro - Layered Raster Canvas Engine")
	fmt.Println("Version: 0.1.0-dev")
	fmt.Println()

	if len(os.Args) < 2 {
		showUsage()
		return
	}

	cfg, args, err := config.Load(os.Args[2:])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg.SetupLogging()

	switch os.Args[1] {
	case "serve":
		serve(cfg)
	case "demo":
		if len(args) < 1 {
			fmt.Println("Error: output path required")
			fmt.Println("Usage: artstudio demo <out.png>")
			os.Exit(1)
		}
		writeDemo(cfg, args[0])
	case "preview":
		previewDemo(cfg)
	case "suggest":
		if len(args) < 1 {
			fmt.Println("Error: drawing style description required")
			fmt.Println("Usage: artstudio suggest <description> [image.png]")
			os.Exit(1)
		}
		imagePath := ""
		if len(args) > 1 {
			imagePath = args[1]
		}
		suggest(cfg, args[0], imagePath)
	case "presets":
		listPresets(cfg)
	default:
		showUsage()
	}
}

func showUsage() {
	fmt.Println("Usage:")
	fmt.Println("  artstudio serve                            - Serve the drawing session over HTTP")
	fmt.Println("  artstudio demo <out.png>                   - Draw the demo scene and write a PNG")
	fmt.Println("  artstudio preview                          - Show ASCII preview of the demo scene")
	fmt.Println("  artstudio suggest <description> [image]    - Ask for brush and canvas suggestions")
	fmt.Println("  artstudio presets                          - List the brush library")
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -listen <addr>     - Listen address (default :3002)")
	fmt.Println("  -loglevel <level>  - Log level (debug, info, warn, error)")
	fmt.Println("  -history <n>       - Undo snapshots kept per layer (default 30)")
	fmt.Println("  -db <path>         - SQLite database path (default in-memory)")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  LISTEN_ADDR, LOG_LEVEL, HISTORY_LIMIT, DATA_SOURCE_NAME")
	fmt.Println("  OPENAI_API_KEY     - Suggestion service key (required for suggest)")
	fmt.Println("  OPENAI_BASE_URL    - Suggestion service base URL")
	fmt.Println("  OPENAI_MODEL       - Suggestion model")
}

func serve(cfg config.Config) {
	store, err := sqlite.Open(cfg.DataSourceName)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open store")
	}
	defer store.Close()
	logrus.WithField("dsn", cfg.DataSourceName).Info("Store opened")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := session.New(session.Options{HistoryLimit: cfg.HistoryLimit})
	if err := sess.NewCanvas(domain.DefaultCanvasSettings()); err != nil {
		logrus.WithError(err).Fatal("Failed to create canvas")
	}

	srv := server.New(ctx, server.Options{
		Session:   sess,
		Store:     store,
		Suggester: assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel),
	})

	fmt.Println("Press Ctrl+C to stop")
	if err := srv.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logrus.WithError(err).Fatal("Server failed")
	}
	fmt.Println("\nStopping...")
}

// demoScene draws the scripted scene: a brush stroke on the background,
// a half-opacity layer with a second stroke, and a cut/paste of a corner.
func demoScene(cfg config.Config, width, height int) (*domain.PixelBuffer, error) {
	sess := session.New(session.Options{HistoryLimit: cfg.HistoryLimit})
	settings := domain.DefaultCanvasSettings()
	settings.Width, settings.Height = width, height
	if err := sess.NewCanvas(settings); err != nil {
		return nil, err
	}

	w, h := float64(width), float64(height)
	drag := func(points ...domain.Point) {
		sess.PointerDown(points[0].X, points[0].Y)
		for _, p := range points[1:] {
			sess.PointerMove(p.X, p.Y)
		}
		sess.PointerUp()
	}

	if err := sess.SetTool(stroke.Brush{Size: h / 8, Opacity: 1, Color: stroke.DefaultColor}); err != nil {
		return nil, err
	}
	drag(domain.Point{X: w * 0.1, Y: h * 0.8}, domain.Point{X: w * 0.5, Y: h * 0.2}, domain.Point{X: w * 0.9, Y: h * 0.8})

	ls, err := sess.AddLayer("Wash")
	if err != nil {
		return nil, err
	}
	if err := sess.SetOpacity(ls.ID, 0.5); err != nil {
		return nil, err
	}
	red := render.ClassicPalette[0]
	if err := sess.SetTool(stroke.Brush{Size: h / 4, Opacity: 0.8, Color: red}); err != nil {
		return nil, err
	}
	drag(domain.Point{X: w * 0.1, Y: h * 0.5}, domain.Point{X: w * 0.9, Y: h * 0.5})

	if err := sess.SetTool(stroke.Smudge{Size: h / 6, Strength: 0.6}); err != nil {
		return nil, err
	}
	drag(domain.Point{X: w * 0.3, Y: h * 0.5}, domain.Point{X: w * 0.45, Y: h * 0.6})

	sess.SelectRect(domain.NewRect(width*3/8, height*3/8, width/4, height/4))
	if err := sess.Cut(); err != nil {
		return nil, err
	}
	sess.SelectRect(domain.NewRect(0, 0, 1, 1))
	if err := sess.Paste(); err != nil {
		return nil, err
	}

	logrus.WithField("layers", len(sess.State().Layers)).Debug("Demo scene drawn")
	return sess.Composite(), nil
}

func writeDemo(cfg config.Config, path string) {
	buf, err := demoScene(cfg, 640, 360)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := render.EncodePNG(f, buf); err != nil {
		fmt.Printf("Error writing PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %dx%d composite to %s\n", buf.Width(), buf.Height(), path)
}

func previewDemo(cfg config.Config) {
	buf, err := demoScene(cfg, 128, 64)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("ASCII Preview (128x64 demo composite):")
	fmt.Println()
	if err := render.Preview(os.Stdout, buf, 64); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println(render.PreviewLegend)
}

func suggest(cfg config.Config, description, imagePath string) {
	req := assistant.Request{DrawingStyleDescription: description}
	if imagePath != "" {
		data, err := os.ReadFile(imagePath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		req.ExampleArtworkDataURI = codec.DataURI(http.DetectContentType(data), data)
	}

	client := assistant.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	fmt.Printf("Asking %s for suggestions...\n", client)

	ctx, cancel := context.WithTimeout(context.Background(), assistant.DefaultTimeout)
	defer cancel()

	result, err := client.Suggest(ctx, req)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Style analysis:")
	fmt.Printf("  %s\n", result.StyleAnalysis)
	fmt.Println()
	fmt.Println("Suggested brushes:")
	for i, b := range result.SuggestedBrushes {
		fmt.Printf("  %d. %s\n", i+1, b)
	}
	fmt.Println()
	fmt.Println("Suggested canvas:")
	fmt.Printf("  Size:       %s\n", result.SuggestedCanvasSettings.Size)
	fmt.Printf("  Resolution: %s\n", result.SuggestedCanvasSettings.Resolution)
	fmt.Printf("  Profile:    %s\n", result.SuggestedCanvasSettings.ColorProfile)

	if cfg.DataSourceName == "" {
		return
	}
	store, err := sqlite.Open(cfg.DataSourceName)
	if err != nil {
		logrus.WithError(err).Warn("Failed to open store, suggestion not logged")
		return
	}
	defer store.Close()
	rec, err := storage.NewSuggestionRecord(description, imagePath != "", result)
	if err == nil {
		err = store.SaveSuggestion(ctx, rec)
	}
	if err != nil {
		logrus.WithError(err).Warn("Failed to log suggestion")
	}
}

func listPresets(cfg config.Config) {
	store, err := sqlite.Open(cfg.DataSourceName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	presets, err := store.GetPresets(ctx)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Brush library (%d presets):\n", len(presets))
	fmt.Println()
	family := ""
	for _, p := range presets {
		if p.Family != family {
			family = p.Family
			fmt.Printf("  %s\n", family)
		}
		settings, _ := json.Marshal(p.Settings)
		fmt.Printf("    %-16s %s\n", p.Name, settings)
	}
}
