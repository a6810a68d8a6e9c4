package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"gocv.io/x/gocv"

	"github.com/ayusman/abhinaya/internal/app"
	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/export"
	"github.com/ayusman/abhinaya/internal/rig"
	"github.com/ayusman/abhinaya/internal/server"
	"github.com/ayusman/abhinaya/internal/store"
	"github.com/ayusman/abhinaya/internal/tray"
)

func main() {
	fmt.Println("Abhinaya - Face, Pose and Hand Rigging")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	rigOpts, err := cfg.RigOptions()
	if err != nil {
		log.Fatalf("Invalid rig options: %v", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	rigOpts = storedRigOptions(st, rigOpts)

	webDir := cfg.WebDir
	if webDir == "" {
		webDir = findWebDir(cfg.DataDir)
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	exporters := export.NewManager(cfg.ExporterDir)
	if err := exporters.Discover(); err != nil {
		log.Printf("Failed to discover exporters: %v", err)
	}
	for _, ex := range exporters.List() {
		log.Printf("Exporter %s (%s) loaded", ex.Manifest.Name, ex.Manifest.Format)
	}
	runner := export.NewRunner(st, exporters, export.NewExecutor(cfg.ExportTimeout), cfg.ExportDir())

	hub := server.NewRigHub()
	defer hub.Close()
	stream := server.NewStreamHandler()

	a := app.New(app.Config{
		Store:          st,
		Camera:         cfg.CaptureOptions(),
		FPS:            cfg.FPS,
		Rig:            rigOpts,
		StillThreshold: cfg.StillThreshold,
		Detector:       cfg.DetectorConfig(),
		Exporter:       runner,
	})
	defer a.Close()

	a.OnResult(hub.Publish)
	a.OnFrame(func(frame *gocv.Mat) {
		if err := stream.Push(frame); err != nil {
			log.Printf("Error encoding preview: %v", err)
		}
	})

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Rig:       rigOpts,
		Hub:       hub,
		Stream:    stream,
		Exporter:  runner,
		Recorder:  a,
		// Settings saved through the API reach the running pipeline.
		OnRigOptions: a.SetRigOptions,
	})

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.Addr)
		if err := srv.ListenAndServe(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Printf("Camera unavailable (%v); serving the solve API only", err)
	} else {
		a.SetEnabled(true)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.Tray {
		<-ctx.Done()
		log.Println("Shutting down")
		return
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnRecord(func(recording bool) {
		if !recording {
			a.StopRecording()
			return
		}
		if _, err := a.StartRecording(""); err != nil {
			log.Printf("Failed to start recording: %v", err)
		}
	})
	t.OnViewer(func() { openBrowser(viewerURL(cfg.Addr)) })
	a.OnResult(func(res *rig.Result) { t.SetResult(res) })

	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	// The tray owns the main thread until quit.
	t.Run()
	log.Println("Shutting down")
}

// storedRigOptions overlays the saved settings on the environment's rig
// options. Unusable settings are logged and the environment wins.
func storedRigOptions(st *store.Store, opts rig.Options) rig.Options {
	settings, err := st.Settings().All()
	if err != nil {
		log.Printf("Failed to load settings: %v", err)
		return opts
	}
	merged, err := config.ApplySettings(opts, settings)
	if err != nil {
		log.Printf("Ignoring stored settings: %v", err)
		return opts
	}
	return merged
}

// viewerURL returns the browser URL for a listen address. Wildcard and
// empty hosts map to localhost.
func viewerURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	if port == "" {
		return "http://" + host
	}
	return "http://" + net.JoinHostPort(host, port)
}

// findWebDir searches for the web directory next to the working directory
// and in the data directory.
func findWebDir(dataDir string) string {
	for _, p := range []string{"web", "../web", "../../web", filepath.Join(dataDir, "web")} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if absPath, err := filepath.Abs(p); err == nil {
				return absPath
			}
			return p
		}
	}
	return ""
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
