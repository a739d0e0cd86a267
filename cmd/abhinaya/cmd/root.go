// Package cmd contains the CLI commands for abhinaya.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ayusman/abhinaya/internal/app"
	"github.com/ayusman/abhinaya/internal/capture"
	"github.com/ayusman/abhinaya/internal/config"
	"github.com/ayusman/abhinaya/internal/detector"
	"github.com/ayusman/abhinaya/internal/overlay"
	"github.com/ayusman/abhinaya/internal/server"
)

var (
	cfgFile string
	v       = config.NewViper()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "abhinaya",
	Short: "Webcam hand-gesture and facial-cue detector",
	Long: `abhinaya watches the webcam and labels what it sees:

  - each hand's gesture (open, closed, pointing, peace, thumbs-up, rock,
    hang-loose, spock, L-shape)
  - blinks and mouth openings, counted once per closing or opening
  - a coarse emotion (surprised, neutral, happy) from the lip distance

Press ESC in the preview window to quit.`,
	SilenceUsage: true,
	RunE:         runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or $HOME/.config/abhinaya/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log every frame result")
	rootCmd.Flags().String("serve", "", "serve the HTTP observer on this address, e.g. :8080")

	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	v.BindPFlag("server.addr", rootCmd.Flags().Lookup("serve"))
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	// Try MediaPipe first, fall back to mock detector
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(cfg.DetectorConfig()); err == nil {
		det = mp
		log.Println("Using MediaPipe landmark detection")
	} else if errors.Is(err, detector.ErrServiceNotFound) {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	} else {
		return fmt.Errorf("creating detector: %w", err)
	}
	defer det.Close()

	window := overlay.NewWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	defer window.Close()

	id := uuid.NewString()
	sessionCfg := app.Config{
		ID:         id,
		Camera:     capture.NewCamera(cfg.CaptureConfig()),
		Detector:   det,
		Display:    window,
		Thresholds: cfg.TrackerThresholds(),
		Emotion:    cfg.EmotionClassifier(),
		Mirror:     cfg.Camera.Mirror,
		Verbose:    cfg.Verbose,
	}

	if addr := cfg.Server.Addr; addr != "" {
		hub := server.NewHub(id)
		sessionCfg.Publisher = hub

		webDir := findWebDir()
		if webDir != "" {
			log.Printf("Serving static files from: %s", webDir)
		}

		srv := server.New(server.Config{StaticDir: webDir, Hub: hub})
		go func() {
			log.Printf("Starting observer on %s", addr)
			if err := srv.ListenAndServe(addr); err != nil {
				log.Printf("Observer stopped: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(sessionCfg).Run(ctx); err != nil {
		return fmt.Errorf("running session: %w", err)
	}

	return nil
}

// findWebDir searches for the observer's web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.config/abhinaya/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	dir, err := config.Dir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(dir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
