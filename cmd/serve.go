package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kozaktomas/skintone-advisor/internal/config"
	"github.com/kozaktomas/skintone-advisor/internal/recommend"
	"github.com/kozaktomas/skintone-advisor/internal/skintone"
	"github.com/kozaktomas/skintone-advisor/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Skintone Advisor web server.
The server accepts photo uploads on /upload-image, classifies the skin tone of
the most confident face and serves product recommendations on /recommend and
/full-makeup-recommend. The same routes are available under /api/v1.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 5000, "Port to listen on (overrides WEB_PORT)")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to (overrides WEB_HOST)")
	serveCmd.Flags().Bool("legacy-status", false, "Answer every analysis outcome with HTTP 200 (overrides WEB_LEGACY_STATUS)")
	addDetectorFlags(serveCmd)
}

// applyServeFlags copies explicitly set server flags into cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) {
	override(cmd, "port", &cfg.Web.Port, mustGetInt)
	override(cmd, "host", &cfg.Web.Host, mustGetString)
	override(cmd, "legacy-status", &cfg.Web.LegacyStatus, mustGetBool)
	applyDetectorFlags(cmd, cfg)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	applyServeFlags(cmd, cfg)

	fmt.Printf("Loading %s face detector from %s...\n", cfg.Detector.Backend, cfg.Detector.ModelPath)
	locator, err := newLocator(cfg)
	if err != nil {
		return err
	}
	defer locator.Close()

	analyzer := skintone.NewAnalyzer(locator)
	catalog := recommend.NewCatalog(cfg.Catalog)
	server := web.NewServer(cfg, analyzer, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Skintone Advisor on http://%s\n", cfg.Web.Addr())
	if cfg.Web.LegacyStatus {
		fmt.Println("Legacy status mode: analysis outcomes are always answered with 200")
	}
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
