package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hydrohtml/hydro/internal/config"
	"github.com/hydrohtml/hydro/internal/demo"
	"github.com/hydrohtml/hydro/internal/logging"
	"github.com/hydrohtml/hydro/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the streaming component preview server",
	Long: `Start the preview server. The index page renders the demo component
gallery; /component/<tag> renders one component in isolation. Output is
streamed chunk by chunk as the renderer produces it.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8787, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().Int("cache-size", 512, "Template cache capacity")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("cache.size", serveCmd.Flags().Lookup("cache-size"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := logging.New(cfg.Logging())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Addr(), demo.Registry(), cfg.Cache.Size, logger)
	fmt.Printf("Starting hydro preview server at http://%s\n", cfg.Addr())
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
