package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-generator/internal/config"
	"github.com/rezonia/ubl-generator/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for generating and validating UBL documents.

The API provides endpoints for:
  - POST /api/v1/generate/invoice     - Generate an invoice from JSON
  - POST /api/v1/generate/creditnote  - Generate a credit note from JSON
  - POST /api/v1/validate             - Validate a UBL document
  - GET  /health                      - Health check

Configuration is read from env vars (HTTP_HOST, HTTP_PORT, XSD_DIR,
SCHEMATRON_ENABLED, SCHEMATRON_IMAGE, VALIDATE_TIMEOUT); flags win.

Examples:
  # Start server on default port
  ubl-generator serve

  # Start on custom address with schematron enabled
  SCHEMATRON_ENABLED=true ubl-generator serve --address :9090

  # Start in debug mode
  ubl-generator serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from env)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 5*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	addr := serverAddr
	if addr == "" {
		addr = cfg.HTTP.Addr()
	}

	srvConfig := &server.Config{
		Address:         addr,
		SchemaDir:       cfg.Validate.SchemaDir,
		Schematron:      cfg.Validate.Schematron,
		SchematronImage: cfg.Validate.SchematronImage,
		ValidateTimeout: cfg.Validate.Timeout,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		Debug:           serverDebug,
	}

	srv := server.NewServer(srvConfig)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", addr)
	if cfg.Validate.Schematron {
		fmt.Println("Schematron validation enabled")
	} else {
		fmt.Println("Schematron validation disabled")
	}

	return srv.Run()
}
