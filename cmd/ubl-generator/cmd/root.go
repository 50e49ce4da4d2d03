package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	apiKey       string
	llmBaseURL   string
	llmModel     string
)

var rootCmd = &cobra.Command{
	Use:   "ubl-generator",
	Short: "Generate and validate PEPPOL BIS Billing 3.0 UBL documents",
	Long: `UBL Generator builds UBL 2.1 invoices and credit notes for the PEPPOL
BIS Billing 3.0 profile, optionally with the Belgian UBL.BE customization,
and validates documents against the UBL schemas and PEPPOL schematron rules.

Examples:
  # Generate an invoice from a JSON request
  ubl-generator generate invoice.json -o invoice.xml

  # Generate a Belgian credit note
  ubl-generator generate creditnote.json --type creditnote

  # Validate documents (XSD + schematron)
  ubl-generator validate invoice.xml --schema-dir ./schemas

  # Run the HTTP API
  ubl-generator serve`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "table", "Output format (json, table)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for the findings advisor (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for the advisor (env: LLM_MODEL)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load from environment variables if not set via flags
	if apiKey == "" {
		apiKey = os.Getenv("LLM_API_KEY")
	}
	if llmBaseURL == "" {
		llmBaseURL = os.Getenv("LLM_BASE_URL")
	}
	if llmModel == "" {
		llmModel = os.Getenv("LLM_MODEL")
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
