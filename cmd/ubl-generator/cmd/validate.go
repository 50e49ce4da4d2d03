package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-generator/internal/advisor"
	"github.com/rezonia/ubl-generator/internal/validator"
)

var (
	validateType    string
	validateBelgian bool
	schemaDir       string
	noSchematron    bool
	schematronImage string
	validateTimeout time.Duration
	explainFindings bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate UBL documents",
	Long: `Validate one or more UBL documents in two stages: XSD schema validation
against the UBL 2.1 schemas, then the PEPPOL schematron business rules
through a containerized rule service. A document that fails the schema
stage is not sent to the rule stage.

Examples:
  ubl-generator validate invoice.xml --schema-dir ./schemas
  ubl-generator validate *.xml --type invoice --belgian
  ubl-generator validate invoice.xml --no-schematron
  ubl-generator validate invoice.xml --explain --api-key <key>`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateType, "type", "t", "invoice", "Document type (invoice, creditnote)")
	validateCmd.Flags().BoolVar(&validateBelgian, "belgian", false, "Apply the UBL.BE rule set")
	validateCmd.Flags().StringVar(&schemaDir, "schema-dir", "schemas", "Directory with the UBL 2.1 XSD files")
	validateCmd.Flags().BoolVar(&noSchematron, "no-schematron", false, "Skip the schematron stage")
	validateCmd.Flags().StringVar(&schematronImage, "schematron-image", "", "Schematron container image")
	validateCmd.Flags().DurationVar(&validateTimeout, "timeout", validator.DefaultTimeout, "Timeout per schematron run")
	validateCmd.Flags().BoolVar(&explainFindings, "explain", false, "Explain findings with the LLM advisor")
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File        string   `json:"file"`
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	docType, err := parseDocType(validateType)
	if err != nil {
		return err
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	v := validator.New(validator.Options{
		SchemaDir:       schemaDir,
		Schematron:      !noSchematron,
		SchematronImage: schematronImage,
		Belgian:         validateBelgian,
		Timeout:         validateTimeout,
	})

	var adv *advisor.Advisor
	if explainFindings && apiKey != "" {
		var clientOpts []advisor.ClientOption
		if llmBaseURL != "" {
			clientOpts = append(clientOpts, advisor.WithBaseURL(llmBaseURL))
		}
		adv = advisor.New(advisor.NewClient(apiKey, clientOpts...), llmModel)
	}

	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := &ValidationResult{File: file, Valid: true}

		data, err := os.ReadFile(file)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
			results = append(results, result)
			allValid = false
			continue
		}

		report, err := v.Validate(context.Background(), data, docType)
		if err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err.Error())
			results = append(results, result)
			allValid = false
			continue
		}

		for _, f := range report.Fatal() {
			result.Errors = append(result.Errors, f.String())
		}
		for _, f := range report.Warnings() {
			result.Warnings = append(result.Warnings, f.String())
		}
		result.Valid = len(result.Errors) == 0
		if !result.Valid {
			allValid = false
		}

		if adv != nil && !report.OK() {
			text, err := adv.Explain(context.Background(), docType, report)
			if err != nil {
				printVerbose("advisor failed for %s: %v\n", file, err)
			} else {
				result.Explanation = text
			}
		}

		results = append(results, result)
	}

	if outputFormat == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
			if r.Explanation != "" {
				fmt.Printf("  %s\n", r.Explanation)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}
	return nil
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			if info.IsDir() {
				err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".xml") {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
			} else {
				files = append(files, arg)
			}
			continue
		}
		files = append(files, matches...)
	}

	return files, nil
}
