package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-generator/internal/model"
	"github.com/rezonia/ubl-generator/internal/pdf"
	"github.com/rezonia/ubl-generator/pkg/ubllib"
)

var (
	generateType   string
	generateOutput string
	generateAttach string
)

var generateCmd = &cobra.Command{
	Use:   "generate [request.json]",
	Short: "Generate a UBL document from a JSON request",
	Long: `Generate a UBL 2.1 invoice or credit note from a JSON document request.

The request carries the document number, the supplier and customer parties,
the lines, and optionally payment instructions and a base64 PDF attachment.
A PDF can also be attached from disk with --attach.

Examples:
  ubl-generator generate invoice.json
  ubl-generator generate invoice.json -o invoice.xml
  ubl-generator generate creditnote.json --type creditnote
  ubl-generator generate invoice.json --attach detail.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateType, "type", "t", "invoice", "Document type (invoice, creditnote)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().StringVar(&generateAttach, "attach", "", "PDF file to embed as attachment")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	docType, err := parseDocType(generateType)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	req, err := ubllib.ParseDocumentJSON(data)
	if err != nil {
		return err
	}

	doc, err := req.Build(docType)
	if err != nil {
		return err
	}

	if generateAttach != "" {
		content, err := os.ReadFile(generateAttach)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
		if err := pdf.Check(content); err != nil {
			return err
		}
		doc.Attach(generateAttach, content)
	}

	xml, err := ubllib.Build(doc)
	if err != nil {
		return err
	}

	if generateOutput == "" {
		_, err = os.Stdout.Write(xml)
		return err
	}
	if err := os.WriteFile(generateOutput, xml, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	printVerbose("wrote %s (%d bytes)\n", generateOutput, len(xml))
	return nil
}

func parseDocType(s string) (model.DocumentType, error) {
	switch s {
	case "invoice":
		return model.TypeInvoice, nil
	case "creditnote":
		return model.TypeCreditNote, nil
	default:
		return "", fmt.Errorf("unknown document type %q (want invoice or creditnote)", s)
	}
}
