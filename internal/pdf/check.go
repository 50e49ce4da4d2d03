// Package pdf sanity-checks attachment content before it is embedded.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Check verifies that content is a well-formed PDF. Embedded attachments are
// declared application/pdf in the generated XML, so junk bytes are rejected
// before they end up base64-encoded inside a document.
func Check(content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("attachment is empty")
	}
	if err := api.Validate(bytes.NewReader(content), nil); err != nil {
		return fmt.Errorf("attachment is not a valid PDF: %w", err)
	}
	return nil
}
