package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	xsdvalidate "github.com/terminalstatic/go-xsd-validate"

	"github.com/rezonia/ubl-generator/internal/model"
)

// SchemaValidator checks a serialized document against the XSD for its type.
// Structural violations come back as findings; infrastructure problems
// (missing schema file, unloadable schema) come back as errors.
type SchemaValidator interface {
	Validate(xml []byte, docType model.DocumentType) ([]Finding, error)
}

// Schema file names inside the schema directory, one per document type.
const (
	invoiceSchemaFile    = "UBL-Invoice-2.1.xsd"
	creditNoteSchemaFile = "UBL-CreditNote-2.1.xsd"
)

var (
	libxmlOnce sync.Once
	libxmlErr  error
)

// XSDValidator validates documents against the UBL 2.1 maindoc schemas using
// libxml2. Parsed schema handlers are cached per document type.
type XSDValidator struct {
	dir string

	mu       sync.Mutex
	handlers map[model.DocumentType]*xsdvalidate.XsdHandler
}

// NewXSDValidator creates a validator reading schemas from dir
func NewXSDValidator(dir string) *XSDValidator {
	libxmlOnce.Do(func() {
		libxmlErr = xsdvalidate.Init()
	})
	return &XSDValidator{
		dir:      dir,
		handlers: make(map[model.DocumentType]*xsdvalidate.XsdHandler),
	}
}

// SchemaPath returns the schema file used for a document type
func (v *XSDValidator) SchemaPath(docType model.DocumentType) string {
	name := invoiceSchemaFile
	if docType == model.TypeCreditNote {
		name = creditNoteSchemaFile
	}
	return filepath.Join(v.dir, name)
}

func (v *XSDValidator) handler(docType model.DocumentType) (*xsdvalidate.XsdHandler, error) {
	if libxmlErr != nil {
		return nil, fmt.Errorf("libxml2 init failed: %w", libxmlErr)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if h, ok := v.handlers[docType]; ok {
		return h, nil
	}

	path := v.SchemaPath(docType)
	if _, err := os.Stat(path); err != nil {
		return nil, &SchemaNotFoundError{Path: path}
	}

	h, err := xsdvalidate.NewXsdHandlerUrl(path, xsdvalidate.ParsErrDefault)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	v.handlers[docType] = h
	return h, nil
}

// Validate parses the document and collects structural violations
func (v *XSDValidator) Validate(xml []byte, docType model.DocumentType) ([]Finding, error) {
	h, err := v.handler(docType)
	if err != nil {
		return nil, err
	}

	err = h.ValidateMem(xml, xsdvalidate.ValidErrDefault)
	if err == nil {
		return nil, nil
	}

	var verr xsdvalidate.ValidationError
	if errors.As(err, &verr) {
		findings := make([]Finding, 0, len(verr.Errors))
		for _, e := range verr.Errors {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  strings.TrimSpace(e.Message),
			})
		}
		return findings, nil
	}

	// not a structural violation: the document itself was unreadable
	return []Finding{{
		Severity: SeverityError,
		Message:  fmt.Sprintf("XSD validation error: %v", err),
	}}, nil
}
