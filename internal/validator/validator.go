// Package validator checks serialized UBL documents in two stages: XSD
// schema validation in-process through libxml2, then PEPPOL schematron
// business rules through an external containerized rule service. Rule
// violations are collected into a Report; infrastructure failures (missing
// schema, broken container) surface as errors so callers can tell the two
// apart.
package validator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rezonia/ubl-generator/internal/model"
)

// DefaultTimeout bounds a schematron container run
const DefaultTimeout = 2 * time.Minute

// Options configure a Validator
type Options struct {
	// SchemaDir holds UBL-Invoice-2.1.xsd and UBL-CreditNote-2.1.xsd
	SchemaDir string
	// Schematron enables the rule stage after a clean XSD pass
	Schematron bool
	// SchematronImage overrides the default container image
	SchematronImage string
	// Belgian passes the UBL.BE flag to the rule service
	Belgian bool
	// Timeout bounds the external process, DefaultTimeout when zero
	Timeout time.Duration
}

// Validator runs the two-stage validation pipeline. Validate blocks for the
// duration of the external run; callers validating at scale should run each
// call on its own goroutine.
type Validator struct {
	schemas    SchemaValidator
	runner     Runner
	schematron bool
	belgian    bool
	timeout    time.Duration
}

// New creates a validator with the default stages: libxml2 XSD validation
// and the dockerized PEPPOL schematron service.
func New(opts Options) *Validator {
	var runner Runner
	if opts.Schematron {
		runner = NewDockerRunner(opts.SchematronImage)
	}
	return NewWithStages(NewXSDValidator(opts.SchemaDir), runner, opts)
}

// NewWithStages wires explicit stage implementations. Tests use it to stub
// the stages; callers embedding their own rule engine can too.
func NewWithStages(schemas SchemaValidator, runner Runner, opts Options) *Validator {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Validator{
		schemas:    schemas,
		runner:     runner,
		schematron: opts.Schematron && runner != nil,
		belgian:    opts.Belgian,
		timeout:    timeout,
	}
}

// Validate runs XSD validation and, only on a clean pass, the schematron
// rules. Any XSD finding short-circuits the pipeline. No retries: a failed
// external invocation surfaces as an error.
func (v *Validator) Validate(ctx context.Context, xml []byte, docType model.DocumentType) (*Report, error) {
	report := &Report{}

	findings, err := v.schemas.Validate(xml, docType)
	if err != nil {
		return nil, err
	}
	if len(findings) > 0 {
		log.Debug().Int("findings", len(findings)).Msg("XSD stage failed, skipping schematron")
		report.Findings = findings
		return report, nil
	}

	if !v.schematron {
		return report, nil
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	out, err := v.runner.Run(ctx, xml, v.belgian)
	if err != nil {
		return nil, err
	}
	ruleFindings, err := parseSVRL(out)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("findings", len(ruleFindings)).Msg("schematron stage finished")

	report.Findings = append(report.Findings, ruleFindings...)
	return report, nil
}
