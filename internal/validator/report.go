package validator

import "fmt"

// Severity classifies a finding
type Severity string

const (
	// SeverityError marks an XSD structural violation
	SeverityError Severity = "error"
	// SeverityFatal marks a schematron failed-assert flagged fatal
	SeverityFatal Severity = "fatal"
	// SeverityWarning marks a schematron failed-assert flagged warning
	SeverityWarning Severity = "warning"
)

// Finding is one validation diagnostic. Message and Test preserve the
// original assertion text verbatim; it is the only actionable diagnostic
// the rule set provides.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Test     string   `json:"test,omitempty"`
}

func (f Finding) String() string {
	if f.Test == "" {
		return fmt.Sprintf("%s: %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("%s: %s\n       %s", f.Severity, f.Message, f.Test)
}

// Report collects the findings of a validation run. A nil or empty findings
// list means the document passed every enabled stage.
type Report struct {
	Findings []Finding `json:"findings"`
}

// OK returns true when no findings were collected
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

// Fatal returns the findings that block acceptance (XSD errors and fatal
// schematron asserts). Warnings are left to the caller's own policy.
func (r *Report) Fatal() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity != SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Warnings returns the warning-level findings
func (r *Report) Warnings() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			out = append(out, f)
		}
	}
	return out
}

// Strings renders every finding as a human-readable line
func (r *Report) Strings() []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.String())
	}
	return out
}
