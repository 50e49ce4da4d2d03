package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSVRL = `<?xml version="1.0" encoding="UTF-8"?>
<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl">
  <svrl:active-pattern name="UBL-model"/>
  <svrl:fired-rule context="/ubl:Invoice"/>
  <svrl:failed-assert flag="fatal" test="(cbc:ProfileID)" location="/:Invoice[1]">
    <svrl:text>
      [PEPPOL-EN16931-R007] Business process MUST be provided.
    </svrl:text>
  </svrl:failed-assert>
  <svrl:fired-rule context="/ubl:Invoice/cac:PaymentMeans"/>
  <svrl:failed-assert flag="warning" test="(cbc:PaymentID)" location="/:Invoice[1]/cac:PaymentMeans[1]">
    <svrl:text>[PEPPOL-EN16931-R061] Payment reference SHOULD be provided.</svrl:text>
  </svrl:failed-assert>
</svrl:schematron-output>`

func TestParseSVRL(t *testing.T) {
	findings, err := parseSVRL([]byte(sampleSVRL))
	require.NoError(t, err)
	require.Len(t, findings, 2)

	// fatal findings come first
	assert.Equal(t, SeverityFatal, findings[0].Severity)
	assert.Equal(t, "[PEPPOL-EN16931-R007] Business process MUST be provided.", findings[0].Message)
	assert.Equal(t, "(cbc:ProfileID)", findings[0].Test)

	assert.Equal(t, SeverityWarning, findings[1].Severity)
	assert.Equal(t, "[PEPPOL-EN16931-R061] Payment reference SHOULD be provided.", findings[1].Message)
}

func TestParseSVRLCleanReport(t *testing.T) {
	clean := `<?xml version="1.0"?>
<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl">
  <svrl:fired-rule context="/ubl:Invoice"/>
</svrl:schematron-output>`

	findings, err := parseSVRL([]byte(clean))
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestParseSVRLEmptyInput(t *testing.T) {
	_, err := parseSVRL(nil)
	require.Error(t, err)
	var execErr *SchematronExecutionError
	require.ErrorAs(t, err, &execErr)

	_, err = parseSVRL([]byte("   \n  "))
	require.Error(t, err)
}

func TestParseSVRLMalformedInput(t *testing.T) {
	_, err := parseSVRL([]byte("<svrl:schematron-output>"))
	require.Error(t, err)
	var execErr *SchematronExecutionError
	require.ErrorAs(t, err, &execErr)
}

func TestSqueeze(t *testing.T) {
	assert.Equal(t, "a b c", squeeze("  a\n\t b   c "))
	assert.Equal(t, "", squeeze("  \n "))
}
