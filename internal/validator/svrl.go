package validator

import (
	"strings"

	"github.com/beevik/etree"
)

// parseSVRL extracts failed-assert findings from an SVRL report. Elements
// are matched by local name only, so the svrl namespace prefix is ignored.
// A well-formed report without failed asserts yields zero findings; output
// that cannot be parsed is surfaced as an execution error, never swallowed.
func parseSVRL(report []byte) ([]Finding, error) {
	if len(strings.TrimSpace(string(report))) == 0 {
		return nil, &SchematronExecutionError{Message: "empty SVRL report"}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(report); err != nil {
		return nil, &SchematronExecutionError{Message: "unparseable SVRL report", Cause: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &SchematronExecutionError{Message: "SVRL report has no root element"}
	}

	var findings []Finding
	for _, flag := range []Severity{SeverityFatal, SeverityWarning} {
		for _, node := range failedAsserts(root, string(flag)) {
			findings = append(findings, Finding{
				Severity: flag,
				Message:  assertText(node),
				Test:     squeeze(node.SelectAttrValue("test", "")),
			})
		}
	}
	return findings, nil
}

func failedAsserts(root *etree.Element, flag string) []*etree.Element {
	var out []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == "failed-assert" && el.SelectAttrValue("flag", "") == flag {
			out = append(out, el)
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return out
}

func assertText(node *etree.Element) string {
	var parts []string
	for _, child := range node.ChildElements() {
		if child.Tag == "text" {
			parts = append(parts, child.Text())
		}
	}
	return squeeze(strings.Join(parts, " "))
}

// squeeze collapses whitespace runs into single spaces
func squeeze(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
