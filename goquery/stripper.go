// Package goquery provides HTML processing built on goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/leadscan"
)

var _ leadscan.Preprocessor = (*ScriptStripper)(nil)

// nonContentSelector matches elements whose text is never shown as page
// content. Bundled libraries inside them produce most false positives,
// e.g. "jquery@3.7.1" or obfuscated address builders.
const nonContentSelector = "script, style, noscript, template"

// ScriptStripper removes script, style, noscript and template elements
// from HTML so that only markup and visible text reach contact extraction.
// Character references are decoded on the way, so "info&#64;example.com"
// comes out as "info@example.com".
type ScriptStripper struct{}

// NewScriptStripper creates a new ScriptStripper.
func NewScriptStripper() *ScriptStripper {
	return &ScriptStripper{}
}

// Process returns html without non-content elements.
func (s *ScriptStripper) Process(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", leadscan.Errorf(leadscan.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(nonContentSelector).Remove()

	out, err := doc.Html()
	if err != nil {
		return "", leadscan.Errorf(leadscan.EINTERNAL, "failed to render HTML: %v", err)
	}
	return out, nil
}
