package leadscan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// FormatResult formats a result for terminal display.
func FormatResult(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)

	fmt.Fprintf(&b, "\nEmails (%d):\n", len(r.Emails))
	if len(r.Emails) == 0 {
		b.WriteString("  (none found)\n")
	}
	for _, e := range r.Emails {
		fmt.Fprintf(&b, "  %s\n", e)
	}

	fmt.Fprintf(&b, "\nPhone numbers (%d):\n", len(r.PhoneNumbers))
	if len(r.PhoneNumbers) == 0 {
		b.WriteString("  (none found)\n")
	}
	for _, p := range r.PhoneNumbers {
		fmt.Fprintf(&b, "  %s\n", p)
	}

	return b.String()
}

// WriteCSV writes results as CSV with a type,value,url header.
// Each result contributes its emails followed by its phone numbers.
func WriteCSV(w io.Writer, results []*Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "value", "url"}); err != nil {
		return err
	}
	for _, r := range results {
		for _, e := range r.Emails {
			if err := cw.Write([]string{"email", e, r.URL}); err != nil {
				return err
			}
		}
		for _, p := range r.PhoneNumbers {
			if err := cw.Write([]string{"phone", p, r.URL}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
