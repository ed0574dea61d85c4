package leadscan

import (
	"regexp"
	"strings"
)

// Contacts holds the contact details found in a page.
// Both slices are deduplicated and ordered by first occurrence.
type Contacts struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

var (
	// The TLD must be alphabetic and must not run into another letter or
	// digit, which rejects version strings such as jquery@3.7.1 and trailing
	// digits as in a@b.com2. Other trailing characters, "_" included, end
	// the address. Group 1 is the address without its terminator.
	emailRe = regexp.MustCompile(`(?i)([a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,})(?:[^a-z0-9]|$)`)

	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\-.\s]?)?\(?\d{3}\)?[\-.\s]?\d{3}[\-.\s]?\d{4}`)
)

// nonContactExtensions are asset suffixes that look like email domains,
// e.g. "logo@2x.png".
var nonContactExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".js", ".css"}

// Phone numbers outside this digit range are years, short codes or
// unrelated digit runs.
const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// ExtractContacts scans text for email addresses and phone numbers.
// An empty result is not an error.
func ExtractContacts(text string) Contacts {
	return Contacts{
		Emails:       ExtractEmails(text),
		PhoneNumbers: ExtractPhoneNumbers(text),
	}
}

// ExtractEmails returns the lowercased, deduplicated email addresses in
// text, in order of first occurrence. Asset filenames and addresses with a
// numeric final domain label are dropped.
func ExtractEmails(text string) []string {
	emails := []string{}
	seen := make(map[string]struct{})
	for _, match := range findEmails(text) {
		email := strings.ToLower(match)
		if !isContactEmail(email) {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		emails = append(emails, email)
	}
	return emails
}

// findEmails returns every address matched by emailRe. Each search resumes
// right after the previous address so its terminator can start the next one.
func findEmails(text string) []string {
	var matches []string
	for start := 0; start < len(text); {
		loc := emailRe.FindStringSubmatchIndex(text[start:])
		if loc == nil {
			break
		}
		matches = append(matches, text[start+loc[2]:start+loc[3]])
		start += loc[3]
	}
	return matches
}

func isContactEmail(email string) bool {
	for _, ext := range nonContactExtensions {
		if strings.HasSuffix(email, ext) {
			return false
		}
	}

	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	label := domain[strings.LastIndexByte(domain, '.')+1:]
	return !isDigits(label)
}

// ExtractPhoneNumbers returns the phone-number-shaped strings in text whose
// digit count is between 10 and 15, deduplicated by their trimmed form and
// ordered by first occurrence. Formatting is preserved as found.
func ExtractPhoneNumbers(text string) []string {
	phones := []string{}
	seen := make(map[string]struct{})
	for _, match := range phoneRe.FindAllString(text, -1) {
		n := countDigits(match)
		if n < minPhoneDigits || n > maxPhoneDigits {
			continue
		}
		phone := strings.TrimSpace(match)
		if _, ok := seen[phone]; ok {
			continue
		}
		seen[phone] = struct{}{}
		phones = append(phones, phone)
	}
	return phones
}

func countDigits(s string) int {
	var n int
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// isDigits reports whether s is non-empty and entirely ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	return countDigits(s) == len(s)
}
