package leadscan

import "strings"

// NormalizeURL turns user input into a fetchable absolute URL by adding an
// https:// prefix when the input does not already start with "http".
// No other validation is done; malformed input fails at fetch time.
func NormalizeURL(input string) string {
	if strings.HasPrefix(input, "http") {
		return input
	}
	return "https://" + input
}
