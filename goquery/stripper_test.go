package goquery_test

import (
	"testing"

	"github.com/fwojciec/leadscan"
	"github.com/fwojciec/leadscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptStripper_Process(t *testing.T) {
	t.Parallel()

	t.Run("removes script and style contents", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>.a{background:url(bg@2x.png)}</style></head>
<body><p>info@example.com</p><script>var dev = "dev@example.com";</script></body></html>`

		out, err := goquery.NewScriptStripper().Process(html)

		require.NoError(t, err)
		assert.Contains(t, out, "info@example.com")
		assert.NotContains(t, out, "dev@example.com")
		assert.NotContains(t, out, "bg@2x.png")
	})

	t.Run("removes noscript and template elements", func(t *testing.T) {
		t.Parallel()

		html := `<body><noscript>hidden@example.com</noscript><template><p>tpl@example.com</p></template><p>shown@example.com</p></body>`

		out, err := goquery.NewScriptStripper().Process(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"shown@example.com"}, leadscan.ExtractEmails(out))
	})

	t.Run("keeps attributes such as mailto links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="mailto:sales@example.com">Email us</a>`

		out, err := goquery.NewScriptStripper().Process(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"sales@example.com"}, leadscan.ExtractEmails(out))
	})

	t.Run("decodes character references", func(t *testing.T) {
		t.Parallel()

		html := `<p>info&#64;example.com</p>`

		out, err := goquery.NewScriptStripper().Process(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"info@example.com"}, leadscan.ExtractEmails(out))
	})

	t.Run("handles empty input", func(t *testing.T) {
		t.Parallel()

		out, err := goquery.NewScriptStripper().Process("")

		require.NoError(t, err)
		assert.Empty(t, leadscan.ExtractContacts(out).Emails)
	})
}
