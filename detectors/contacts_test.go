package detectors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractContactDetails_EmailsAndPhones(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<p>Write to support@example.com or sales@example.com.</p>
		<p>Call us: +1 555-123-4567</p>
	</body></html>`)

	contacts := ExtractContactDetails(doc)

	assert.Equal(t, []string{"sales@example.com", "support@example.com"}, contacts.Emails)
	require.NotEmpty(t, contacts.Phones)
	assert.Contains(t, contacts.Phones[0], "555")
}

func TestExtractContactDetails_DeduplicatedAndSorted(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<p>b@example.com a@example.com b@example.com</p>
	</body></html>`)

	contacts := ExtractContactDetails(doc)

	assert.Equal(t, []string{"a@example.com", "b@example.com"}, contacts.Emails)
}

func TestExtractContactDetails_CappedAtTen(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body><p>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "user%02d@example.com ", i)
	}
	b.WriteString("</p></body></html>")

	contacts := ExtractContactDetails(mustDoc(t, b.String()))

	assert.Len(t, contacts.Emails, 10)
	assert.Equal(t, "user00@example.com", contacts.Emails[0])
}

func TestExtractContactDetails_IgnoresScriptText(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<script>var tracker = "pixel@tracker.internal.example";</script>
		<p>hello@example.com</p>
	</body></html>`)

	contacts := ExtractContactDetails(doc)

	assert.Equal(t, []string{"hello@example.com"}, contacts.Emails)
}

func TestExtractContactDetails_EmptyPage(t *testing.T) {
	contacts := ExtractContactDetails(mustDoc(t, `<html><body><p>nothing here</p></body></html>`))

	assert.NotNil(t, contacts.Emails)
	assert.NotNil(t, contacts.Phones)
	assert.Empty(t, contacts.Emails)
	assert.Empty(t, contacts.Phones)
}
