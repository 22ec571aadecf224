package detectors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopify-insights/internal/types"
)

func TestExtractFAQs_DisclosurePattern(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<details>
			<summary>Do you ship internationally?</summary>
			<div>Yes, we ship worldwide.</div>
		</details>
		<details>
			<summary>How long are returns accepted?</summary>
			<p>30 days from delivery.</p>
		</details>
	</body></html>`)

	faqs := ExtractFAQs(doc)

	require.Len(t, faqs, 2)
	assert.Equal(t, "Do you ship internationally?", faqs[0].Question)
	assert.Equal(t, "Yes, we ship worldwide.", faqs[0].Answer)
	assert.Equal(t, "30 days from delivery.", faqs[1].Answer)
}

func TestExtractFAQs_HeadingPattern(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h3>How do I track my order?</h3>
		<p>Use the link in your confirmation email.</p>
		<p>Tracking updates can take 24 hours.</p>
		<h3>Can I change my address?</h3>
		<p>Contact us within 2 hours of ordering.</p>
	</body></html>`)

	faqs := ExtractFAQs(doc)

	require.Len(t, faqs, 2)
	assert.Equal(t, "How do I track my order?", faqs[0].Question)
	assert.Equal(t, "Use the link in your confirmation email. Tracking updates can take 24 hours.", faqs[0].Answer)
	assert.Equal(t, "Contact us within 2 hours of ordering.", faqs[1].Answer)
}

func TestExtractFAQs_AnswerStopsAtNextHeadingOfAnyLevel(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h2>Question one?</h2>
		<p>Answer one.</p>
		<h5>Not part of answer one</h5>
		<p>Unrelated.</p>
	</body></html>`)

	faqs := ExtractFAQs(doc)

	require.NotEmpty(t, faqs)
	assert.Equal(t, "Answer one.", faqs[0].Answer)
}

func TestExtractFAQs_HeadingWithoutAnswerSkipped(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<h2>Just a section title</h2>
		<h2>Another title</h2>
	</body></html>`)

	assert.Empty(t, ExtractFAQs(doc))
}

func TestDedupFAQs_FuzzyKeyCollapsesNearDuplicates(t *testing.T) {
	longQ := strings.Repeat("q", 80)
	faqs := DedupFAQs([]types.FAQ{
		{Question: longQ + " first variant", Answer: "Same answer."},
		{Question: longQ + " second variant", Answer: "same ANSWER."},
		{Question: "Different?", Answer: "Other."},
	})

	require.Len(t, faqs, 2)
	assert.Equal(t, longQ+" first variant", faqs[0].Question)
}

func TestDedupFAQs_CappedAtFifty(t *testing.T) {
	var faqs []types.FAQ
	for i := 0; i < 80; i++ {
		faqs = append(faqs, types.FAQ{
			Question: fmt.Sprintf("Question %d?", i),
			Answer:   fmt.Sprintf("Answer %d.", i),
		})
	}

	assert.Len(t, DedupFAQs(faqs), 50)
}

func TestDiscoverFAQPages_AnchorsAndGuesses(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="/pages/faq">FAQ</a>
		<a href="/pages/help">Help Center</a>
	</body></html>`)

	pages := DiscoverFAQPages(doc, testBase)

	require.Len(t, pages, 4)
	assert.Equal(t, testBase+"/pages/faq", pages[0])
	assert.Equal(t, testBase+"/pages/help", pages[1])
	// Guessed paths fill the remaining slots; the duplicate guess is skipped.
	assert.Contains(t, pages, testBase+"/pages/faqs")
	assert.Contains(t, pages, testBase+"/apps/faq")
}

func TestDiscoverFAQPages_LinkTextMarker(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<a href="/pages/common-questions">FAQs</a>
	</body></html>`)

	pages := DiscoverFAQPages(doc, testBase)

	assert.Contains(t, pages, testBase+"/pages/common-questions")
}

func TestDiscoverFAQPages_CappedAtFive(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, `<a href="/pages/faq-%d">FAQ %d</a>`, i, i)
	}
	b.WriteString("</body></html>")

	pages := DiscoverFAQPages(mustDoc(t, b.String()), testBase)

	assert.Len(t, pages, 5)
}
