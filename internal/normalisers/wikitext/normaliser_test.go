package wikitext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText_WikiLinks(t *testing.T) {
	in := "The [[Mercury (planet)|planet Mercury]] orbits the [[Sun]] closely every single year."
	out := CleanText(in)
	assert.Contains(t, out, "planet Mercury")
	assert.Contains(t, out, "Sun")
	assert.NotContains(t, out, "[[")
	assert.NotContains(t, out, "]]")
}

func TestCleanText_Citations(t *testing.T) {
	in := "Mercury is the smallest planet in the Solar System.[1][2] It has no moons (citation needed) at all."
	out := CleanText(in)
	assert.NotContains(t, out, "[1]")
	assert.NotContains(t, out, "[2]")
	assert.NotContains(t, out, "citation needed")
}

func TestCleanText_RefBlocks(t *testing.T) {
	in := "Mercury was observed by ancient astronomers.<ref>Smith 1999</ref> It appears near the horizon regularly.<ref name=\"x\" />"
	out := CleanText(in)
	assert.NotContains(t, out, "Smith 1999")
	assert.NotContains(t, out, "<ref")
}

func TestCleanText_MarkdownFormatting(t *testing.T) {
	in := "## History\n\nThe **bold claim** and *italic aside* and `code` should all survive as plain words here."
	out := CleanText(in)
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "##")
	assert.NotContains(t, out, "`")
	assert.Contains(t, out, "bold claim")
	assert.Contains(t, out, "italic aside")
}

func TestCleanText_NavigationLines(t *testing.T) {
	in := strings.Join([]string{
		"Mercury is the first planet from the Sun and the smallest in the Solar System.",
		"See also the list of planets",
		"Category: Planets of the Solar System",
		"thumb|right|Mercury in true color",
	}, "\n")
	out := CleanText(in)
	assert.Contains(t, out, "smallest in the Solar System")
	assert.NotContains(t, out, "See also")
	assert.NotContains(t, out, "Category:")
	assert.NotContains(t, out, "thumb|")
}

func TestCleanText_MostlyPunctuationDropped(t *testing.T) {
	in := "A real sentence about the topic that is long enough to keep.\n|---|---|---|---|"
	out := CleanText(in)
	assert.NotContains(t, out, "|---|")
}

func TestCleanText_TrailingDisambiguationParen(t *testing.T) {
	in := "Mercury is a planet and the innermost one of the Solar System (disambiguation)"
	out := CleanText(in)
	assert.NotContains(t, out, "disambiguation")
}

func TestStripHTML(t *testing.T) {
	in := `<p>Mercury is the <b>smallest</b> planet.<sup>[3]</sup></p><script>var x = 1;</script><br>It orbits fast.`
	out := StripHTML(in)
	assert.Equal(t, "Mercury is the smallest planet. It orbits fast.", out)
}

func TestStripHTML_Entities(t *testing.T) {
	out := StripHTML("Tom &amp; Jerry &quot;cartoon&quot;")
	assert.Equal(t, `Tom & Jerry "cartoon"`, out)
}

func TestStripHTML_Empty(t *testing.T) {
	assert.Equal(t, "", StripHTML(""))
}

func TestHTMLToMarkdown_Headings(t *testing.T) {
	in := `<h2>History</h2><p>First paragraph.</p><h3>Early <i>era</i></h3><p>Second paragraph.</p>`
	out := HTMLToMarkdown(in)
	assert.Contains(t, out, "## History")
	assert.Contains(t, out, "### Early era")
	assert.Contains(t, out, "First paragraph.")
	assert.Contains(t, out, "Second paragraph.")
}

func TestHTMLToMarkdown_StripsScripts(t *testing.T) {
	out := HTMLToMarkdown(`<script>alert(1)</script><p>Body text.</p>`)
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "Body text.")
}

func TestCleanText_Deterministic(t *testing.T) {
	in := "Mercury is the smallest planet in the Solar System.[1] It is named after a Roman god."
	assert.Equal(t, CleanText(in), CleanText(in))
}
