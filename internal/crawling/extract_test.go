package crawling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeadings_DocumentOrder(t *testing.T) {
	html := `
		<html>
			<body>
				<h1>Page title</h1>
				<h2>1. What is a linked list?</h2>
				<p>Answer text</p>
				<section>
					<h2>  2. Explain <em>Big-O</em> notation  </h2>
				</section>
				<h3>Not a question</h3>
				<h2>3. Reverse a string</h2>
			</body>
		</html>
	`

	headings, err := ExtractHeadings(html, HeadingSelector)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"1. What is a linked list?",
		"2. Explain Big-O notation",
		"3. Reverse a string",
	}, headings)
}

func TestExtractHeadings_SkipsWhitespaceOnly(t *testing.T) {
	html := `<h2>   </h2><h2>
	</h2><h2><span> </span></h2><h2>Tell me about yourself</h2>`

	headings, err := ExtractHeadings(html, HeadingSelector)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tell me about yourself"}, headings)
}

func TestExtractHeadings_NoHeadings(t *testing.T) {
	headings, err := ExtractHeadings("<html><body><p>nothing</p></body></html>", HeadingSelector)
	require.NoError(t, err)
	assert.NotNil(t, headings)
	assert.Empty(t, headings)
}

func TestExtractHeadings_MalformedHTML(t *testing.T) {
	headings, err := ExtractHeadings("<h2>Unclosed heading<div>", HeadingSelector)
	require.NoError(t, err)
	assert.Equal(t, []string{"Unclosed heading"}, headings)
}
