package crawling

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HeadingSelector is the element harvested as a candidate question.
const HeadingSelector = "h2"

// ExtractHeadings returns the trimmed text of every element matching selector,
// in document order. Elements whose text is empty after trimming are dropped.
func ExtractHeadings(htmlContent, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	headings := make([]string, 0)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		headings = append(headings, text)
	})

	return headings, nil
}
