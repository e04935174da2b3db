package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://leetcode.com/discuss/general-discussion/459219/blind-75-leetcode-questions", PlatformLeetCode},
		{"https://www.hackerrank.com/interview/interview-preparation-kit", PlatformHackerRank},
		{"https://www.educative.io/blog/crack-system-design-interview", PlatformEducative},
		{"https://www.indeed.com/career-advice/interviewing/hr-interview-questions", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	bigPage := strings.Repeat("<p>content</p>", 100)

	assert.False(t, ShouldUseBrowser("https://leetcode.com/x", 3, ""), "headings found")
	assert.True(t, ShouldUseBrowser("https://leetcode.com/x", 0, bigPage), "script-rendered platform")
	assert.True(t, ShouldUseBrowser("https://example.com", 0, "<html></html>"), "shell page")
	assert.False(t, ShouldUseBrowser("https://example.com", 0, bigPage), "static page without h2")
}
