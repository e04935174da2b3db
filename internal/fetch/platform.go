// Package fetch - platform.go identifies question sources that only render
// their content client-side.
package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known question-source site.
type Platform string

const (
	// PlatformLeetCode is leetcode.com
	PlatformLeetCode Platform = "leetcode"
	// PlatformHackerRank is hackerrank.com
	PlatformHackerRank Platform = "hackerrank"
	// PlatformEducative is educative.io
	PlatformEducative Platform = "educative"
	// PlatformUnknown is any other site
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the site from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case host == "leetcode.com" || strings.HasSuffix(host, ".leetcode.com"):
		return PlatformLeetCode
	case host == "hackerrank.com" || strings.HasSuffix(host, ".hackerrank.com"):
		return PlatformHackerRank
	case host == "educative.io" || strings.HasSuffix(host, ".educative.io"):
		return PlatformEducative
	default:
		return PlatformUnknown
	}
}

// IsScriptRendered reports whether the platform is known to build its page
// content with JavaScript, so a plain GET yields no headings.
func (p Platform) IsScriptRendered() bool {
	switch p {
	case PlatformLeetCode, PlatformHackerRank, PlatformEducative:
		return true
	default:
		return false
	}
}

// ShouldUseBrowser decides whether a fetched page deserves a headless render:
// it produced no headings and either is a known script-rendered platform or
// returned almost no markup.
func ShouldUseBrowser(urlStr string, headingCount int, html string) bool {
	if headingCount > 0 {
		return false
	}
	return DetectPlatform(urlStr).IsScriptRendered() || len(strings.TrimSpace(html)) < MinContentLength
}

// MinContentLength is the markup size below which a page is treated as a shell.
const MinContentLength = 500
