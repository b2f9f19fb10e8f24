package analysis

import (
	"fmt"
	"strings"
)

// botKeywords are substrings that identify non-browser clients: crawlers,
// HTTP libraries, language runtimes and API testing tools.
var botKeywords = []string{
	"bot", "crawler", "spider", "scraper", "curl", "wget", "python",
	"java", "php", "ruby", "go-http", "postman", "insomnia",
}

var browserTokens = []string{"mozilla", "chrome", "safari", "firefox", "edge", "opera"}

// AnalyzeUserAgent grades the user-agent string. An empty value is
// immediately bad; otherwise bot keywords, implausible lengths, missing
// browser tokens and excessive version segments each count against it.
func AnalyzeUserAgent(ctx *RequestContext) UAFinding {
	finding := UAFinding{
		RawUserAgent:       ctx.UserAgent,
		SuspiciousPatterns: []string{},
		Quality:            QualityUnknown,
	}

	if ctx.UserAgent == "" {
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Missing User-Agent")
		finding.Quality = QualityBad
		return finding
	}

	finding.Parsed = ctx.ParsedUA

	lowerUA := strings.ToLower(ctx.UserAgent)
	for _, keyword := range botKeywords {
		if strings.Contains(lowerUA, keyword) {
			finding.SuspiciousPatterns = append(finding.SuspiciousPatterns,
				fmt.Sprintf("Bot keyword detected: %s", keyword))
		}
	}

	switch {
	case len(ctx.UserAgent) < 50:
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "User-Agent too short")
	case len(ctx.UserAgent) > 500:
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "User-Agent abnormally long")
	}

	hasBrowserToken := false
	for _, token := range browserTokens {
		if strings.Contains(lowerUA, token) {
			hasBrowserToken = true
			break
		}
	}
	if !hasBrowserToken {
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Missing common browser identifiers")
	}

	if strings.Count(ctx.UserAgent, "/") > 10 {
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Excessive version strings")
	}

	if ctx.ParsedUA.IsBot || len(finding.SuspiciousPatterns) > 2 {
		finding.Quality = QualityBad
	} else if len(finding.SuspiciousPatterns) > 0 {
		finding.Quality = QualitySuspicious
	} else {
		finding.Quality = QualityGood
	}

	return finding
}
