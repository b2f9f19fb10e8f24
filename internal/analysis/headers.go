package analysis

import (
	"fmt"
	"strings"
)

// standardHeaders are expected from any mainstream browser.
var standardHeaders = []string{
	"User-Agent", "Accept", "Accept-Language",
	"Accept-Encoding", "Connection", "Upgrade-Insecure-Requests",
}

// proxyHeaderNames are forwarding headers added by proxies, VPN gateways and
// CDNs. Shared with the proxy analyzer.
var proxyHeaderNames = []string{
	"X-Forwarded-For", "X-Real-IP", "Via", "Forwarded",
	"X-Proxy-ID", "CF-Connecting-IP", "X-Forwarded-Proto",
}

// automationHeaderSignatures are tool names that should never appear in a
// header value sent by a real browser.
var automationHeaderSignatures = []string{
	"Selenium", "PhantomJS", "Headless", "Python", "curl", "wget",
}

// AnalyzeHeaders grades the header set of a visit: presence of the standard
// browser headers, generic Accept values, thin header counts and automation
// tool signatures anywhere in a header value.
func AnalyzeHeaders(ctx *RequestContext) HeaderFinding {
	finding := HeaderFinding{
		TotalHeaders:           len(ctx.Headers),
		SuspiciousPatterns:     []string{},
		MissingStandardHeaders: []string{},
		ProxyHeaders:           map[string]string{},
		HeaderQuality:          QualityUnknown,
	}

	for _, h := range standardHeaders {
		if ctx.Headers.Get(h) == "" {
			finding.MissingStandardHeaders = append(finding.MissingStandardHeaders, h)
		}
	}

	for _, h := range proxyHeaderNames {
		if v := ctx.Headers.Get(h); v != "" {
			finding.ProxyHeaders[h] = v
		}
	}

	if len(ctx.Headers) < 5 {
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Too few headers (possible bot)")
	}

	switch accept := ctx.Headers.Get("Accept"); {
	case accept == "*/*":
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Generic Accept header (typical of bots)")
	case accept == "":
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Missing Accept header")
	}

	if ctx.Headers.Get("Accept-Language") == "" {
		finding.SuspiciousPatterns = append(finding.SuspiciousPatterns, "Missing Accept-Language header")
	}

	for _, sig := range automationHeaderSignatures {
		lowerSig := strings.ToLower(sig)
		for _, values := range ctx.Headers {
			for _, value := range values {
				if strings.Contains(strings.ToLower(value), lowerSig) {
					finding.SuspiciousPatterns = append(finding.SuspiciousPatterns,
						fmt.Sprintf("Automation signature: %s", sig))
				}
			}
		}
	}

	missing := len(finding.MissingStandardHeaders)
	suspicious := len(finding.SuspiciousPatterns)
	switch {
	case suspicious > 2 || missing > 3:
		finding.HeaderQuality = QualityBad
	case suspicious > 0 || missing > 1:
		finding.HeaderQuality = QualitySuspicious
	default:
		finding.HeaderQuality = QualityGood
	}

	return finding
}
