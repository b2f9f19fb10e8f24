package analysis

import (
	"net/http"
	"testing"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// browserHeaders returns the header set of an ordinary browser request.
func browserHeaders() http.Header {
	return http.Header{
		"User-Agent":                {chromeUA},
		"Accept":                    {"text/html,application/xhtml+xml"},
		"Accept-Language":           {"en-US,en;q=0.9"},
		"Accept-Encoding":           {"gzip, deflate, br"},
		"Connection":                {"keep-alive"},
		"Upgrade-Insecure-Requests": {"1"},
	}
}

func TestAnalyzeHeadersGood(t *testing.T) {
	finding := AnalyzeHeaders(&RequestContext{Headers: browserHeaders()})

	if finding.HeaderQuality != QualityGood {
		t.Errorf("quality = %q, want good (%v)", finding.HeaderQuality, finding.SuspiciousPatterns)
	}
	if len(finding.MissingStandardHeaders) != 0 {
		t.Errorf("missing = %v", finding.MissingStandardHeaders)
	}
}

func TestAnalyzeHeadersSuspicious(t *testing.T) {
	t.Run("generic accept", func(t *testing.T) {
		h := browserHeaders()
		h.Set("Accept", "*/*")
		finding := AnalyzeHeaders(&RequestContext{Headers: h})
		if finding.HeaderQuality != QualitySuspicious {
			t.Errorf("quality = %q, want suspicious", finding.HeaderQuality)
		}
	})

	t.Run("two missing standard headers", func(t *testing.T) {
		h := browserHeaders()
		h.Del("Accept-Encoding")
		h.Del("Upgrade-Insecure-Requests")
		finding := AnalyzeHeaders(&RequestContext{Headers: h})
		if finding.HeaderQuality != QualitySuspicious {
			t.Errorf("quality = %q, want suspicious", finding.HeaderQuality)
		}
	})

	t.Run("one missing stays good", func(t *testing.T) {
		h := browserHeaders()
		h.Del("Upgrade-Insecure-Requests")
		finding := AnalyzeHeaders(&RequestContext{Headers: h})
		if finding.HeaderQuality != QualityGood {
			t.Errorf("quality = %q, want good", finding.HeaderQuality)
		}
	})
}

func TestAnalyzeHeadersBad(t *testing.T) {
	// A curl-style request: two headers only, generic accept, no language.
	h := http.Header{
		"User-Agent": {"curl/8.4.0"},
		"Accept":     {"*/*"},
	}
	finding := AnalyzeHeaders(&RequestContext{Headers: h})

	if finding.HeaderQuality != QualityBad {
		t.Errorf("quality = %q, want bad (%v)", finding.HeaderQuality, finding.SuspiciousPatterns)
	}
	if !containsString(finding.SuspiciousPatterns, "Automation signature: curl") {
		t.Errorf("patterns = %v", finding.SuspiciousPatterns)
	}
}

func TestAnalyzeHeadersProxyCapture(t *testing.T) {
	h := browserHeaders()
	h.Set("X-Forwarded-For", "1.2.3.4")
	h.Set("Via", "1.1 proxy.example")

	finding := AnalyzeHeaders(&RequestContext{Headers: h})

	if finding.ProxyHeaders["X-Forwarded-For"] != "1.2.3.4" {
		t.Errorf("proxy headers = %v", finding.ProxyHeaders)
	}
	if finding.ProxyHeaders["Via"] != "1.1 proxy.example" {
		t.Errorf("proxy headers = %v", finding.ProxyHeaders)
	}
	// Forwarding headers alone do not downgrade header quality.
	if finding.HeaderQuality != QualityGood {
		t.Errorf("quality = %q, want good", finding.HeaderQuality)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
