package analysis

import (
	"fmt"
)

// integrityArtifacts are the automation globals that count as outright
// manipulation of the fingerprint. The extension-injected ones
// (domAutomation and friends) belong to the automation analyzer instead.
var integrityArtifacts = []string{
	"__nightmare", "__phantomas", "callPhantom", "_phantom",
	"__selenium", "__webdriver", "__driver",
}

// AnalyzeFingerprint checks the fingerprint payload for manipulation and
// internal inconsistencies. An empty payload is immediately bad; explicit
// automation markers outweigh any number of mere inconsistencies.
func AnalyzeFingerprint(ctx *RequestContext) FingerprintFinding {
	fp := &ctx.Fingerprint
	finding := FingerprintFinding{
		FingerprintData:        fp.Raw,
		Inconsistencies:        []Indicator{},
		ManipulationIndicators: []Indicator{},
		Quality:                QualityUnknown,
	}

	if fp.Empty() {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message: "No fingerprint data received",
			Value:   "null",
		})
		finding.Quality = QualityBad
		return finding
	}

	if fp.Webdriver {
		finding.ManipulationIndicators = append(finding.ManipulationIndicators, Indicator{
			Message:  "WebDriver detected (Selenium/Automation)",
			Property: "navigator.webdriver",
			Value:    "true",
		})
	}
	if fp.Headless {
		finding.ManipulationIndicators = append(finding.ManipulationIndicators, Indicator{
			Message:  "Headless browser detected",
			Property: "headless",
			Value:    "true",
		})
	}

	if fp.Plugins == 0 {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "No browser plugins (unusual for real browsers)",
			Property: "navigator.plugins.length",
			Value:    "0",
		})
	}
	if len(fp.Languages) == 0 {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "No languages detected",
			Property: "navigator.languages",
			Value:    "[]",
		})
	}

	if fp.Canvas == "blocked" || fp.Canvas == "" {
		value := fp.Canvas
		if value == "" {
			value = "null"
		}
		finding.ManipulationIndicators = append(finding.ManipulationIndicators, Indicator{
			Message:  "Canvas fingerprinting blocked or unavailable",
			Property: "canvas",
			Value:    value,
		})
	}

	if fp.WebGLVendor == "" || fp.WebGLRenderer == "" {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "WebGL information missing",
			Property: "webgl_vendor/renderer",
			Value:    fmt.Sprintf("%s / %s", orNull(fp.WebGLVendor), orNull(fp.WebGLRenderer)),
		})
	}

	if fp.ScreenWidth == 0 || fp.ScreenHeight == 0 {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "Invalid screen dimensions",
			Property: "screen.width x screen.height",
			Value:    fmt.Sprintf("%d x %d", fp.ScreenWidth, fp.ScreenHeight),
		})
	} else if fp.ScreenWidth < 800 || fp.ScreenHeight < 600 {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "Unusual screen resolution (too small)",
			Property: "screen.width x screen.height",
			Value:    fmt.Sprintf("%d x %d", fp.ScreenWidth, fp.ScreenHeight),
		})
	}

	if fp.Timezone == "" {
		finding.Inconsistencies = append(finding.Inconsistencies, Indicator{
			Message:  "Timezone not detected",
			Property: "timezone",
			Value:    "null",
		})
	}

	for _, prop := range integrityArtifacts {
		if fp.Artifacts[prop] {
			finding.ManipulationIndicators = append(finding.ManipulationIndicators, Indicator{
				Message:  "Automation artifact detected",
				Property: "window." + prop,
				Value:    "true",
			})
		}
	}

	switch {
	case len(finding.ManipulationIndicators) > 0:
		finding.Quality = QualityBad
	case len(finding.Inconsistencies) > 3:
		finding.Quality = QualitySuspicious
	case len(finding.Inconsistencies) > 0:
		finding.Quality = QualityAcceptable
	default:
		finding.Quality = QualityGood
	}

	return finding
}

func orNull(s string) string {
	if s == "" {
		return "null"
	}
	return s
}
