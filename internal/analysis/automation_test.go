package analysis

import (
	"testing"
)

func TestAnalyzeAutomationClean(t *testing.T) {
	finding := AnalyzeAutomation(fpContext(healthyFingerprint))

	if finding.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want low (%v)", finding.Confidence, finding.Indicators)
	}
	if len(finding.AutomationType) != 0 {
		t.Errorf("types = %v", finding.AutomationType)
	}
}

func TestAnalyzeAutomationWebdriver(t *testing.T) {
	finding := AnalyzeAutomation(fpContext(`{"webdriver": true}`))

	if finding.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want medium", finding.Confidence)
	}
	if !containsString(finding.AutomationType, "Selenium/WebDriver") {
		t.Errorf("types = %v", finding.AutomationType)
	}
}

func TestAnalyzeAutomationArtifactAttribution(t *testing.T) {
	finding := AnalyzeAutomation(fpContext(`{"callPhantom": true, "_phantom": true, "__nightmare": true}`))

	// Three indicators, two distinct tools.
	if finding.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want high", finding.Confidence)
	}
	if len(finding.AutomationType) != 2 ||
		!containsString(finding.AutomationType, "PhantomJS") ||
		!containsString(finding.AutomationType, "Nightmare.js") {
		t.Errorf("types = %v", finding.AutomationType)
	}
	for _, ind := range finding.Indicators {
		if ind.Tool == "" {
			t.Errorf("indicator %q missing tool attribution", ind.Property)
		}
	}
}

func TestAnalyzeAutomationChromeRuntimeGap(t *testing.T) {
	t.Run("chrome without runtime", func(t *testing.T) {
		finding := AnalyzeAutomation(fpContext(`{"chrome": true, "chrome_runtime": false}`))
		if len(finding.Indicators) != 1 {
			t.Fatalf("indicators = %v", finding.Indicators)
		}
		if finding.Indicators[0].Property != "window.chrome.runtime" {
			t.Errorf("property = %q", finding.Indicators[0].Property)
		}
	})

	t.Run("chrome with runtime", func(t *testing.T) {
		finding := AnalyzeAutomation(fpContext(`{"chrome": true, "chrome_runtime": true}`))
		if len(finding.Indicators) != 0 {
			t.Errorf("indicators = %v", finding.Indicators)
		}
	})
}

func TestAnalyzeAutomationVeryHighConfidence(t *testing.T) {
	finding := AnalyzeAutomation(fpContext(`{
		"webdriver": true,
		"__selenium": true,
		"permissions_query_unavailable": true,
		"notification_permission": "denied"
	}`))

	if finding.Confidence != ConfidenceVeryHigh {
		t.Errorf("confidence = %q, want very_high (%d indicators)",
			finding.Confidence, len(finding.Indicators))
	}
}
