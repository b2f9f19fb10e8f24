package analysis

// AnalyzeAutomation detects browser automation frameworks: the webdriver
// flag, framework globals left on window, the headless-Chrome runtime gap,
// and permission-API anomalies typical of automated profiles.
func AnalyzeAutomation(ctx *RequestContext) AutomationFinding {
	fp := &ctx.Fingerprint
	finding := AutomationFinding{
		Indicators:     []Indicator{},
		AutomationType: []string{},
	}

	if fp.Webdriver {
		finding.Indicators = append(finding.Indicators, Indicator{
			Message:  "Navigator.webdriver = true",
			Property: "navigator.webdriver",
			Value:    "true",
		})
		finding.AutomationType = append(finding.AutomationType, "Selenium/WebDriver")
	}

	for _, art := range automationArtifacts {
		if fp.Artifacts[art.Property] {
			finding.Indicators = append(finding.Indicators, Indicator{
				Message:  "Automation property detected",
				Property: "window." + art.Property,
				Value:    "true",
				Tool:     art.Tool,
			})
			if !contains(finding.AutomationType, art.Tool) {
				finding.AutomationType = append(finding.AutomationType, art.Tool)
			}
		}
	}

	// A real Chrome exposes chrome.runtime; headless builds do not.
	if fp.Chrome && !fp.ChromeRuntime {
		finding.Indicators = append(finding.Indicators, Indicator{
			Message:  "Chrome detected but chrome.runtime missing",
			Property: "window.chrome.runtime",
			Value:    "undefined (suspicious)",
		})
	}

	if fp.PermissionsQueryUnavailable {
		finding.Indicators = append(finding.Indicators, Indicator{
			Message:  "Permissions API blocked (common in automation)",
			Property: "navigator.permissions.query",
			Value:    "unavailable",
		})
	}

	if fp.NotificationPermission == "denied" {
		finding.Indicators = append(finding.Indicators, Indicator{
			Message:  "Notifications denied (automation default)",
			Property: "Notification.permission",
			Value:    "denied",
		})
	}

	switch n := len(finding.Indicators); {
	case n > 3:
		finding.Confidence = ConfidenceVeryHigh
	case n > 1:
		finding.Confidence = ConfidenceHigh
	case n > 0:
		finding.Confidence = ConfidenceMedium
	default:
		finding.Confidence = ConfidenceLow
	}

	return finding
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
