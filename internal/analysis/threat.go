package analysis

import (
	"fmt"
	"strings"
)

// scannerSignatures are vulnerability-scanner tools identified by user-agent
// substring. Any hit is a critical threat on its own.
var scannerSignatures = []struct {
	keyword string
	message string
}{
	{"sqlmap", "SQL injection tool detected"},
	{"nikto", "Nikto scanner detected"},
}

// sensitivePaths are path fragments probed by scanners looking for admin
// panels, leaked environment files and stale backups.
var sensitivePaths = []string{"admin", "wp-admin", "phpmyadmin", ".env", "config", "backup"}

// AnalyzeThreats checks for hostile request patterns: scanner tool
// signatures, probes against sensitive paths, and unusual HTTP methods.
func AnalyzeThreats(ctx *RequestContext) ThreatFinding {
	finding := ThreatFinding{
		ThreatLevel:     ThreatNone,
		ThreatsDetected: []string{},
		RiskFactors:     []string{},
	}

	lowerUA := strings.ToLower(ctx.UserAgent)
	for _, sig := range scannerSignatures {
		if strings.Contains(lowerUA, sig.keyword) {
			finding.ThreatsDetected = append(finding.ThreatsDetected, sig.message)
		}
	}

	lowerPath := strings.ToLower(ctx.Path)
	for _, p := range sensitivePaths {
		if strings.Contains(lowerPath, p) {
			finding.RiskFactors = append(finding.RiskFactors,
				fmt.Sprintf("Accessing suspicious path: %s", ctx.Path))
			break
		}
	}

	if ctx.Method != "GET" && ctx.Method != "POST" {
		finding.RiskFactors = append(finding.RiskFactors,
			fmt.Sprintf("Unusual HTTP method: %s", ctx.Method))
	}

	switch {
	case len(finding.ThreatsDetected) > 0:
		finding.ThreatLevel = ThreatCritical
	case len(finding.RiskFactors) > 2:
		finding.ThreatLevel = ThreatHigh
	case len(finding.RiskFactors) > 0:
		finding.ThreatLevel = ThreatMedium
	}

	return finding
}
