package analysis

// signalOutcome is one signal's contribution to the verdict. Each signal
// contributes at most once.
type signalOutcome struct {
	delta         int
	redFlag       string
	greenFlag     string
	revokeGenuine bool
}

type scoreSignal struct {
	name string
	eval func(r *Result) signalOutcome
}

// scoreTable is the documented weight table. The aggregate score is the sum
// of these contributions capped at 100 — never produced by any other path.
// Some behavioral evidence intentionally compounds (a bot-like click pattern
// feeds both the likelihood tier and its own direct weight).
var scoreTable = []scoreSignal{
	{"header_quality", func(r *Result) signalOutcome {
		switch r.HeaderAnalysis.HeaderQuality {
		case QualityBad:
			return signalOutcome{delta: 25, redFlag: "Poor header quality"}
		case QualitySuspicious:
			return signalOutcome{delta: 15, redFlag: "Suspicious headers"}
		default:
			return signalOutcome{greenFlag: "Good header quality"}
		}
	}},
	{"user_agent_quality", func(r *Result) signalOutcome {
		switch r.UserAgentAnalysis.Quality {
		case QualityBad:
			return signalOutcome{delta: 20, redFlag: "Bad User-Agent"}
		case QualitySuspicious:
			return signalOutcome{delta: 10, redFlag: "Suspicious User-Agent"}
		default:
			return signalOutcome{greenFlag: "Valid User-Agent"}
		}
	}},
	{"fingerprint_quality", func(r *Result) signalOutcome {
		switch r.BrowserFingerprint.Quality {
		case QualityBad:
			return signalOutcome{delta: 30, redFlag: "Manipulated fingerprint", revokeGenuine: true}
		case QualitySuspicious:
			return signalOutcome{delta: 15, redFlag: "Suspicious fingerprint"}
		default:
			return signalOutcome{greenFlag: "Natural fingerprint"}
		}
	}},
	{"proxy_risk", func(r *Result) signalOutcome {
		switch r.ProxyVPNDetection.RiskLevel {
		case RiskTierHigh:
			return signalOutcome{delta: 20, redFlag: "Proxy/VPN detected"}
		case RiskTierMedium:
			return signalOutcome{delta: 10, redFlag: "Possible proxy/VPN"}
		}
		return signalOutcome{}
	}},
	{"automation_confidence", func(r *Result) signalOutcome {
		switch r.AutomationDetection.Confidence {
		case ConfidenceVeryHigh, ConfidenceHigh:
			return signalOutcome{delta: 25, redFlag: "Automation detected", revokeGenuine: true}
		case ConfidenceMedium:
			return signalOutcome{delta: 10, redFlag: "Possible automation"}
		}
		return signalOutcome{}
	}},
	{"consistency_failures", func(r *Result) signalOutcome {
		switch failed := r.ConsistencyChecks.Failed; {
		case failed > 2:
			return signalOutcome{delta: 15, redFlag: "Multiple consistency failures"}
		case failed > 0:
			return signalOutcome{delta: 5}
		}
		return signalOutcome{}
	}},
	{"threat_level", func(r *Result) signalOutcome {
		switch r.ThreatIndicators.ThreatLevel {
		case ThreatCritical:
			return signalOutcome{delta: 50, redFlag: "Critical threat detected", revokeGenuine: true}
		case ThreatHigh:
			return signalOutcome{delta: 30, redFlag: "High threat level"}
		}
		return signalOutcome{}
	}},
	{"behavioral_likelihood", func(r *Result) signalOutcome {
		switch r.AdvancedBehavioral.HumanLikelihood {
		case LikelihoodLow:
			return signalOutcome{delta: 20, redFlag: "Bot-like behavior patterns"}
		case LikelihoodHigh:
			return signalOutcome{greenFlag: "Human-like behavior patterns"}
		}
		return signalOutcome{}
	}},
	{"mouse_behavior", func(r *Result) signalOutcome {
		if m := r.AdvancedBehavioral.Mouse; m != nil {
			if m.BotIndicator != "" {
				return signalOutcome{delta: 10, redFlag: "Mouse: " + m.BotIndicator}
			}
			if m.HasHumanCurves {
				return signalOutcome{greenFlag: "Natural mouse movement curves"}
			}
		}
		return signalOutcome{}
	}},
	{"click_behavior", func(r *Result) signalOutcome {
		if c := r.AdvancedBehavioral.Click; c != nil && c.BotIndicator != "" {
			return signalOutcome{delta: 10, redFlag: "Click: " + c.BotIndicator}
		}
		return signalOutcome{}
	}},
	{"vm_detection", func(r *Result) signalOutcome {
		if r.VMDetection.IsLikelyVM {
			return signalOutcome{delta: 15, redFlag: "Running in virtual machine"}
		}
		return signalOutcome{}
	}},
	{"timing", func(r *Result) signalOutcome {
		if r.TimingAnalysis.SuspicionLevel == "high" {
			reason := r.TimingAnalysis.Reason
			if reason == "" {
				reason = "Too fast"
			}
			return signalOutcome{delta: 15, redFlag: "Timing: " + reason}
		}
		return signalOutcome{}
	}},
	{"extensions", func(r *Result) signalOutcome {
		if r.BrowserExtensions.PrivacyConcerned {
			return signalOutcome{greenFlag: "Privacy-aware (ad blocker detected)"}
		}
		return signalOutcome{}
	}},
}

// AggregateRisk folds every finding plus the consistency tally into the
// final bounded verdict.
func AggregateRisk(r *Result) RiskAssessment {
	risk := RiskAssessment{
		MaxScore:   100,
		IsGenuine:  true,
		RedFlags:   []string{},
		GreenFlags: []string{},
	}

	for _, signal := range scoreTable {
		out := signal.eval(r)
		risk.TotalScore += out.delta
		if out.redFlag != "" {
			risk.RedFlags = append(risk.RedFlags, out.redFlag)
		}
		if out.greenFlag != "" {
			risk.GreenFlags = append(risk.GreenFlags, out.greenFlag)
		}
		if out.revokeGenuine {
			// Never reset true once any high-severity signal fired.
			risk.IsGenuine = false
		}
	}

	if risk.TotalScore > 100 {
		risk.TotalScore = 100
	}

	risk.RiskLevel, risk.VisitorQuality = levelFor(risk.TotalScore)

	risk.Confidence = risk.TotalScore + len(risk.RedFlags)*5
	if risk.Confidence > 100 {
		risk.Confidence = 100
	}

	return risk
}

// levelFor maps a capped score onto the risk level and its paired visitor
// quality. Boundary values belong to the higher tier.
func levelFor(score int) (RiskLevel, Quality) {
	switch {
	case score >= 70:
		return RiskCritical, QualityBad
	case score >= 50:
		return RiskHigh, QualityBad
	case score >= 30:
		return RiskMedium, QualitySuspicious
	case score >= 15:
		return RiskLow, QualityAcceptable
	default:
		return RiskMinimal, QualityGood
	}
}
