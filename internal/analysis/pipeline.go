package analysis

import "time"

// Analyze runs the full evidence pipeline over one request context. The
// computation is pure and reentrant: analyzers are independent of one
// another, the aggregator waits for all of them, and nothing outside the
// returned Result is ever written.
func Analyze(ctx *RequestContext) Result {
	return AnalyzeAt(ctx, time.Now().UTC())
}

// AnalyzeAt is Analyze with an explicit timestamp, which is echoed into the
// result and is the only clock input anywhere in the pipeline.
func AnalyzeAt(ctx *RequestContext, now time.Time) Result {
	r := Result{
		Timestamp: now.Format(time.RFC3339Nano),
		IPAddress: ctx.ClientIP,
		BasicInfo: BasicInfo{
			IPAddress: ctx.ClientIP,
			Timestamp: now.Format("2006-01-02 15:04:05"),
			Method:    ctx.Method,
			Path:      ctx.Path,
			Protocol:  ctx.Protocol,
			Port:      ctx.Port,
			IsSecure:  ctx.Secure,
		},

		HeaderAnalysis:      AnalyzeHeaders(ctx),
		UserAgentAnalysis:   AnalyzeUserAgent(ctx),
		BrowserFingerprint:  AnalyzeFingerprint(ctx),
		ProxyVPNDetection:   AnalyzeProxy(ctx),
		AutomationDetection: AnalyzeAutomation(ctx),
		ConsistencyChecks:   CheckConsistency(ctx),
		ThreatIndicators:    AnalyzeThreats(ctx),
		TLSAnalysis:         AnalyzeTransport(ctx),
		BehavioralSignals:   AnalyzeBehavior(ctx),
		AdvancedBehavioral:  AnalyzeAdvancedBehavior(ctx),
		VMDetection:         AnalyzeVM(ctx),
		BrowserExtensions:   AnalyzeExtensions(ctx),
		TimingAnalysis:      AnalyzeTiming(ctx),
		CSSMediaQueries:     AnalyzeCSSMedia(ctx),
		SpeechSynthesis:     AnalyzeSpeech(ctx),
		ClientHints:         AnalyzeClientHints(ctx),
	}

	r.RiskAssessment = AggregateRisk(&r)
	return r
}
