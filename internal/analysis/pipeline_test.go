package analysis

import (
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func browserRequestContext(t *testing.T, payload string) *RequestContext {
	t.Helper()
	req := httptest.NewRequest("POST", "/analyze", nil)
	req.Header = browserHeaders()
	req.RemoteAddr = "203.0.113.7:51234"
	return BuildContext(req, ParseFingerprint([]byte(payload)))
}

func TestAnalyzeEmptyFingerprintScenario(t *testing.T) {
	// Ordinary browser headers and user agent, but an empty fingerprint
	// payload: the integrity analyzer alone carries the verdict.
	ctx := browserRequestContext(t, `{}`)
	r := Analyze(ctx)

	if r.HeaderAnalysis.HeaderQuality != QualityGood {
		t.Errorf("header quality = %q", r.HeaderAnalysis.HeaderQuality)
	}
	if r.UserAgentAnalysis.Quality != QualityGood {
		t.Errorf("ua quality = %q", r.UserAgentAnalysis.Quality)
	}
	if r.BrowserFingerprint.Quality != QualityBad {
		t.Errorf("fingerprint quality = %q", r.BrowserFingerprint.Quality)
	}
	if r.ProxyVPNDetection.RiskLevel != RiskTierNone {
		t.Errorf("proxy risk = %q", r.ProxyVPNDetection.RiskLevel)
	}
	if r.AutomationDetection.Confidence != ConfidenceLow {
		t.Errorf("automation confidence = %q", r.AutomationDetection.Confidence)
	}
	// Only the hardware check runs, and it fails on zero cores.
	if r.ConsistencyChecks.Failed != 1 {
		t.Errorf("consistency failed = %d", r.ConsistencyChecks.Failed)
	}
	if r.AdvancedBehavioral.HumanLikelihood != LikelihoodMedium {
		t.Errorf("likelihood = %q", r.AdvancedBehavioral.HumanLikelihood)
	}

	// 30 for the fingerprint + 5 for the consistency failure.
	risk := r.RiskAssessment
	if risk.TotalScore != 35 {
		t.Errorf("score = %d, want 35 (flags %v)", risk.TotalScore, risk.RedFlags)
	}
	if risk.RiskLevel != RiskMedium || risk.VisitorQuality != QualitySuspicious {
		t.Errorf("level = %q quality = %q", risk.RiskLevel, risk.VisitorQuality)
	}
	if risk.Confidence != 40 {
		t.Errorf("confidence = %d, want 40", risk.Confidence)
	}
	if risk.IsGenuine {
		t.Error("empty fingerprint must revoke is_genuine")
	}
	if !reflect.DeepEqual(risk.RedFlags, []string{"Manipulated fingerprint"}) {
		t.Errorf("red flags = %v", risk.RedFlags)
	}
}

func TestAnalyzeCleanVisitScenario(t *testing.T) {
	ctx := browserRequestContext(t, healthyFingerprint)
	r := Analyze(ctx)

	risk := r.RiskAssessment
	if risk.TotalScore != 0 {
		t.Errorf("score = %d, want 0 (flags %v)", risk.TotalScore, risk.RedFlags)
	}
	if risk.RiskLevel != RiskMinimal {
		t.Errorf("level = %q, want minimal", risk.RiskLevel)
	}
	if !risk.IsGenuine {
		t.Error("clean visit should stay genuine")
	}
}

func TestAnalyzeHostileVisitScenario(t *testing.T) {
	req := httptest.NewRequest("GET", "/wp-admin/", nil)
	req.Header.Set("User-Agent", "sqlmap/1.7.2#stable (https://sqlmap.org)")
	req.RemoteAddr = "198.51.100.4:40000"
	ctx := BuildContext(req, ParseFingerprint(nil))

	r := Analyze(ctx)
	risk := r.RiskAssessment

	if r.ThreatIndicators.ThreatLevel != ThreatCritical {
		t.Errorf("threat = %q", r.ThreatIndicators.ThreatLevel)
	}
	if risk.RiskLevel != RiskCritical {
		t.Errorf("level = %q, want critical (score %d)", risk.RiskLevel, risk.TotalScore)
	}
	if risk.IsGenuine {
		t.Error("scanner traffic must not be genuine")
	}
}

func TestAnalyzeAtIsDeterministic(t *testing.T) {
	ctx := browserRequestContext(t, `{"webdriver": true, "plugins": 2}`)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := AnalyzeAt(ctx, now)
	second := AnalyzeAt(ctx, now)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input must produce identical results")
	}
	if first.Timestamp != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamp = %q", first.Timestamp)
	}
	if first.BasicInfo.Timestamp != "2025-06-01 12:00:00" {
		t.Errorf("basic_info timestamp = %q", first.BasicInfo.Timestamp)
	}
}

func TestClientIPPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		xff        string
		xRealIP    string
		remoteAddr string
		want       string
	}{
		{"xff wins over everything", "1.2.3.4, 5.6.7.8", "9.9.9.9", "10.0.0.1:1234", "1.2.3.4"},
		{"x-real-ip next", "", "9.9.9.9", "10.0.0.1:1234", "9.9.9.9"},
		{"remote addr last", "", "", "10.0.0.1:1234", "10.0.0.1"},
		{"xff whitespace trimmed", "  1.2.3.4  ,5.6.7.8", "", "10.0.0.1:1234", "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/analyze", nil)
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}
			req.RemoteAddr = tt.remoteAddr

			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeEchoesRequestBasics(t *testing.T) {
	req := httptest.NewRequest("POST", "/analyze", nil)
	req.Header = browserHeaders()
	req.Host = "analyzer.example:8443"
	req.RemoteAddr = "203.0.113.7:51234"
	ctx := BuildContext(req, ParseFingerprint([]byte(`{}`)))

	r := Analyze(ctx)

	if r.IPAddress != "203.0.113.7" {
		t.Errorf("ip = %q", r.IPAddress)
	}
	if r.BasicInfo.Method != "POST" || r.BasicInfo.Path != "/analyze" {
		t.Errorf("basic info = %+v", r.BasicInfo)
	}
	if r.BasicInfo.Port != "8443" {
		t.Errorf("port = %q", r.BasicInfo.Port)
	}
	if r.TLSAnalysis.IsSecure {
		t.Error("plain request reported secure")
	}
	if r.TLSAnalysis.CipherSuite != "Unknown" || r.TLSAnalysis.TLSVersion != "Unknown" {
		t.Errorf("tls = %+v", r.TLSAnalysis)
	}
}
