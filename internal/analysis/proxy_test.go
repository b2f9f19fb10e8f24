package analysis

import (
	"net/http"
	"testing"
)

func TestAnalyzeProxyClean(t *testing.T) {
	finding := AnalyzeProxy(&RequestContext{Headers: browserHeaders()})

	if finding.RiskLevel != RiskTierNone {
		t.Errorf("risk = %q, want none", finding.RiskLevel)
	}
	if finding.IsProxyLikely {
		t.Error("clean request marked proxy-likely")
	}
}

func TestAnalyzeProxyForwardingChain(t *testing.T) {
	h := browserHeaders()
	h.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8, 9.10.11.12")
	h.Set("Via", "1.1 gateway.example")

	finding := AnalyzeProxy(&RequestContext{Headers: h})

	if !finding.IsProxyLikely {
		t.Error("multi-hop chain with Via must be proxy-likely")
	}
	if finding.RiskLevel != RiskTierHigh {
		t.Errorf("risk = %q, want high", finding.RiskLevel)
	}
	if !containsString(finding.ProxyHeadersFound, "X-Forwarded-For") ||
		!containsString(finding.ProxyHeadersFound, "Via") {
		t.Errorf("headers found = %v", finding.ProxyHeadersFound)
	}
}

func TestAnalyzeProxySingleForwardHeader(t *testing.T) {
	h := browserHeaders()
	h.Set("X-Real-IP", "203.0.113.9")

	finding := AnalyzeProxy(&RequestContext{Headers: h})

	if finding.RiskLevel != RiskTierLow {
		t.Errorf("risk = %q, want low", finding.RiskLevel)
	}
	if finding.IsProxyLikely {
		t.Error("one forwarding header alone is not proxy-likely")
	}
}

func TestAnalyzeProxyIPReputation(t *testing.T) {
	ctx := &RequestContext{
		ClientIP: "54.1.2.3",
		Headers:  browserHeaders(),
		Fingerprint: Fingerprint{IPInfo: &IPInfo{
			IsDatacenter: true,
			IsVPN:        true,
			ASN:          16509,
			Organization: "Amazon.com (AWS)",
		}},
	}

	finding := AnalyzeProxy(ctx)

	if finding.RiskLevel != RiskTierMedium {
		t.Errorf("risk = %q, want medium (%v)", finding.RiskLevel, finding.Indicators)
	}
	messages := make([]string, 0, len(finding.Indicators))
	for _, ind := range finding.Indicators {
		messages = append(messages, ind.Message)
	}
	if !containsString(messages, "IP from datacenter (hosting provider)") ||
		!containsString(messages, "VPN detected") {
		t.Errorf("indicators = %v", messages)
	}
}

func TestAnalyzeProxyWebRTCLeak(t *testing.T) {
	t.Run("mismatch flagged", func(t *testing.T) {
		ctx := &RequestContext{
			ClientIP:    "203.0.113.7",
			Headers:     http.Header{},
			Fingerprint: Fingerprint{WebRTCIPs: []string{"192.168.1.20", "10.0.0.5"}},
		}
		finding := AnalyzeProxy(ctx)
		if len(finding.Indicators) != 1 {
			t.Fatalf("indicators = %v", finding.Indicators)
		}
		if finding.Indicators[0].Message != "WebRTC IP mismatch (possible VPN/proxy leak)" {
			t.Errorf("message = %q", finding.Indicators[0].Message)
		}
	})

	t.Run("matching address passes", func(t *testing.T) {
		ctx := &RequestContext{
			ClientIP:    "203.0.113.7",
			Headers:     http.Header{},
			Fingerprint: Fingerprint{WebRTCIPs: []string{"203.0.113.7"}},
		}
		finding := AnalyzeProxy(ctx)
		if len(finding.Indicators) != 0 {
			t.Errorf("indicators = %v", finding.Indicators)
		}
	})
}
