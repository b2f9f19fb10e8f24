package analysis

import (
	"fmt"
	"strings"
)

// AnalyzeProxy looks for proxy and VPN evidence: forwarding headers, multi-hop
// X-Forwarded-For chains, the pre-resolved address-reputation flags, and
// WebRTC address leaks.
func AnalyzeProxy(ctx *RequestContext) ProxyFinding {
	finding := ProxyFinding{
		Indicators:        []Indicator{},
		ProxyHeadersFound: []string{},
		RiskLevel:         RiskTierNone,
	}

	for _, h := range proxyHeaderNames {
		if v := ctx.Headers.Get(h); v != "" {
			finding.ProxyHeadersFound = append(finding.ProxyHeadersFound, h)
			finding.Indicators = append(finding.Indicators, Indicator{
				Message: "Proxy header present",
				Header:  h,
				Value:   v,
			})
		}
	}

	if xff := ctx.Headers.Get("X-Forwarded-For"); strings.Contains(xff, ",") {
		hops := strings.Split(xff, ",")
		finding.Indicators = append(finding.Indicators, Indicator{
			Message: "Multiple IPs in proxy chain",
			Header:  "X-Forwarded-For",
			Value:   fmt.Sprintf("%d IPs: %s", len(hops), xff),
		})
		finding.IsProxyLikely = true
	}

	if via := ctx.Headers.Get("Via"); via != "" {
		finding.Indicators = append(finding.Indicators, Indicator{
			Message: "Via header indicates explicit proxy",
			Header:  "Via",
			Value:   via,
		})
		finding.IsProxyLikely = true
	}

	if info := ctx.Fingerprint.IPInfo; info != nil {
		reputation := []struct {
			flag     bool
			message  string
			property string
		}{
			{info.IsDatacenter, "IP from datacenter (hosting provider)", "ip_info.is_datacenter"},
			{info.IsVPN, "VPN detected", "ip_info.is_vpn"},
			{info.IsProxy, "Proxy detected", "ip_info.is_proxy"},
			{info.IsTor, "Tor exit node detected", "ip_info.is_tor"},
		}
		for _, rep := range reputation {
			if rep.flag {
				finding.Indicators = append(finding.Indicators, Indicator{
					Message:  rep.message,
					Property: rep.property,
					Value:    "IP: " + ctx.ClientIP,
				})
			}
		}
	}

	if leaked := ctx.Fingerprint.WebRTCIPs; len(leaked) > 0 {
		found := false
		for _, ip := range leaked {
			if ip == ctx.ClientIP {
				found = true
				break
			}
		}
		if !found {
			finding.Indicators = append(finding.Indicators, Indicator{
				Message:  "WebRTC IP mismatch (possible VPN/proxy leak)",
				Property: "webrtc_ips",
				Value:    fmt.Sprintf("Request IP: %s, WebRTC IPs: %s", ctx.ClientIP, strings.Join(leaked, ", ")),
			})
		}
	}

	switch n := len(finding.Indicators); {
	case n > 3 || finding.IsProxyLikely:
		finding.RiskLevel = RiskTierHigh
	case n > 1:
		finding.RiskLevel = RiskTierMedium
	case n > 0:
		finding.RiskLevel = RiskTierLow
	}

	return finding
}
