package analysis

import "crypto/tls"

// AnalyzeTransport echoes the negotiated transport properties. Descriptive
// only: it carries no quality grade, and an optional client-supplied
// transport fingerprint passes through unchanged.
func AnalyzeTransport(ctx *RequestContext) TransportFinding {
	finding := TransportFinding{
		Protocol:    ctx.Protocol,
		IsSecure:    ctx.Secure,
		CipherSuite: "Unknown",
		TLSVersion:  "Unknown",
	}

	if state := ctx.TLS; state != nil {
		finding.CipherSuite = tls.CipherSuiteName(state.CipherSuite)
		finding.TLSVersion = tls.VersionName(state.Version)
	}

	if raw := ctx.Fingerprint.TLSFingerprint; len(raw) > 0 {
		finding.ClientFingerprint = raw
	}

	return finding
}
