package analysis

import (
	"crypto/tls"
	"net"
	"net/http"
	"strings"

	ua "github.com/mileusna/useragent"
)

// RequestContext is the immutable snapshot a single visit is judged on. It is
// built once per request and owned exclusively by that pipeline invocation.
type RequestContext struct {
	ClientIP string

	// Headers is a case-insensitive snapshot; value strings are preserved
	// verbatim.
	Headers http.Header

	UserAgent string
	ParsedUA  ParsedUA

	Method   string
	Path     string
	Protocol string
	Port     string
	Secure   bool
	TLS      *tls.ConnectionState

	Fingerprint Fingerprint
}

// ParsedUA carries the parsed user-agent attributes the analyzers consume.
type ParsedUA struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browser_version"`
	OS             string `json:"os"`
	OSVersion      string `json:"os_version"`
	Device         string `json:"device"`
	IsMobile       bool   `json:"is_mobile"`
	IsTablet       bool   `json:"is_tablet"`
	IsPC           bool   `json:"is_pc"`
	IsBot          bool   `json:"is_bot"`
}

// BuildContext assembles the request context from the transport layer's view
// of the request plus the already-decoded fingerprint payload.
func BuildContext(r *http.Request, fp Fingerprint) *RequestContext {
	ctx := &RequestContext{
		ClientIP:    ClientIP(r),
		Headers:     r.Header.Clone(),
		UserAgent:   r.UserAgent(),
		Method:      r.Method,
		Path:        r.URL.Path,
		Protocol:    r.Proto,
		Port:        serverPort(r),
		Secure:      r.TLS != nil,
		TLS:         r.TLS,
		Fingerprint: fp,
	}
	ctx.ParsedUA = parseUserAgent(ctx.UserAgent)
	return ctx
}

// ClientIP applies a fixed precedence: leftmost X-Forwarded-For value,
// then X-Real-IP, then the transport peer address. The leftmost forwarded
// value is trusted as the original client per common reverse-proxy
// convention; this is deliberately naive and trivially spoofable, which is
// itself a signal the proxy analyzer consumes.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	if xrip := r.Header.Get("X-Real-IP"); xrip != "" {
		return strings.TrimSpace(xrip)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func serverPort(r *http.Request) string {
	if _, port, err := net.SplitHostPort(r.Host); err == nil && port != "" {
		return port
	}
	if r.TLS != nil {
		return "443"
	}
	return "80"
}

func parseUserAgent(raw string) ParsedUA {
	parsed := ua.Parse(raw)
	return ParsedUA{
		Browser:        parsed.Name,
		BrowserVersion: parsed.Version,
		OS:             parsed.OS,
		OSVersion:      parsed.OSVersion,
		Device:         parsed.Device,
		IsMobile:       parsed.Mobile,
		IsTablet:       parsed.Tablet,
		IsPC:           parsed.Desktop,
		IsBot:          parsed.Bot,
	}
}
