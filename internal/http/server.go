package httpx

import "net/http"

// NewMux wires the handler set behind the standard middleware chain.
func NewMux(e Env) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", e.Healthz)
	mux.HandleFunc("/readyz", e.Readyz)
	mux.HandleFunc("/analyze", e.Analyze)
	mux.HandleFunc("/ads.json", e.AdsJSON)

	return RequestLogger(MetricsMiddleware(e.Metrics)(cors(mux)))
}
