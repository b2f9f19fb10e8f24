package httpx

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/trafficlens/visitoriq/internal/adconfig"
	"github.com/trafficlens/visitoriq/internal/analysis"
	"github.com/trafficlens/visitoriq/internal/ipinfo"
	"github.com/trafficlens/visitoriq/internal/metrics"
	cfg "github.com/trafficlens/visitoriq/pkg/config"
)

type Env struct {
	Cfg      cfg.Config
	Metrics  *metrics.Metrics
	Resolver *ipinfo.Resolver      // optional ASN reputation lookup
	Ads      adconfig.Config       // static /ads.json payload
	Emit     func(analysis.Report) // injected sink fan-out
}

func (e Env) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (e Env) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// analyzeRequest is the accepted body shape. Anything else in the body is
// ignored; a missing or malformed fingerprint degrades to the empty payload
// rather than rejecting the request, since an unparseable payload is itself
// evidence the pipeline scores.
type analyzeRequest struct {
	Fingerprint json.RawMessage `json:"fingerprint"`
}

// POST /analyze — runs the full evidence pipeline over the calling request.
func (e Env) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, e.Cfg.MaxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		req.Fingerprint = nil
	}
	fp := analysis.ParseFingerprint(req.Fingerprint)

	// Enrich with server-side ASN reputation only when the client sent a
	// payload without its own ip_info; an empty payload must stay empty so
	// the integrity analyzer still judges it as such.
	if e.Resolver != nil && !fp.Empty() && fp.IPInfo == nil {
		fp.IPInfo = e.Resolver.Resolve(analysis.ClientIP(r))
	}

	ctx := analysis.BuildContext(r, fp)

	result, err := e.runPipeline(ctx)
	if err != nil {
		log.Printf("analyze: pipeline failed for %s: %v", ctx.ClientIP, err)
		if e.Metrics != nil {
			e.Metrics.AnalysisFailures.Inc()
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if e.Emit != nil {
		e.Emit(analysis.Report{
			AssessmentID: uuid.NewString(),
			TS:           result.Timestamp,
			ClientIP:     ctx.ClientIP,
			RiskLevel:    result.RiskAssessment.RiskLevel,
			Results:      *result,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"results": result,
	})
}

// runPipeline isolates a single analysis behind a recovery boundary: a
// panicking analyzer fails that request only, and its partial result is
// discarded.
func (e Env) runPipeline(ctx *analysis.RequestContext) (result *analysis.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("analysis failure: %v", rec)
		}
	}()

	start := time.Now()
	r := analysis.Analyze(ctx)
	if e.Metrics != nil {
		e.Metrics.ObserveAssessment(string(r.RiskAssessment.RiskLevel), time.Since(start))
	}
	return &r, nil
}

// GET /ads.json — read-only advertising placement configuration.
func (e Env) AdsJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"config":       e.Ads,
		"head_scripts": e.Ads.HeadScripts(),
		"snippets":     e.Ads.Snippets(),
	})
}
