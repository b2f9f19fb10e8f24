package analysis

import "encoding/json"

// Quality grades an evidence domain from best to worst.
type Quality string

const (
	QualityGood       Quality = "good"
	QualityAcceptable Quality = "acceptable"
	QualitySuspicious Quality = "suspicious"
	QualityBad        Quality = "bad"
	QualityUnknown    Quality = "unknown"
)

// Confidence grades how certain the automation analyzer is.
type Confidence string

const (
	ConfidenceLow      Confidence = "low"
	ConfidenceMedium   Confidence = "medium"
	ConfidenceHigh     Confidence = "high"
	ConfidenceVeryHigh Confidence = "very_high"
)

// RiskTier grades proxy/VPN evidence.
type RiskTier string

const (
	RiskTierNone   RiskTier = "none"
	RiskTierLow    RiskTier = "low"
	RiskTierMedium RiskTier = "medium"
	RiskTierHigh   RiskTier = "high"
)

// ThreatLevel grades threat-pattern evidence.
type ThreatLevel string

const (
	ThreatNone     ThreatLevel = "none"
	ThreatMedium   ThreatLevel = "medium"
	ThreatHigh     ThreatLevel = "high"
	ThreatCritical ThreatLevel = "critical"
)

// RiskLevel is the final categorical verdict.
type RiskLevel string

const (
	RiskMinimal  RiskLevel = "minimal"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// CheckStatus is the outcome of one consistency check.
type CheckStatus string

const (
	CheckPassed  CheckStatus = "passed"
	CheckFailed  CheckStatus = "failed"
	CheckWarning CheckStatus = "warning"
)

// BehaviorScore is the baseline behavioral verdict.
type BehaviorScore string

const (
	BehaviorHumanLikely BehaviorScore = "human_likely"
	BehaviorUncertain   BehaviorScore = "uncertain"
	BehaviorBotLikely   BehaviorScore = "bot_likely"
)

// Likelihood grades the advanced behavioral human-likelihood vote.
type Likelihood string

const (
	LikelihoodLow     Likelihood = "low"
	LikelihoodMedium  Likelihood = "medium"
	LikelihoodHigh    Likelihood = "high"
	LikelihoodUnknown Likelihood = "unknown"
)

// Indicator is one piece of evidence attached to a finding.
type Indicator struct {
	Message  string `json:"message"`
	Property string `json:"property,omitempty"`
	Header   string `json:"header,omitempty"`
	Value    string `json:"value,omitempty"`
	Tool     string `json:"tool,omitempty"`
}

// BasicInfo echoes the request metadata the verdict was computed from.
type BasicInfo struct {
	IPAddress string `json:"ip_address"`
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	Protocol  string `json:"protocol"`
	Port      string `json:"port"`
	IsSecure  bool   `json:"is_secure"`
}

type HeaderFinding struct {
	TotalHeaders           int               `json:"total_headers"`
	SuspiciousPatterns     []string          `json:"suspicious_patterns"`
	MissingStandardHeaders []string          `json:"missing_standard_headers"`
	ProxyHeaders           map[string]string `json:"proxy_headers"`
	HeaderQuality          Quality           `json:"header_quality"`
}

type UAFinding struct {
	RawUserAgent       string   `json:"raw_user_agent"`
	Parsed             ParsedUA `json:"parsed"`
	SuspiciousPatterns []string `json:"suspicious_patterns"`
	Quality            Quality  `json:"quality"`
}

type FingerprintFinding struct {
	FingerprintData        map[string]json.RawMessage `json:"fingerprint_data"`
	Inconsistencies        []Indicator                `json:"inconsistencies"`
	ManipulationIndicators []Indicator                `json:"manipulation_indicators"`
	Quality                Quality                    `json:"quality"`
}

type ProxyFinding struct {
	Indicators        []Indicator `json:"indicators"`
	ProxyHeadersFound []string    `json:"proxy_headers_found"`
	RiskLevel         RiskTier    `json:"risk_level"`
	IsProxyLikely     bool        `json:"is_proxy_likely"`
}

type AutomationFinding struct {
	Indicators     []Indicator `json:"indicators"`
	AutomationType []string    `json:"automation_type"`
	Confidence     Confidence  `json:"confidence"`
}

// ConsistencyCheck is one cross-signal comparison result.
type ConsistencyCheck struct {
	Check   string      `json:"check"`
	Status  CheckStatus `json:"status"`
	Details string      `json:"details"`
}

// ConsistencyTally is the ordered set of check results with status counters.
type ConsistencyTally struct {
	Checks   []ConsistencyCheck `json:"checks"`
	Passed   int                `json:"passed"`
	Failed   int                `json:"failed"`
	Warnings int                `json:"warnings"`
}

type ThreatFinding struct {
	ThreatLevel     ThreatLevel `json:"threat_level"`
	ThreatsDetected []string    `json:"threats_detected"`
	RiskFactors     []string    `json:"risk_factors"`
}

type TransportFinding struct {
	Protocol          string          `json:"protocol"`
	IsSecure          bool            `json:"is_secure"`
	CipherSuite       string          `json:"cipher_suite"`
	TLSVersion        string          `json:"tls_version"`
	ClientFingerprint json.RawMessage `json:"client_fingerprint,omitempty"`
}

type BehavioralFinding struct {
	MouseMovement   bool          `json:"mouse_movement"`
	KeyboardInput   bool          `json:"keyboard_input"`
	TouchSupport    bool          `json:"touch_support"`
	PageFocus       bool          `json:"page_focus"`
	ScrollBehavior  bool          `json:"scroll_behavior"`
	BehavioralScore BehaviorScore `json:"behavioral_score"`
}

type MouseMetrics struct {
	TotalMovements      int     `json:"total_movements"`
	AverageVelocity     float64 `json:"average_velocity"`
	MaxVelocity         float64 `json:"max_velocity"`
	AverageAcceleration float64 `json:"average_acceleration"`
	HasHumanCurves      bool    `json:"has_human_curves"`
	Quality             Quality `json:"quality"`
	BotIndicator        string  `json:"bot_indicator,omitempty"`
}

type ClickMetrics struct {
	TotalClicks     int     `json:"total_clicks"`
	AverageInterval float64 `json:"average_interval"`
	RhythmVariance  float64 `json:"rhythm_variance"`
	Quality         Quality `json:"quality"`
	BotIndicator    string  `json:"bot_indicator,omitempty"`
}

type ScrollMetrics struct {
	TotalScrolls    int     `json:"total_scrolls"`
	AverageVelocity float64 `json:"average_velocity"`
	HasScrolled     bool    `json:"has_scrolled"`
}

type KeyboardMetrics struct {
	AverageDwellTime  float64 `json:"average_dwell_time"`
	AverageFlightTime float64 `json:"average_flight_time"`
	TypingRhythm      float64 `json:"typing_rhythm"`
	Quality           Quality `json:"quality"`
}

type AdvancedBehavioralFinding struct {
	Mouse           *MouseMetrics    `json:"mouse_behavior,omitempty"`
	Click           *ClickMetrics    `json:"click_behavior,omitempty"`
	Scroll          *ScrollMetrics   `json:"scroll_behavior,omitempty"`
	Keyboard        *KeyboardMetrics `json:"keyboard_behavior,omitempty"`
	HumanLikelihood Likelihood       `json:"human_likelihood"`
}

type VMFinding struct {
	VMLikelihood    string          `json:"vm_likelihood"`
	Indicators      map[string]bool `json:"indicators"`
	TotalIndicators int             `json:"total_indicators"`
	IsLikelyVM      bool            `json:"is_likely_vm"`
}

type ExtensionsFinding struct {
	TotalDetected    int             `json:"total_detected"`
	AdblockDetected  bool            `json:"adblock_detected"`
	DevtoolsDetected bool            `json:"devtools_detected"`
	Extensions       map[string]bool `json:"extensions"`
	PrivacyConcerned bool            `json:"privacy_concerned"`
}

type TimingFinding struct {
	PageLoadTime           float64  `json:"page_load_time"`
	TimeToFirstInteraction *float64 `json:"time_to_first_interaction"`
	TimeToFirstClick       *float64 `json:"time_to_first_click"`
	TimeToFirstScroll      *float64 `json:"time_to_first_scroll"`
	SuspicionLevel         string   `json:"suspicion_level"`
	Reason                 string   `json:"reason,omitempty"`
}

type CSSMediaFinding struct {
	TotalFeatures   int             `json:"total_features"`
	PointerType     string          `json:"pointer_type"`
	HoverCapable    bool            `json:"hover_capable"`
	ColorGamut      string          `json:"color_gamut"`
	PrefersDarkMode bool            `json:"prefers_dark_mode"`
	ReducedMotion   bool            `json:"reduced_motion"`
	Features        map[string]bool `json:"features"`
}

type SpeechFinding struct {
	Supported   bool   `json:"supported"`
	VoicesCount int    `json:"voices_count,omitempty"`
	VoiceHash   string `json:"voice_hash,omitempty"`
	HasVoices   bool   `json:"has_voices,omitempty"`
	Uniqueness  string `json:"uniqueness,omitempty"`
}

type ClientHintsFinding struct {
	Supported    bool              `json:"supported"`
	Mobile       bool              `json:"mobile,omitempty"`
	Platform     string            `json:"platform,omitempty"`
	Brands       []Brand           `json:"brands,omitempty"`
	HighEntropy  map[string]string `json:"high_entropy,omitempty"`
	Architecture string            `json:"architecture,omitempty"`
	Bitness      string            `json:"bitness,omitempty"`
}

// RiskAssessment is the aggregated verdict.
type RiskAssessment struct {
	TotalScore     int       `json:"total_score"`
	MaxScore       int       `json:"max_score"`
	RiskLevel      RiskLevel `json:"risk_level"`
	VisitorQuality Quality   `json:"visitor_quality"`
	IsGenuine      bool      `json:"is_genuine"`
	Confidence     int       `json:"confidence"`
	RedFlags       []string  `json:"red_flags"`
	GreenFlags     []string  `json:"green_flags"`
}

// Result is the complete per-visit analysis: one section per evidence domain
// plus the aggregated risk assessment.
type Result struct {
	Timestamp           string                    `json:"timestamp"`
	IPAddress           string                    `json:"ip_address"`
	BasicInfo           BasicInfo                 `json:"basic_info"`
	HeaderAnalysis      HeaderFinding             `json:"header_analysis"`
	UserAgentAnalysis   UAFinding                 `json:"user_agent_analysis"`
	BrowserFingerprint  FingerprintFinding        `json:"browser_fingerprint"`
	ProxyVPNDetection   ProxyFinding              `json:"proxy_vpn_detection"`
	AutomationDetection AutomationFinding         `json:"automation_detection"`
	ConsistencyChecks   ConsistencyTally          `json:"consistency_checks"`
	ThreatIndicators    ThreatFinding             `json:"threat_indicators"`
	TLSAnalysis         TransportFinding          `json:"tls_analysis"`
	BehavioralSignals   BehavioralFinding         `json:"behavioral_signals"`
	AdvancedBehavioral  AdvancedBehavioralFinding `json:"advanced_behavioral"`
	VMDetection         VMFinding                 `json:"vm_detection"`
	BrowserExtensions   ExtensionsFinding         `json:"browser_extensions"`
	TimingAnalysis      TimingFinding             `json:"timing_analysis"`
	CSSMediaQueries     CSSMediaFinding           `json:"css_media_queries"`
	SpeechSynthesis     SpeechFinding             `json:"speech_synthesis"`
	ClientHints         ClientHintsFinding        `json:"client_hints"`
	RiskAssessment      RiskAssessment            `json:"risk_assessment"`
}
