package analysis

import (
	"encoding/json"
)

// Fingerprint is the client-supplied payload describing browser and device
// characteristics. Nothing in it is trusted or required: it is decoded
// leniently from whatever JSON arrives, unknown keys are ignored, and a key
// that is missing or carries the wrong type decays to its conservative
// default. Absence of a signal is evidence, never an error.
type Fingerprint struct {
	// Raw keeps the original top-level keys for presence checks and for
	// echoing back in the analysis response.
	Raw map[string]json.RawMessage `json:"-"`

	Webdriver bool
	Headless  bool

	Plugins       int
	Languages     []string
	Language      string
	Canvas        string
	WebGLVendor   string
	WebGLRenderer string
	ScreenWidth   int
	ScreenHeight  int

	Timezone            string
	TimezoneOffset      *int
	HardwareConcurrency int
	Platform            string

	Chrome                      bool
	ChromeRuntime               bool
	PermissionsQueryUnavailable bool
	NotificationPermission      string

	// Artifacts holds the automation globals (window.__selenium and
	// friends) that were present and truthy in the payload.
	Artifacts map[string]bool

	IPInfo         *IPInfo
	WebRTCIPs      []string
	TLSFingerprint json.RawMessage

	HasMouseMovement bool
	HasKeyboardInput bool
	TouchSupport     bool
	HasPageFocus     bool // defaults true when unreported
	HasScroll        bool

	Mouse    *MouseBehavior
	Click    *ClickBehavior
	Scroll   *ScrollBehavior
	Keyboard *KeyboardBehavior

	VM         VMDetection
	Extensions Extensions
	Timing     AdvancedTiming

	CSSMedia      map[string]bool
	CSSMediaCount int

	SpeechSupported  bool
	SpeechVoiceCount int
	SpeechVoiceHash  string

	ClientHints *ClientHints
	HighEntropy map[string]string
}

// IPInfo is the pre-resolved address-reputation lookup. It is consumed as an
// opaque input; the pipeline never performs the lookup itself.
type IPInfo struct {
	IsDatacenter bool   `json:"is_datacenter,omitempty"`
	IsVPN        bool   `json:"is_vpn,omitempty"`
	IsProxy      bool   `json:"is_proxy,omitempty"`
	IsTor        bool   `json:"is_tor,omitempty"`
	ASN          uint   `json:"asn,omitempty"`
	Organization string `json:"organization,omitempty"`
}

type MouseBehavior struct {
	TotalMovements      int
	AverageVelocity     float64
	MaxVelocity         float64
	AverageAcceleration float64
	HasHumanCurves      bool
}

type ClickBehavior struct {
	TotalClicks     int
	AverageInterval float64
	RhythmVariance  float64
}

type ScrollBehavior struct {
	TotalScrolls    int
	AverageVelocity float64
	HasScrolled     bool
}

type KeyboardBehavior struct {
	AverageDwellTime  float64
	AverageFlightTime float64
	TypingRhythm      float64
}

type VMDetection struct {
	Likelihood string
	Flags      map[string]bool
}

type Extensions struct {
	TotalDetected int
	Adblock       bool
	ReactDevtools bool
	VueDevtools   bool
	PrivacyBadger bool
	Flags         map[string]bool
}

type AdvancedTiming struct {
	PageLoadTime           float64
	TimeToFirstInteraction *float64
	TimeToFirstClick       *float64
	TimeToFirstScroll      *float64
}

type ClientHints struct {
	Mobile   bool    `json:"mobile"`
	Platform string  `json:"platform"`
	Brands   []Brand `json:"brands"`
}

type Brand struct {
	Brand   string `json:"brand"`
	Version string `json:"version"`
}

// automationArtifacts are the window globals left behind by automation
// frameworks, with the tool each one is attributed to. Ordered so indicator
// output stays deterministic.
var automationArtifacts = []struct {
	Property string
	Tool     string
}{
	{"__webdriver", "Selenium"},
	{"__driver", "WebDriver"},
	{"__selenium", "Selenium"},
	{"__nightmare", "Nightmare.js"},
	{"__phantomas", "PhantomJS"},
	{"callPhantom", "PhantomJS"},
	{"_phantom", "PhantomJS"},
	{"domAutomation", "Chrome Extension"},
	{"domAutomationController", "Chrome Automation"},
}

// ParseFingerprint decodes a fingerprint payload. It never fails: invalid or
// non-object input yields the empty fingerprint, which downstream analyzers
// treat as absence of positive evidence.
func ParseFingerprint(data []byte) Fingerprint {
	fp := Fingerprint{HasPageFocus: true}
	if len(data) == 0 {
		return fp
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) == 0 {
		return fp
	}
	fp.Raw = raw

	fp.Webdriver = asBool(raw["webdriver"])
	fp.Headless = asBool(raw["headless"])

	fp.Plugins = asInt(raw["plugins"])
	fp.Languages = asStringSlice(raw["languages"])
	fp.Language = asString(raw["language"])
	fp.Canvas = asString(raw["canvas"])
	fp.WebGLVendor = asString(raw["webgl_vendor"])
	fp.WebGLRenderer = asString(raw["webgl_renderer"])
	fp.ScreenWidth = asInt(raw["screen_width"])
	fp.ScreenHeight = asInt(raw["screen_height"])

	fp.Timezone = asString(raw["timezone"])
	fp.TimezoneOffset = asIntPtr(raw["timezone_offset"])
	fp.HardwareConcurrency = asInt(raw["hardware_concurrency"])
	fp.Platform = asString(raw["platform"])

	fp.Chrome = asBool(raw["chrome"])
	fp.ChromeRuntime = asBool(raw["chrome_runtime"])
	fp.PermissionsQueryUnavailable = asBool(raw["permissions_query_unavailable"])
	fp.NotificationPermission = asString(raw["notification_permission"])

	for _, art := range automationArtifacts {
		if asBool(raw[art.Property]) {
			if fp.Artifacts == nil {
				fp.Artifacts = map[string]bool{}
			}
			fp.Artifacts[art.Property] = true
		}
	}

	if obj, ok := asObject(raw["ip_info"]); ok {
		fp.IPInfo = &IPInfo{
			IsDatacenter: asBool(obj["is_datacenter"]),
			IsVPN:        asBool(obj["is_vpn"]),
			IsProxy:      asBool(obj["is_proxy"]),
			IsTor:        asBool(obj["is_tor"]),
			ASN:          uint(asInt(obj["asn"])),
			Organization: asString(obj["organization"]),
		}
	}
	fp.WebRTCIPs = asStringSlice(raw["webrtc_ips"])
	fp.TLSFingerprint = raw["tls_fingerprint"]

	fp.HasMouseMovement = asBool(raw["has_mouse_movement"])
	fp.HasKeyboardInput = asBool(raw["has_keyboard_input"])
	fp.TouchSupport = asBool(raw["touch_support"])
	if _, ok := raw["has_page_focus"]; ok {
		fp.HasPageFocus = asBool(raw["has_page_focus"])
	}
	fp.HasScroll = asBool(raw["has_scroll"])

	if obj, ok := asObject(raw["mouse_behavior"]); ok {
		fp.Mouse = &MouseBehavior{
			TotalMovements:      asInt(obj["total_movements"]),
			AverageVelocity:     asFloat(obj["average_velocity"]),
			MaxVelocity:         asFloat(obj["max_velocity"]),
			AverageAcceleration: asFloat(obj["average_acceleration"]),
			HasHumanCurves:      asBool(obj["has_human_curves"]),
		}
	}
	if obj, ok := asObject(raw["click_behavior"]); ok {
		fp.Click = &ClickBehavior{
			TotalClicks:     asInt(obj["total_clicks"]),
			AverageInterval: asFloat(obj["average_click_interval"]),
			RhythmVariance:  asFloat(obj["click_rhythm_variance"]),
		}
	}
	if obj, ok := asObject(raw["scroll_behavior"]); ok {
		fp.Scroll = &ScrollBehavior{
			TotalScrolls:    asInt(obj["total_scrolls"]),
			AverageVelocity: asFloat(obj["average_scroll_velocity"]),
			HasScrolled:     asBool(obj["has_scrolled"]),
		}
	}
	if obj, ok := asObject(raw["keyboard_behavior"]); ok {
		fp.Keyboard = &KeyboardBehavior{
			AverageDwellTime:  asFloat(obj["average_dwell_time"]),
			AverageFlightTime: asFloat(obj["average_flight_time"]),
			TypingRhythm:      asFloat(obj["typing_rhythm"]),
		}
	}

	if obj, ok := asObject(raw["vm_detection"]); ok {
		fp.VM.Likelihood = asString(obj["vm_likelihood"])
		fp.VM.Flags = asBoolMap(obj)
	}
	if obj, ok := asObject(raw["browser_extensions"]); ok {
		fp.Extensions = Extensions{
			TotalDetected: asInt(obj["total_detected"]),
			Adblock:       asBool(obj["adblock_detected"]),
			ReactDevtools: asBool(obj["react_devtools"]),
			VueDevtools:   asBool(obj["vue_devtools"]),
			PrivacyBadger: asBool(obj["privacy_badger"]),
			Flags:         asBoolMap(obj),
		}
	}
	if obj, ok := asObject(raw["advanced_timing"]); ok {
		fp.Timing = AdvancedTiming{
			PageLoadTime:           asFloat(obj["page_load_time"]),
			TimeToFirstInteraction: asFloatPtr(obj["time_to_first_interaction"]),
			TimeToFirstClick:       asFloatPtr(obj["time_to_first_click"]),
			TimeToFirstScroll:      asFloatPtr(obj["time_to_first_scroll"]),
		}
	}

	if obj, ok := asObject(raw["css_media_queries"]); ok {
		fp.CSSMedia = asBoolMap(obj)
	}
	fp.CSSMediaCount = asInt(raw["css_media_queries_count"])

	fp.SpeechSupported = asBool(raw["speech_synthesis_support"])
	fp.SpeechVoiceCount = asInt(raw["speech_voices_count"])
	fp.SpeechVoiceHash = asString(raw["speech_voice_hash"])

	if obj, ok := asObject(raw["client_hints"]); ok {
		hints := &ClientHints{
			Mobile:   asBool(obj["mobile"]),
			Platform: asString(obj["platform"]),
		}
		if hints.Platform == "" {
			hints.Platform = "unknown"
		}
		_ = json.Unmarshal(obj["brands"], &hints.Brands)
		fp.ClientHints = hints
	}
	if obj, ok := asObject(raw["client_hints_high_entropy"]); ok {
		fp.HighEntropy = map[string]string{}
		for k, v := range obj {
			if s := asString(v); s != "" {
				fp.HighEntropy[k] = s
			}
		}
	}

	return fp
}

// Empty reports whether the payload carried no usable keys at all.
func (f *Fingerprint) Empty() bool { return len(f.Raw) == 0 }

// --- lenient value readers ---
//
/// These mirror the defaulting policy: wrong type or missing key reads as the
// zero value, and truthiness follows the loose semantics of the collection
// script (non-zero number, non-empty string/array/object, true).

func asBool(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s != ""
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		return len(arr) > 0
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		return len(obj) > 0
	}
	return false
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func asFloat(raw json.RawMessage) float64 {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	// The collection script occasionally ships numbers as strings.
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var sn float64
		if err := json.Unmarshal([]byte(s), &sn); err == nil {
			return sn
		}
	}
	return 0
}

func asInt(raw json.RawMessage) int { return int(asFloat(raw)) }

func asIntPtr(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	v := int(n)
	return &v
}

func asFloatPtr(raw json.RawMessage) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}

func asStringSlice(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := asString(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asObject returns the keys of a JSON object, or false when the value is
// absent, not an object, or empty.
func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return nil, false
	}
	return obj, true
}

func asBoolMap(obj map[string]json.RawMessage) map[string]bool {
	out := map[string]bool{}
	for k, v := range obj {
		var b bool
		if err := json.Unmarshal(v, &b); err == nil {
			out[k] = b
		}
	}
	return out
}
