package analysis

// AnalyzeVM passes through the pre-computed virtual-machine likelihood and
// its indicator map.
func AnalyzeVM(ctx *RequestContext) VMFinding {
	vm := ctx.Fingerprint.VM
	finding := VMFinding{
		VMLikelihood: vm.Likelihood,
		Indicators:   vm.Flags,
	}
	if finding.VMLikelihood == "" {
		finding.VMLikelihood = "unknown"
	}
	for _, flagged := range vm.Flags {
		if flagged {
			finding.TotalIndicators++
		}
	}
	finding.IsLikelyVM = vm.Likelihood == "high" || vm.Likelihood == "medium"
	return finding
}

// AnalyzeExtensions passes through detected browser extensions. Ad blockers
// and privacy extensions mark a privacy-aware visitor and are never
// penalized.
func AnalyzeExtensions(ctx *RequestContext) ExtensionsFinding {
	ext := ctx.Fingerprint.Extensions
	return ExtensionsFinding{
		TotalDetected:    ext.TotalDetected,
		AdblockDetected:  ext.Adblock,
		DevtoolsDetected: ext.ReactDevtools || ext.VueDevtools,
		Extensions:       ext.Flags,
		PrivacyConcerned: ext.Adblock || ext.PrivacyBadger,
	}
}

// AnalyzeTiming flags interactions that arrive faster than a human could
// produce them.
func AnalyzeTiming(ctx *RequestContext) TimingFinding {
	timing := ctx.Fingerprint.Timing
	finding := TimingFinding{
		PageLoadTime:           timing.PageLoadTime,
		TimeToFirstInteraction: timing.TimeToFirstInteraction,
		TimeToFirstClick:       timing.TimeToFirstClick,
		TimeToFirstScroll:      timing.TimeToFirstScroll,
		SuspicionLevel:         "none",
	}

	if v := timing.TimeToFirstClick; v != nil && *v != 0 && *v < 100 {
		finding.SuspicionLevel = "high"
		finding.Reason = "Clicked too fast (< 100ms)"
	} else if v := timing.TimeToFirstInteraction; v != nil && *v != 0 && *v < 50 {
		finding.SuspicionLevel = "high"
		finding.Reason = "Interacted too fast"
	}

	return finding
}

// AnalyzeCSSMedia derives pointer, hover and color-gamut capabilities from
// the media-query probe results. Descriptive only.
func AnalyzeCSSMedia(ctx *RequestContext) CSSMediaFinding {
	fp := &ctx.Fingerprint
	features := fp.CSSMedia

	pointer := "none"
	if features["pointer_fine"] {
		pointer = "fine"
	} else if features["pointer_coarse"] {
		pointer = "coarse"
	}

	gamut := "unknown"
	if features["color_gamut_p3"] {
		gamut = "p3"
	} else if features["color_gamut_srgb"] {
		gamut = "srgb"
	}

	return CSSMediaFinding{
		TotalFeatures:   fp.CSSMediaCount,
		PointerType:     pointer,
		HoverCapable:    features["hover_hover"],
		ColorGamut:      gamut,
		PrefersDarkMode: features["prefers_color_scheme_dark"],
		ReducedMotion:   features["prefers_reduced_motion"],
		Features:        features,
	}
}

// AnalyzeSpeech summarizes the speech-synthesis probe. Voice-list size is a
// weak uniqueness signal, nothing more.
func AnalyzeSpeech(ctx *RequestContext) SpeechFinding {
	fp := &ctx.Fingerprint
	if !fp.SpeechSupported {
		return SpeechFinding{Supported: false}
	}

	uniqueness := "low"
	if fp.SpeechVoiceCount > 10 {
		uniqueness = "high"
	}

	return SpeechFinding{
		Supported:   true,
		VoicesCount: fp.SpeechVoiceCount,
		VoiceHash:   fp.SpeechVoiceHash,
		HasVoices:   fp.SpeechVoiceCount > 0,
		Uniqueness:  uniqueness,
	}
}

// AnalyzeClientHints passes through the UA Client Hints payload and its
// high-entropy values when reported.
func AnalyzeClientHints(ctx *RequestContext) ClientHintsFinding {
	fp := &ctx.Fingerprint
	hints := fp.ClientHints
	if hints == nil {
		return ClientHintsFinding{Supported: false}
	}

	return ClientHintsFinding{
		Supported:    true,
		Mobile:       hints.Mobile,
		Platform:     hints.Platform,
		Brands:       hints.Brands,
		HighEntropy:  fp.HighEntropy,
		Architecture: fp.HighEntropy["architecture"],
		Bitness:      fp.HighEntropy["bitness"],
	}
}
