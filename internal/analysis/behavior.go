package analysis

// AnalyzeBehavior folds the four baseline interaction booleans into a
// coarse human/bot verdict. Touch support is reported but not counted: its
// absence is normal on desktop.
func AnalyzeBehavior(ctx *RequestContext) BehavioralFinding {
	fp := &ctx.Fingerprint
	finding := BehavioralFinding{
		MouseMovement:  fp.HasMouseMovement,
		KeyboardInput:  fp.HasKeyboardInput,
		TouchSupport:   fp.TouchSupport,
		PageFocus:      fp.HasPageFocus,
		ScrollBehavior: fp.HasScroll,
	}

	positive := 0
	for _, signal := range []bool{fp.HasMouseMovement, fp.HasKeyboardInput, fp.HasPageFocus, fp.HasScroll} {
		if signal {
			positive++
		}
	}

	switch {
	case positive >= 3:
		finding.BehavioralScore = BehaviorHumanLikely
	case positive >= 2:
		finding.BehavioralScore = BehaviorUncertain
	default:
		finding.BehavioralScore = BehaviorBotLikely
	}

	return finding
}

// AnalyzeAdvancedBehavior grades fine-grained interaction telemetry: mouse
// velocity curves, click rhythm variance, scroll and typing cadence. The
// final likelihood is a weighted vote; human curves and bot-like click rhythm
// both count double.
func AnalyzeAdvancedBehavior(ctx *RequestContext) AdvancedBehavioralFinding {
	fp := &ctx.Fingerprint
	finding := AdvancedBehavioralFinding{HumanLikelihood: LikelihoodUnknown}

	if m := fp.Mouse; m != nil {
		metrics := &MouseMetrics{
			TotalMovements:      m.TotalMovements,
			AverageVelocity:     m.AverageVelocity,
			MaxVelocity:         m.MaxVelocity,
			AverageAcceleration: m.AverageAcceleration,
			HasHumanCurves:      m.HasHumanCurves,
			Quality:             QualitySuspicious,
		}
		if m.HasHumanCurves {
			metrics.Quality = QualityGood
		}
		// Bots move either implausibly fast or not at all.
		if m.AverageVelocity > 3000 {
			metrics.BotIndicator = "Abnormally high velocity"
		} else if m.AverageVelocity == 0 {
			metrics.BotIndicator = "No mouse movement"
		}
		finding.Mouse = metrics
	}

	if c := fp.Click; c != nil {
		metrics := &ClickMetrics{
			TotalClicks:     c.TotalClicks,
			AverageInterval: c.AverageInterval,
			RhythmVariance:  c.RhythmVariance,
			Quality:         QualitySuspicious,
		}
		if c.RhythmVariance > 100 {
			metrics.Quality = QualityGood
		}
		if c.RhythmVariance < 50 {
			metrics.BotIndicator = "Too consistent (bot-like)"
		}
		finding.Click = metrics
	}

	if s := fp.Scroll; s != nil {
		finding.Scroll = &ScrollMetrics{
			TotalScrolls:    s.TotalScrolls,
			AverageVelocity: s.AverageVelocity,
			HasScrolled:     s.HasScrolled,
		}
	}

	if k := fp.Keyboard; k != nil {
		metrics := &KeyboardMetrics{
			AverageDwellTime:  k.AverageDwellTime,
			AverageFlightTime: k.AverageFlightTime,
			TypingRhythm:      k.TypingRhythm,
			Quality:           QualityUnknown,
		}
		if k.TypingRhythm > 0 {
			metrics.Quality = QualityGood
		}
		finding.Keyboard = metrics
	}

	human, bot := 0, 0
	if finding.Mouse != nil {
		if finding.Mouse.HasHumanCurves {
			human += 2
		}
		if finding.Mouse.BotIndicator != "" {
			bot += 2
		}
	}
	if finding.Click != nil {
		if finding.Click.RhythmVariance > 100 {
			human++
		}
		if finding.Click.BotIndicator != "" {
			bot += 2
		}
	}

	switch {
	case human > bot:
		finding.HumanLikelihood = LikelihoodHigh
	case bot > human:
		finding.HumanLikelihood = LikelihoodLow
	default:
		finding.HumanLikelihood = LikelihoodMedium
	}

	return finding
}
