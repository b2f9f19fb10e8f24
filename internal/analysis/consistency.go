package analysis

import (
	"fmt"
	"strings"
)

// CheckConsistency cross-references fields from different evidence sources.
// A check whose inputs are missing is skipped entirely: it contributes to
// neither the pass nor the fail count. Hardware concurrency is the exception
// and always runs, defaulting to zero cores when unreported.
func CheckConsistency(ctx *RequestContext) ConsistencyTally {
	tally := ConsistencyTally{Checks: []ConsistencyCheck{}}
	fp := &ctx.Fingerprint

	// Declared platform vs the OS family parsed from the user agent.
	if fp.Platform != "" {
		platform := strings.ToLower(fp.Platform)
		uaOS := strings.ToLower(ctx.ParsedUA.OS)

		switch {
		case strings.Contains(platform, "win") && !strings.Contains(uaOS, "windows"):
			tally.record("OS Consistency", CheckFailed,
				fmt.Sprintf("Platform says %s but UA says %s", platform, uaOS))
		case strings.Contains(platform, "mac") && !strings.Contains(uaOS, "mac"):
			tally.record("OS Consistency", CheckFailed,
				fmt.Sprintf("Platform mismatch: %s vs %s", platform, uaOS))
		default:
			tally.record("OS Consistency", CheckPassed, "OS matches between UA and fingerprint")
		}
	}

	// Declared language vs the Accept-Language header, primary subtag only.
	declared := fp.Language
	header := ctx.Headers.Get("Accept-Language")
	if declared != "" && header != "" {
		primary := strings.ToLower(strings.SplitN(declared, "-", 2)[0])
		if !strings.Contains(strings.ToLower(header), primary) {
			tally.record("Language Consistency", CheckWarning,
				fmt.Sprintf("Language mismatch: FP=%s, Header=%s", declared, header))
		} else {
			tally.record("Language Consistency", CheckPassed, "Languages match")
		}
	}

	// UTC offsets run from UTC-12 to UTC+14.
	if off := fp.TimezoneOffset; off != nil {
		if *off < -720 || *off > 840 {
			tally.record("Timezone Validation", CheckFailed,
				fmt.Sprintf("Invalid timezone offset: %d", *off))
		} else {
			tally.record("Timezone Validation", CheckPassed, "Valid timezone offset")
		}
	}

	switch cores := fp.HardwareConcurrency; {
	case cores == 0:
		tally.record("Hardware Concurrency", CheckFailed, "No CPU cores reported")
	case cores > 32:
		tally.record("Hardware Concurrency", CheckWarning,
			fmt.Sprintf("Unusual core count: %d", cores))
	default:
		tally.record("Hardware Concurrency", CheckPassed,
			fmt.Sprintf("%d cores detected", cores))
	}

	return tally
}

func (t *ConsistencyTally) record(name string, status CheckStatus, details string) {
	t.Checks = append(t.Checks, ConsistencyCheck{Check: name, Status: status, Details: details})
	switch status {
	case CheckPassed:
		t.Passed++
	case CheckFailed:
		t.Failed++
	case CheckWarning:
		t.Warnings++
	}
}
