package repair

import "encoding/json"

// Repair runs the ordered, configurable repair steps from spec.md §4.2
// over text and reports which ones changed anything. The steps run in a
// fixed order because later steps assume earlier ones already ran: key
// quoting assumes smart quotes are already ASCII, trailing-comma dropping
// assumes comments are already gone, and so on.
//
// Repair never calls the tolerant parser itself — pkg/jsonparse is the
// next pipeline stage — nor encoding/json. RepairAndFallback is the
// variant that checks the staged result with encoding/json.Valid to
// decide whether FallbackRepair is worth invoking, mirroring the teacher's
// SmartParse "try standard, then repair, then hjson" escalation.
func Repair(text string, cfg Config) (string, Metadata) {
	var meta Metadata
	meta.DuplicateKeyPolicy = cfg.DuplicateKeyPolicy

	out := text

	if cfg.FixSmartQuotes {
		if next, changed := fixSmartQuotes(out); changed {
			out, meta.FixedSmartQuotes = next, true
		}
	}
	if cfg.StripJSONComments {
		if next, changed := stripJSONComments(out, cfg.AllowSingleQuotes); changed {
			out, meta.DroppedJSONComments = next, true
		}
	}
	if cfg.ReplacePythonLiterals {
		if next, changed := replacePythonLiterals(out, cfg.AllowSingleQuotes); changed {
			out, meta.ReplacedPythonLiteral = next, true
		}
	}
	if cfg.ConvertKVObjectToJSON {
		if next, changed := convertKVObjectToJSON(out); changed {
			out, meta.ConvertedKvToJson = next, true
		}
	}
	if cfg.QuoteUnquotedKeys {
		if next, changed := quoteUnquotedKeys(out, cfg.AllowSingleQuotes); changed {
			out, meta.QuotedUnquotedKeys = next, true
		}
	}
	if cfg.DropTrailingCommas {
		if next, changed := dropTrailingCommas(out, cfg.AllowSingleQuotes); changed {
			out, meta.DroppedTrailingCommas = next, true
		}
	}

	return out, meta
}

// RepairAndFallback runs Repair, and if the result still isn't valid JSON,
// escalates to FallbackRepair. Returns the best text it could produce;
// callers still need to run it through pkg/jsonparse to get a Value.
func RepairAndFallback(text string, cfg Config) (string, Metadata) {
	out, meta := Repair(text, cfg)
	if json.Valid([]byte(out)) {
		return out, meta
	}
	if fb, err := FallbackRepair(out); err == nil && json.Valid([]byte(fb)) {
		meta.FellBackToLibRepair = true
		return fb, meta
	}
	return out, meta
}
