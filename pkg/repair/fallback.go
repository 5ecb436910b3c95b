package repair

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// FallbackRepair runs RealAlexandreAI/json-repair's whole-string repair as
// a last resort, after the staged pipeline (Repair) still fails to parse.
// Grounded on the teacher's pkg/core/utils/json_validator.go RepairJSON,
// which wraps the same library the same way.
func FallbackRepair(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("fallback json repair failed: %w", err)
	}
	return repaired, nil
}

// LoadHjsonConfig parses a Human JSON (Hjson) configuration or policy
// document — comments, unquoted keys, optional commas — into dest, then
// re-marshals through encoding/json so callers keep a single JSON-shaped
// config type regardless of which format the file was written in.
// Mirrors the teacher's ParseHJSON/ParseHJSONToStruct pair.
func LoadHjsonConfig(data []byte, dest interface{}) error {
	var generic interface{}
	if err := hjson.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("hjson parse: %w", err)
	}
	canonical, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("hjson re-marshal: %w", err)
	}
	if err := json.Unmarshal(canonical, dest); err != nil {
		return fmt.Errorf("hjson decode into destination: %w", err)
	}
	return nil
}
