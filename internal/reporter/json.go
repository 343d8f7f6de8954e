package reporter

import (
	"encoding/json"

	"github.com/flowcap/flowcap/internal/scenario"
)

// RenderJSON serializes result verbatim; ScenarioResult and StepResult
// already carry the json tags spec §3's DATA MODEL names.
func RenderJSON(result *scenario.ScenarioResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
