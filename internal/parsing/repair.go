package parsing

import (
	"encoding/json"

	"github.com/jmartel/cv-anonymizer/internal/llm"
	"github.com/jmartel/cv-anonymizer/internal/types"
)

// RepairJSON normalizes a raw model response into a bare JSON object:
// markdown code fences are stripped, then anything before the first '{'
// or after the last '}' is discarded.
func RepairJSON(raw string) string {
	return llm.SliceJSONObject(llm.CleanJSONBlock(raw))
}

// DecodeRecord repairs and unmarshals a raw model response, then checks
// it against the record schema. Sequence fields are defaulted so the
// caller always receives a fully keyed record.
func DecodeRecord(raw string) (*types.Record, error) {
	repaired := RepairJSON(raw)

	if err := ValidateShape(repaired); err != nil {
		return nil, err
	}

	var rec types.Record
	if err := json.Unmarshal([]byte(repaired), &rec); err != nil {
		return nil, &JSONShapeError{Message: "response is not valid JSON", Cause: err}
	}

	rec.EnsureDefaults()
	return &rec, nil
}
