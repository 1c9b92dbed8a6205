// Package chat turns free-form user messages into structured eligibility
// facts and composes assistant replies.
package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/benefind/internal/llm"
	"github.com/jonathan/benefind/internal/prompts"
	"github.com/jonathan/benefind/internal/schemas"
	"github.com/jonathan/benefind/internal/usstate"
)

// extractionSchema constrains the LLM extraction output. Unknown fields
// are rejected so prompt drift surfaces as a validation error instead of
// silently changing behavior.
const extractionSchema = `{
	"type": "object",
	"properties": {
		"zip_code": {"type": ["string", "null"], "pattern": "^[0-9]{5}$"},
		"state": {"type": ["string", "null"], "minLength": 2, "maxLength": 2},
		"monthly_income": {"type": ["number", "null"], "minimum": 0},
		"family_size": {"type": ["integer", "null"], "minimum": 1}
	},
	"required": ["zip_code", "state", "monthly_income", "family_size"],
	"additionalProperties": false
}`

// Fields holds the facts extracted from a single message. Nil means the
// message did not mention that fact.
type Fields struct {
	ZipCode       *string  `json:"zip_code"`
	State         *string  `json:"state"`
	MonthlyIncome *float64 `json:"monthly_income"`
	FamilySize    *int     `json:"family_size"`
}

// Merge overlays non-nil fields from other onto a copy of f. Used to
// accumulate facts across a conversation.
func (f Fields) Merge(other Fields) Fields {
	if other.ZipCode != nil {
		f.ZipCode = other.ZipCode
	}
	if other.State != nil {
		f.State = other.State
	}
	if other.MonthlyIncome != nil {
		f.MonthlyIncome = other.MonthlyIncome
	}
	if other.FamilySize != nil {
		f.FamilySize = other.FamilySize
	}
	return f
}

// Missing lists the fact names still needed for an eligibility estimate.
func (f Fields) Missing() []string {
	var missing []string
	if f.State == nil && f.ZipCode == nil {
		missing = append(missing, "state or ZIP code")
	}
	if f.MonthlyIncome == nil {
		missing = append(missing, "monthly income")
	}
	if f.FamilySize == nil {
		missing = append(missing, "household size")
	}
	return missing
}

// Extractor extracts Fields from messages with an LLM.
type Extractor struct {
	client llm.Client
}

// NewExtractor creates an Extractor.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract pulls structured fields out of one message. Output is schema
// validated before use; a state code that fails normalization is dropped
// rather than failing the whole extraction.
func (e *Extractor) Extract(ctx context.Context, message string) (Fields, error) {
	var fields Fields

	template, err := prompts.Get("chat.json", "extract_fields")
	if err != nil {
		return fields, err
	}
	prompt := prompts.Format(template, map[string]string{"Message": message})

	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return fields, fmt.Errorf("field extraction failed: %w", err)
	}

	if err := schemas.ValidateJSONString(extractionSchema, raw); err != nil {
		return fields, fmt.Errorf("extraction output rejected: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return fields, fmt.Errorf("failed to parse extraction output: %w", err)
	}

	if fields.State != nil {
		normalized, err := usstate.NormalizeState(*fields.State)
		if err != nil {
			fields.State = nil
		} else {
			fields.State = &normalized
		}
	}
	if fields.ZipCode != nil {
		normalized, err := usstate.NormalizeZip(*fields.ZipCode)
		if err != nil {
			fields.ZipCode = nil
		} else {
			fields.ZipCode = &normalized
		}
	}

	return fields, nil
}
