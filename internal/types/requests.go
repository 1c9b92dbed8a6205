// Package types provides request and response types shared by the HTTP API.
package types

import (
	"github.com/go-playground/validator/v10"
)

// EligibilityRequest is the body of POST /api/eligibility. A ZIP code can
// stand in for the state; the handler resolves it via geocoding.
type EligibilityRequest struct {
	ZipCode            string  `json:"zip_code,omitempty" validate:"omitempty,len=5,numeric"`
	State              string  `json:"state,omitempty" validate:"required_without=ZipCode"`
	HouseholdSize      int     `json:"household_size" validate:"required,min=1"`
	MonthlyIncome      float64 `json:"monthly_income" validate:"min=0"`
	ElderlyOrDisabled  bool    `json:"elderly_or_disabled"`
	MedicalExpenses    float64 `json:"medical_expenses" validate:"min=0"`
	DependentCareCosts float64 `json:"dependent_care_costs" validate:"min=0"`
	HousingCost        float64 `json:"housing_cost" validate:"min=0"`
	Mode               string  `json:"mode,omitempty" validate:"omitempty,oneof=detailed quick"`
}

// ResourceRequest is the body of POST /api/resources.
type ResourceRequest struct {
	ZipCode     string  `json:"zip_code" validate:"required,len=5,numeric"`
	State       string  `json:"state,omitempty"`
	RadiusMiles float64 `json:"radius_miles,omitempty" validate:"omitempty,min=1,max=50"`
}

// ChatRequest is the body of POST /api/chat. The explicit fields are
// optional and take precedence over anything extracted from the message.
type ChatRequest struct {
	SessionID     string   `json:"session_id,omitempty"`
	Message       string   `json:"message" validate:"required,min=1,max=2000"`
	ZipCode       *string  `json:"zip_code,omitempty" validate:"omitempty,len=5,numeric"`
	State         *string  `json:"state,omitempty"`
	MonthlyIncome *float64 `json:"monthly_income,omitempty" validate:"omitempty,min=0"`
	FamilySize    *int     `json:"family_size,omitempty" validate:"omitempty,min=1"`
}

// VoiceEligibilityRequest is the body of POST /api/voice/eligibility. It
// mirrors EligibilityRequest and adds an audio toggle. The voice itself is
// server configuration.
type VoiceEligibilityRequest struct {
	EligibilityRequest
	IncludeAudio bool `json:"include_audio"`
}

// VoiceEligibilityResponse pairs the verdict script with optional audio.
type VoiceEligibilityResponse struct {
	Script      string `json:"script"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	AudioFormat string `json:"audio_format,omitempty"`
}

// VoiceSessionResponse is the body returned by POST /api/voice/session.
type VoiceSessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

// Validate validates the EligibilityRequest using the validator.
func (r *EligibilityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ResourceRequest using the validator.
func (r *ResourceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the VoiceEligibilityRequest using the validator.
func (r *VoiceEligibilityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
