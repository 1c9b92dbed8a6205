package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultVoiceID is the ElevenLabs voice used when none is configured.
const DefaultVoiceID = "EXAVITQu4vr4xnSDxMaL"

// DefaultTTSModel balances latency and quality for short spoken answers.
const DefaultTTSModel = "eleven_turbo_v2_5"

const ttsTimeout = 30 * time.Second

// SynthesisError represents a failed text-to-speech request.
type SynthesisError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("speech synthesis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("speech synthesis failed: %s", e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// Synthesizer converts text to spoken audio via the ElevenLabs API.
type Synthesizer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
	model      string
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithVoice overrides the default voice.
func WithVoice(voiceID string) SynthesizerOption {
	return func(s *Synthesizer) {
		if voiceID != "" {
			s.voiceID = voiceID
		}
	}
}

// WithBaseURL overrides the API endpoint (used by tests).
func WithBaseURL(baseURL string) SynthesizerOption {
	return func(s *Synthesizer) { s.baseURL = baseURL }
}

// WithTTSHTTPClient overrides the HTTP client.
func WithTTSHTTPClient(client *http.Client) SynthesizerOption {
	return func(s *Synthesizer) { s.httpClient = client }
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(apiKey string, opts ...SynthesizerOption) (*Synthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	s := &Synthesizer{
		httpClient: &http.Client{Timeout: ttsTimeout},
		baseURL:    "https://api.elevenlabs.io",
		apiKey:     apiKey,
		voiceID:    DefaultVoiceID,
		model:      DefaultTTSModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize converts text to MP3 audio, returned base64-encoded for
// embedding in JSON responses.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", &SynthesisError{Message: "text is empty"}
	}

	payload, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: s.model,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	})
	if err != nil {
		return "", &SynthesisError{Message: "failed to encode request", Cause: err}
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", &SynthesisError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &SynthesisError{Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &SynthesisError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &SynthesisError{Message: "failed to read audio", Cause: err}
	}

	return base64.StdEncoding.EncodeToString(audio), nil
}
