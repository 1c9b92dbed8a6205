package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/benefind/internal/chat"
	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/speech"
	"github.com/jonathan/benefind/internal/types"
	"github.com/jonathan/benefind/internal/usstate"
)

// handleEligibility evaluates a household profile and returns the verdict.
func (s *Server) handleEligibility(w http.ResponseWriter, r *http.Request) {
	var req types.EligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict, _, err := s.evaluate(r.Context(), req)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, verdict)
}

// evaluate builds a profile from the request and runs the selected
// strategy, falling back to the server's configured mode. A ZIP code
// resolves to the household's state, cross-checked against any supplied
// state.
func (s *Server) evaluate(ctx context.Context, req types.EligibilityRequest) (*eligibility.Verdict, string, error) {
	state := req.State
	if req.ZipCode != "" {
		loc, err := s.deps.Geocoder.Resolve(ctx, req.ZipCode, req.State)
		if err != nil {
			return nil, "", err
		}
		state = loc.State
	}

	mode := eligibility.Mode(req.Mode)
	if mode == "" {
		mode = s.deps.Mode
	}
	est, err := eligibility.ForMode(mode)
	if err != nil {
		return nil, "", err
	}

	verdict, err := est.Evaluate(eligibility.HouseholdProfile{
		State:              state,
		HouseholdSize:      req.HouseholdSize,
		MonthlyIncome:      req.MonthlyIncome,
		ElderlyOrDisabled:  req.ElderlyOrDisabled,
		MedicalExpenses:    req.MedicalExpenses,
		DependentCareCosts: req.DependentCareCosts,
		HousingCost:        req.HousingCost,
	})
	return verdict, state, err
}

// handleResources geocodes a ZIP code and searches for nearby food
// resources. Lookup failures degrade to community fallbacks inside the
// finder; only invalid input surfaces as an error here.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	var req types.ResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	loc, err := s.deps.Geocoder.Resolve(r.Context(), req.ZipCode, req.State)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	results, err := s.deps.Finder.Search(r.Context(), loc, req.RadiusMiles)
	if err != nil {
		log.Printf("Resource search failed for %s: %v", req.ZipCode, err)
		s.errorResponse(w, HTTPStatus(err), "resource search failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"location":  loc,
		"resources": results,
	})
}

// handleChat routes a conversational message through the responder.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Responder == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	explicit := chat.Fields{
		ZipCode:       req.ZipCode,
		State:         req.State,
		MonthlyIncome: req.MonthlyIncome,
		FamilySize:    req.FamilySize,
	}

	reply, err := s.deps.Responder.Respond(r.Context(), req.SessionID, req.Message, explicit)
	if err != nil {
		log.Printf("Chat respond failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), "failed to generate a reply")
		return
	}

	s.jsonResponse(w, http.StatusOK, reply)
}

// handleVoiceSession issues a short-lived token for the voice surface.
func (s *Server) handleVoiceSession(w http.ResponseWriter, _ *http.Request) {
	if s.deps.Sessions == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "voice sessions are not configured")
		return
	}

	token, sessionID, err := s.deps.Sessions.GenerateToken()
	if err != nil {
		log.Printf("Failed to generate voice session token: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.VoiceSessionResponse{
		SessionID: sessionID.String(),
		Token:     token,
		ExpiresIn: int(speech.DefaultSessionTTL.Seconds()),
	})
}

// handleVoiceEligibility evaluates a profile and returns a spoken script,
// optionally with synthesized audio. A valid session token is required.
func (s *Server) handleVoiceEligibility(w http.ResponseWriter, r *http.Request) {
	if s.deps.Sessions == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "voice sessions are not configured")
		return
	}
	if _, err := s.deps.Sessions.ValidateToken(bearerToken(r)); err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "invalid or expired session token")
		return
	}

	var req types.VoiceEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict, state, err := s.evaluate(r.Context(), req.EligibilityRequest)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if norm, err := usstate.NormalizeState(state); err == nil {
		state = norm
	}
	profile := eligibility.HouseholdProfile{
		State:         state,
		HouseholdSize: req.HouseholdSize,
	}
	resp := types.VoiceEligibilityResponse{
		Script: speech.BuildVerdictScript(verdict, profile),
	}

	if req.IncludeAudio {
		if s.deps.Synthesizer == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "speech synthesis is not configured")
			return
		}
		audio, err := s.deps.Synthesizer.Synthesize(r.Context(), resp.Script)
		if err != nil {
			log.Printf("Speech synthesis failed: %v", err)
			s.errorResponse(w, HTTPStatus(err), "speech synthesis failed")
			return
		}
		resp.AudioBase64 = audio
		resp.AudioFormat = "mp3"
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleVoiceIntegration describes the voice surface so external voice
// platforms can discover the session and eligibility endpoints.
func (s *Server) handleVoiceIntegration(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"session_endpoint":     "/api/voice/session",
		"eligibility_endpoint": "/api/voice/eligibility",
		"auth":                 "Bearer token from the session endpoint",
		"session_ttl_seconds":  int(speech.DefaultSessionTTL.Seconds()),
		"audio_format":         "mp3",
	})
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
