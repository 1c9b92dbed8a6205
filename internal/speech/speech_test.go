package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/benefind/internal/eligibility"
)

func TestSessionService_RoundTrip(t *testing.T) {
	svc, err := NewSessionService("test-secret", 0)
	require.NoError(t, err)

	token, sessionID, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sessionID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, claims.SessionID)
}

func TestSessionService_WrongSecret(t *testing.T) {
	issuer, err := NewSessionService("secret-a", 0)
	require.NoError(t, err)
	verifier, err := NewSessionService("secret-b", 0)
	require.NoError(t, err)

	token, _, err := issuer.GenerateToken()
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionService_ExpiredToken(t *testing.T) {
	svc, err := NewSessionService("test-secret", -time.Minute)
	require.NoError(t, err)

	token, _, err := svc.GenerateToken()
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionService_EmptyInputs(t *testing.T) {
	_, err := NewSessionService("", 0)
	assert.Error(t, err)

	svc, err := NewSessionService("test-secret", 0)
	require.NoError(t, err)
	_, err = svc.ValidateToken("")
	assert.Error(t, err)
	_, err = svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestSynthesize_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		assert.Contains(t, r.URL.Path, DefaultVoiceID)
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3-bytes"))
	}))
	defer srv.Close()

	synth, err := NewSynthesizer("test-key", WithBaseURL(srv.URL), WithTTSHTTPClient(srv.Client()))
	require.NoError(t, err)

	audio, err := synth.Synthesize(context.Background(), "Hello there.")
	require.NoError(t, err)
	// Base64 of "fake-mp3-bytes"
	assert.Equal(t, "ZmFrZS1tcDMtYnl0ZXM=", audio)
}

func TestSynthesize_CustomVoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/custom-voice"))
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	synth, err := NewSynthesizer("test-key",
		WithBaseURL(srv.URL), WithTTSHTTPClient(srv.Client()), WithVoice("custom-voice"))
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "Hi.")
	require.NoError(t, err)
}

func TestSynthesize_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "invalid key"}`))
	}))
	defer srv.Close()

	synth, err := NewSynthesizer("bad-key", WithBaseURL(srv.URL), WithTTSHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "Hi.")
	require.Error(t, err)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, http.StatusUnauthorized, synthErr.StatusCode)
}

func TestSynthesize_EmptyText(t *testing.T) {
	synth, err := NewSynthesizer("test-key")
	require.NoError(t, err)

	_, err = synth.Synthesize(context.Background(), "")
	assert.Error(t, err)
}

func TestNewSynthesizer_RequiresKey(t *testing.T) {
	_, err := NewSynthesizer("")
	assert.Error(t, err)
}

func TestBuildVerdictScript_Eligible(t *testing.T) {
	verdict := &eligibility.Verdict{
		Eligible: true,
		Benefit: &eligibility.BenefitEstimate{
			LikelyEligible:          true,
			EstimatedMonthlyBenefit: 375,
		},
	}
	profile := eligibility.HouseholdProfile{State: "TX", HouseholdSize: 4}

	script := BuildVerdictScript(verdict, profile)
	assert.Contains(t, script, "four people")
	assert.Contains(t, script, "Texas")
	assert.Contains(t, script, "likely eligible")
	assert.Contains(t, script, "375 dollars per month")
	assert.Contains(t, script, "final decision")
	assert.NotContains(t, script, "$")
}

func TestBuildVerdictScript_GrossFailure(t *testing.T) {
	verdict := &eligibility.Verdict{
		Eligible:  false,
		GrossTest: eligibility.TestResult{Required: true, Passed: false},
		NetTest:   eligibility.TestResult{Passed: true},
	}
	profile := eligibility.HouseholdProfile{State: "DC", HouseholdSize: 1}

	script := BuildVerdictScript(verdict, profile)
	assert.Contains(t, script, "one person")
	assert.Contains(t, script, "the District of Columbia")
	assert.Contains(t, script, "gross income limit")
}

func TestBuildVerdictScript_LargeHousehold(t *testing.T) {
	verdict := &eligibility.Verdict{Eligible: true}
	profile := eligibility.HouseholdProfile{State: "CA", HouseholdSize: 11}

	script := BuildVerdictScript(verdict, profile)
	assert.Contains(t, script, "11 people")
	assert.Contains(t, script, "California")
}
