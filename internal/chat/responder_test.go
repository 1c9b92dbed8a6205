package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/geocode"
	"github.com/jonathan/benefind/internal/knowledge"
	"github.com/jonathan/benefind/internal/llm"
	"github.com/jonathan/benefind/internal/resources"
)

type stubExtractor struct {
	fields Fields
	err    error
}

func (s stubExtractor) Extract(_ context.Context, _ string) (Fields, error) {
	return s.fields, s.err
}

type stubGeocoder struct {
	loc *geocode.Location
	err error
}

func (s stubGeocoder) Resolve(_ context.Context, _, _ string) (*geocode.Location, error) {
	return s.loc, s.err
}

type stubSearcher struct {
	results *resources.Results
	err     error
}

func (s stubSearcher) Search(_ context.Context, _ *geocode.Location, _ float64) (*resources.Results, error) {
	return s.results, s.err
}

type stubDocs struct {
	results []knowledge.SearchResult
}

func (s stubDocs) Search(_ context.Context, _, _ string, _ int) ([]knowledge.SearchResult, error) {
	return s.results, nil
}

type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.reply, f.err
}

func (f fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return f.reply, f.err
}

func (f fakeLLM) GetModel(_ llm.ModelTier) string { return "fake" }
func (f fakeLLM) Close() error                    { return nil }

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int         { return &v }

func TestRespond_EligibilityComplete(t *testing.T) {
	extractor := stubExtractor{fields: Fields{
		State:         strPtr("TX"),
		MonthlyIncome: f64Ptr(1500),
		FamilySize:    intPtr(2),
	}}
	responder := NewResponder(extractor, nil, nil, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "do I qualify for snap?")
	require.NoError(t, err)

	assert.Equal(t, IntentEligibility, reply.Intent)
	assert.NotEmpty(t, reply.SessionID)
	require.NotNil(t, reply.Verdict)
	assert.True(t, reply.Verdict.Eligible)
	assert.Contains(t, reply.Message, "likely eligible")
	assert.Contains(t, reply.Message, "final determination")
}

func TestRespond_EligibilityMissingFields(t *testing.T) {
	extractor := stubExtractor{fields: Fields{State: strPtr("TX")}}
	responder := NewResponder(extractor, nil, nil, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "am I eligible?")
	require.NoError(t, err)

	assert.Nil(t, reply.Verdict)
	assert.Contains(t, reply.Message, "monthly income")
	assert.Contains(t, reply.Message, "household size")
}

func TestRespond_ExplicitFieldsWinOverExtraction(t *testing.T) {
	extractor := stubExtractor{fields: Fields{
		State:         strPtr("TX"),
		MonthlyIncome: f64Ptr(9000),
	}}
	responder := NewResponder(extractor, nil, nil, nil, nil, eligibility.ModeDetailed)

	explicit := Fields{MonthlyIncome: f64Ptr(1200), FamilySize: intPtr(2)}
	reply, err := responder.Respond(context.Background(), "", "do I qualify?", explicit)
	require.NoError(t, err)

	require.NotNil(t, reply.Verdict)
	assert.True(t, reply.Verdict.Eligible)
	assert.Equal(t, 1200.0, *reply.Fields.MonthlyIncome)
}

func TestRespond_FieldsAccumulateAcrossSession(t *testing.T) {
	responder := NewResponder(
		stubExtractor{fields: Fields{State: strPtr("TX"), FamilySize: intPtr(2)}},
		nil, nil, nil, nil, eligibility.ModeDetailed)

	first, err := responder.Respond(context.Background(), "", "snap for 2 people in Texas")
	require.NoError(t, err)
	assert.Nil(t, first.Verdict)

	// Second message fills in the income; prior facts persist.
	responder.extractor = stubExtractor{fields: Fields{MonthlyIncome: f64Ptr(1500)}}
	second, err := responder.Respond(context.Background(), first.SessionID, "we make 1500 a month, eligible?")
	require.NoError(t, err)
	require.NotNil(t, second.Verdict)
	assert.Equal(t, first.SessionID, second.SessionID)
}

func TestRespond_EligibilityResolvesStateFromZip(t *testing.T) {
	extractor := stubExtractor{fields: Fields{
		ZipCode:       strPtr("73301"),
		MonthlyIncome: f64Ptr(1500),
		FamilySize:    intPtr(2),
	}}
	geocoder := stubGeocoder{loc: &geocode.Location{ZipCode: "73301", State: "TX", City: "Austin"}}
	responder := NewResponder(extractor, geocoder, nil, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "do we qualify?")
	require.NoError(t, err)
	require.NotNil(t, reply.Verdict)
	require.NotNil(t, reply.Fields.State)
	assert.Equal(t, "TX", *reply.Fields.State)
}

func TestRespond_ResourcesNeedsZip(t *testing.T) {
	responder := NewResponder(stubExtractor{}, stubGeocoder{}, stubSearcher{}, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "food pantry please")
	require.NoError(t, err)
	assert.Equal(t, IntentResources, reply.Intent)
	assert.Contains(t, reply.Message, "ZIP code")
}

func TestRespond_ResourcesFound(t *testing.T) {
	extractor := stubExtractor{fields: Fields{ZipCode: strPtr("20059")}}
	geocoder := stubGeocoder{loc: &geocode.Location{ZipCode: "20059", State: "DC", City: "Washington"}}
	d := 1.2
	searcher := stubSearcher{results: &resources.Results{
		Pantries: []resources.Pantry{
			{Name: "Capital Area Food Bank", DistanceMiles: &d, Address: "4900 Puerto Rico Ave NE"},
		},
		FoodDrives: []resources.FoodDrive{
			{Name: "Community Food Drive", Date: "2025-07-12"},
		},
	}}
	responder := NewResponder(extractor, geocoder, searcher, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "pantries near me")
	require.NoError(t, err)

	require.NotNil(t, reply.Resources)
	assert.Contains(t, reply.Message, "Washington")
	assert.Contains(t, reply.Message, "Capital Area Food Bank")
	assert.Contains(t, reply.Message, "1.2 mi")
	assert.Contains(t, reply.Message, "2025-07-12")
}

func TestRespond_ResourcesBadZip(t *testing.T) {
	extractor := stubExtractor{fields: Fields{ZipCode: strPtr("99999")}}
	geocoder := stubGeocoder{err: &geocode.NotFoundError{ZipCode: "99999"}}
	responder := NewResponder(extractor, geocoder, stubSearcher{}, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "food bank nearby")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "99999")
}

func TestRespond_GeneralWithDocuments(t *testing.T) {
	docs := stubDocs{results: []knowledge.SearchResult{
		{Document: knowledge.Document{Content: "Applications are processed within 30 days."}, Score: 4},
	}}
	responder := NewResponder(stubExtractor{}, nil, nil, docs,
		fakeLLM{reply: "Most applications are processed within 30 days."}, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "how long does the application take")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, reply.Intent)
	assert.Equal(t, "Most applications are processed within 30 days.", reply.Message)
}

func TestRespond_GeneralFallbackWithoutLLM(t *testing.T) {
	responder := NewResponder(stubExtractor{}, nil, nil, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "hello there")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "household size")
}

func TestRespond_GeneralFallbackWhenLLMFails(t *testing.T) {
	docs := stubDocs{results: []knowledge.SearchResult{
		{Document: knowledge.Document{Content: "Some policy text."}, Score: 1},
	}}
	responder := NewResponder(stubExtractor{}, nil, nil, docs,
		fakeLLM{err: errors.New("quota exceeded")}, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "", "how do waivers work")
	require.NoError(t, err)
	assert.Contains(t, reply.Message, "ZIP code")
}

func TestRespond_EmptyMessage(t *testing.T) {
	responder := NewResponder(stubExtractor{}, nil, nil, nil, nil, eligibility.ModeDetailed)
	_, err := responder.Respond(context.Background(), "", "   ")
	assert.Error(t, err)
}

func TestRespond_Reset(t *testing.T) {
	responder := NewResponder(stubExtractor{fields: Fields{State: strPtr("TX")}}, nil, nil, nil, nil, eligibility.ModeDetailed)

	reply, err := responder.Respond(context.Background(), "session-1", "snap info")
	require.NoError(t, err)
	require.NotNil(t, reply.Fields.State)

	responder.Reset("session-1")
	responder.extractor = stubExtractor{}
	reply, err = responder.Respond(context.Background(), "session-1", "eligible?")
	require.NoError(t, err)
	assert.Nil(t, reply.Fields.State)
}

func TestFieldsMergeAndMissing(t *testing.T) {
	base := Fields{State: strPtr("TX")}
	merged := base.Merge(Fields{MonthlyIncome: f64Ptr(900), FamilySize: intPtr(1)})

	assert.Equal(t, "TX", *merged.State)
	assert.Equal(t, 900.0, *merged.MonthlyIncome)
	assert.Empty(t, merged.Missing())

	var empty Fields
	missing := empty.Missing()
	assert.Len(t, missing, 3)
	assert.Contains(t, strings.Join(missing, ";"), "state or ZIP code")
}
