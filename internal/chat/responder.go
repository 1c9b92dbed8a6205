package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/benefind/internal/eligibility"
	"github.com/jonathan/benefind/internal/geocode"
	"github.com/jonathan/benefind/internal/knowledge"
	"github.com/jonathan/benefind/internal/llm"
	"github.com/jonathan/benefind/internal/prompts"
	"github.com/jonathan/benefind/internal/resources"
)

// FieldExtractor extracts structured facts from a message.
type FieldExtractor interface {
	Extract(ctx context.Context, message string) (Fields, error)
}

// Geocoder resolves a ZIP code to a location.
type Geocoder interface {
	Resolve(ctx context.Context, zipCode, givenState string) (*geocode.Location, error)
}

// ResourceSearcher finds food resources around a location.
type ResourceSearcher interface {
	Search(ctx context.Context, loc *geocode.Location, radiusMiles float64) (*resources.Results, error)
}

// KnowledgeSearcher retrieves policy documents matching a query.
type KnowledgeSearcher interface {
	Search(ctx context.Context, state, query string, limit int) ([]knowledge.SearchResult, error)
}

// Reply is the assistant's answer to one message.
type Reply struct {
	SessionID string               `json:"session_id"`
	Intent    Intent               `json:"intent"`
	Message   string               `json:"message"`
	Fields    Fields               `json:"fields"`
	Verdict   *eligibility.Verdict `json:"verdict,omitempty"`
	Resources *resources.Results   `json:"resources,omitempty"`
}

// Responder drives the conversation: it accumulates facts per session and
// routes each message to an eligibility check, a resource search, or a
// policy-document answer.
type Responder struct {
	extractor FieldExtractor
	geocoder  Geocoder
	finder    ResourceSearcher
	docs      KnowledgeSearcher
	client    llm.Client
	mode      eligibility.Mode

	mu       sync.Mutex
	sessions map[string]Fields
}

// NewResponder creates a Responder. geocoder, finder, docs, and client
// may be nil; the affected intents then degrade to asking for more
// information or canned referral text.
func NewResponder(extractor FieldExtractor, geocoder Geocoder, finder ResourceSearcher, docs KnowledgeSearcher, client llm.Client, mode eligibility.Mode) *Responder {
	return &Responder{
		extractor: extractor,
		geocoder:  geocoder,
		finder:    finder,
		docs:      docs,
		client:    client,
		mode:      mode,
		sessions:  make(map[string]Fields),
	}
}

// Respond handles one message. An empty sessionID starts a new session.
// Explicit fields supplied by the caller win over anything extracted from
// the message text.
func (r *Responder) Respond(ctx context.Context, sessionID, message string, explicit ...Fields) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message is empty")
	}
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	fields := r.sessionFields(sessionID)
	if r.extractor != nil {
		// Extraction failures leave prior facts intact; the intent
		// handlers ask for whatever is still missing.
		if extracted, err := r.extractor.Extract(ctx, message); err == nil {
			fields = fields.Merge(extracted)
		}
	}
	for _, e := range explicit {
		fields = fields.Merge(e)
	}
	r.storeSessionFields(sessionID, fields)

	reply := &Reply{
		SessionID: sessionID,
		Intent:    DetectIntent(message),
		Fields:    fields,
	}

	var err error
	switch reply.Intent {
	case IntentEligibility:
		err = r.answerEligibility(ctx, reply)
	case IntentResources:
		err = r.answerResources(ctx, reply)
	default:
		err = r.answerGeneral(ctx, reply, message)
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// Reset drops the accumulated facts for a session.
func (r *Responder) Reset(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
}

func (r *Responder) sessionFields(sessionID string) Fields {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[sessionID]
}

func (r *Responder) storeSessionFields(sessionID string, fields Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[sessionID] = fields
}

func (r *Responder) answerEligibility(ctx context.Context, reply *Reply) error {
	fields := reply.Fields

	// A ZIP alone is enough; resolve it to a state first.
	if fields.State == nil && fields.ZipCode != nil && r.geocoder != nil {
		loc, err := r.geocoder.Resolve(ctx, *fields.ZipCode, "")
		if err == nil && loc.State != "" {
			fields.State = &loc.State
			reply.Fields = fields
			r.storeSessionFields(reply.SessionID, fields)
		}
	}

	if missing := fields.Missing(); len(missing) > 0 {
		reply.Message = fmt.Sprintf(
			"I can estimate your SNAP eligibility. To do that I still need your %s.",
			joinNaturally(missing))
		return nil
	}

	profile := eligibility.HouseholdProfile{
		State:         *fields.State,
		HouseholdSize: *fields.FamilySize,
		MonthlyIncome: *fields.MonthlyIncome,
	}

	estimator, err := eligibility.ForMode(r.mode)
	if err != nil {
		return err
	}
	verdict, err := estimator.Evaluate(profile)
	if err != nil {
		return err
	}

	reply.Verdict = verdict
	reply.Message = summarizeVerdict(verdict, profile)
	return nil
}

func (r *Responder) answerResources(ctx context.Context, reply *Reply) error {
	fields := reply.Fields
	if fields.ZipCode == nil {
		reply.Message = "I can look up food pantries and food drives near you. What is your 5-digit ZIP code?"
		return nil
	}
	if r.geocoder == nil || r.finder == nil {
		reply.Message = "Resource lookup is not available right now. Dial 211 for local pantry referrals."
		return nil
	}

	state := ""
	if fields.State != nil {
		state = *fields.State
	}
	loc, err := r.geocoder.Resolve(ctx, *fields.ZipCode, state)
	if err != nil {
		reply.Message = fmt.Sprintf("I could not find ZIP code %s. Could you double-check it?", *fields.ZipCode)
		return nil
	}

	results, err := r.finder.Search(ctx, loc, resources.DefaultRadiusMiles)
	if err != nil {
		return err
	}

	reply.Resources = results
	reply.Message = summarizeResources(results, loc)
	return nil
}

func (r *Responder) answerGeneral(ctx context.Context, reply *Reply, message string) error {
	state := ""
	if reply.Fields.State != nil {
		state = *reply.Fields.State
	}

	var excerpts []string
	if r.docs != nil {
		results, err := r.docs.Search(ctx, state, message, 3)
		if err == nil {
			for _, res := range results {
				excerpts = append(excerpts, snippet(res.Document.Content, 600))
			}
		}
	}

	if r.client != nil && len(excerpts) > 0 {
		template, err := prompts.Get("chat.json", "general_reply")
		if err == nil {
			prompt := prompts.Format(template, map[string]string{
				"Excerpts": strings.Join(excerpts, "\n---\n"),
				"Message":  message,
			})
			if answer, err := r.client.GenerateContent(ctx, prompt, llm.TierStandard); err == nil {
				reply.Message = strings.TrimSpace(answer)
				return nil
			}
		}
	}

	reply.Message = "I can estimate SNAP eligibility or find food pantries near you. " +
		"Tell me your household size, monthly income, and ZIP code to get started."
	return nil
}

// summarizeVerdict renders a verdict as a short conversational answer.
func summarizeVerdict(verdict *eligibility.Verdict, profile eligibility.HouseholdProfile) string {
	var sb strings.Builder
	if verdict.Eligible {
		sb.WriteString(fmt.Sprintf(
			"Good news: a household of %d in %s with $%.0f monthly income looks likely eligible for SNAP. ",
			profile.HouseholdSize, profile.State, profile.MonthlyIncome))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Based on what you shared, a household of %d in %s with $%.0f monthly income does not appear eligible. ",
			profile.HouseholdSize, profile.State, profile.MonthlyIncome))
		sb.WriteString(verdict.Reasoning + " ")
	}
	if verdict.Benefit != nil && verdict.Benefit.EstimatedMonthlyBenefit > 0 {
		sb.WriteString(fmt.Sprintf("Estimated benefit: about $%.0f per month. ", verdict.Benefit.EstimatedMonthlyBenefit))
	}
	sb.WriteString("Only your state agency can make a final determination.")
	return sb.String()
}

// summarizeResources renders the top pantry hits as a short answer.
func summarizeResources(results *resources.Results, loc *geocode.Location) string {
	where := loc.City
	if where == "" {
		where = loc.ZipCode
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Here is what I found near %s:\n", where))
	for i, p := range results.Pantries {
		if i == 3 {
			break
		}
		sb.WriteString("- " + p.Name)
		if p.DistanceMiles != nil {
			sb.WriteString(fmt.Sprintf(" (%.1f mi)", *p.DistanceMiles))
		}
		if p.Address != "" {
			sb.WriteString(", " + p.Address)
		}
		sb.WriteString("\n")
	}
	if len(results.FoodDrives) > 0 {
		drive := results.FoodDrives[0]
		sb.WriteString(fmt.Sprintf("Upcoming: %s on %s.", drive.Name, drive.Date))
	}
	return strings.TrimSpace(sb.String())
}

// snippet truncates text at a rune boundary.
func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// joinNaturally joins items as "a, b, and c".
func joinNaturally(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
