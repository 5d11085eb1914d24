package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fitzer-app/fitzer/backend/internal/models"
)

const (
	// MsgCalculateFirst is shown instead of a plan when no snapshot has
	// been saved yet.
	MsgCalculateFirst = "Please calculate BMI on the Exercises page first. Then return and generate your diet plan."

	// FallbackItem replaces the plan when the generation call fails.
	FallbackItem = "Couldn't fetch AI plan. Please try again later."

	defaultGenerativeBaseURL = "https://generativelanguage.googleapis.com"
	generatePath             = "/v1beta/models/gemini-1.5-flash:generateContent"

	// maxPlanItems bounds the parsed plan; the prompt asks for exactly six.
	maxPlanItems = 6
)

// ErrGenerationInFlight is returned when Generate is called while a
// previous call is still running.
var ErrGenerationInFlight = errors.New("plan generation already in flight")

// leadingMarker strips bullet and numbering prefixes from plan lines.
var leadingMarker = regexp.MustCompile(`^[-•\d.)\s]+`)

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateContent struct {
	Role  string         `json:"role"`
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Planner generates diet plans from the saved snapshot. Results are
// written to the local store and, when the session is authenticated, to
// the remote API. At most one generation runs at a time.
type Planner struct {
	store   *Store
	session *Session
	api     *resty.Client
	apiKey  string

	mu       sync.Mutex
	inFlight bool
}

// NewPlanner builds a planner. The session is optional; without one (or
// when logged out) generated plans stay local.
func NewPlanner(store *Store, session *Session, apiKey string) *Planner {
	return &Planner{
		store:   store,
		session: session,
		apiKey:  apiKey,
		api: resty.New().
			SetBaseURL(defaultGenerativeBaseURL).
			SetTimeout(30 * time.Second),
	}
}

// SetBaseURL points the planner at a different generative endpoint.
func (p *Planner) SetBaseURL(baseURL string) {
	p.api.SetBaseURL(strings.TrimRight(baseURL, "/"))
}

// Generate produces a plan for the given diet type. Without a saved
// snapshot it returns the instructional message and makes no outbound
// call. Any generation failure yields the single fallback item.
func (p *Planner) Generate(ctx context.Context, dietType string) ([]string, error) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	p.inFlight = true
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	snapshot, ok := p.store.Snapshot()
	if !ok || snapshot.BMI <= 0 || snapshot.HeightCm <= 0 || snapshot.WeightKg <= 0 {
		return []string{MsgCalculateFirst}, nil
	}

	items, err := p.fetchPlan(ctx, dietType, snapshot)
	if err != nil {
		log.Printf("Plan generation failed: %v", err)
		return []string{FallbackItem}, nil
	}

	if err := p.store.SetDietPlan(&PlanRecord{DietType: dietType, Category: snapshot.Category, Items: items}); err != nil {
		log.Printf("Failed to store diet plan locally: %v", err)
	}
	if p.session != nil && p.session.Authenticated() {
		if _, err := p.session.Client().SaveDietPlan(ctx, dietType, snapshot.Category, items); err != nil {
			log.Printf("Failed to persist diet plan remotely: %v", err)
		}
	}

	return items, nil
}

func (p *Planner) fetchPlan(ctx context.Context, dietType string, snapshot *models.BMIRecord) ([]string, error) {
	prompt := BuildPrompt(dietType, snapshot)

	resp, err := p.api.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("key", p.apiKey).
		SetBody(generateRequest{
			Contents: []generateContent{
				{Role: "user", Parts: []generatePart{{Text: prompt}}},
			},
			GenerationConfig: generationConfig{Temperature: 0.7, MaxOutputTokens: 300},
		}).
		Post(generatePath)
	if err != nil {
		return nil, fmt.Errorf("generate request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("generate request: http %d", resp.StatusCode())
	}

	var out generateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode generate response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("empty generate response")
	}

	items := ParsePlanText(out.Candidates[0].Content.Parts[0].Text)
	if len(items) == 0 {
		return nil, errors.New("no plan items in response")
	}
	return items, nil
}

// BuildPrompt formats the fixed coaching prompt from a snapshot. Age 0
// renders as N/A.
func BuildPrompt(dietType string, snapshot *models.BMIRecord) string {
	age := "N/A"
	if snapshot.Age > 0 {
		age = strconv.Itoa(snapshot.Age)
	}
	return fmt.Sprintf(
		"You are a concise nutrition coach. Create a %s diet plan for a person with these details: "+
			"BMI=%s (Category=%s), Height=%s cm, Weight=%s kg, Age=%s. "+
			"Provide exactly 6 short bullet items covering breakfast, snack, lunch, pre/post-workout, and dinner. "+
			"Tailor portions to the category. Avoid medical claims.",
		dietType,
		formatNumber(snapshot.BMI),
		snapshot.Category,
		formatNumber(snapshot.HeightCm),
		formatNumber(snapshot.WeightKg),
		age,
	)
}

// ParsePlanText splits raw model output into at most six plan items,
// stripping bullet and numbering markers and dropping blank lines.
func ParsePlanText(raw string) []string {
	var items []string
	for _, line := range strings.Split(raw, "\n") {
		item := strings.TrimSpace(leadingMarker.ReplaceAllString(line, ""))
		if item == "" {
			continue
		}
		items = append(items, item)
		if len(items) == maxPlanItems {
			break
		}
	}
	return items
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
