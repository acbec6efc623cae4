package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mys-constructora/backoffice/internal/budgets"
	"github.com/mys-constructora/backoffice/internal/finance"
	"github.com/mys-constructora/backoffice/internal/gemini"
	"github.com/mys-constructora/backoffice/internal/projects"
)

var (
	ErrBadAnswer      = errors.New("model answer is not the expected JSON")
	ErrNoBudgetItems  = errors.New("budget has no lines with quantities to analyze")
	ErrMessageMissing = errors.New("message is required")
)

type DashboardSource interface {
	Build(ctx context.Context) (*finance.Dashboard, error)
}

type FinanceSource interface {
	List(ctx context.Context, projectID, q string) ([]finance.Transaction, error)
	Metrics(ctx context.Context, projectID string) (finance.Metrics, error)
}

type ProjectSource interface {
	Get(ctx context.Context, id string) (*projects.Project, error)
	List(ctx context.Context, f projects.Filter) ([]projects.Project, error)
}

// Service builds prompts from back-office data and asks the model. A nil
// generator makes every call fail with gemini.ErrNotConfigured.
type Service struct {
	gen       gemini.Generator
	dashboard DashboardSource
	finance   FinanceSource
	projects  ProjectSource
}

func NewService(gen gemini.Generator, dashboard DashboardSource, fin FinanceSource, projectSrc ProjectSource) *Service {
	return &Service{gen: gen, dashboard: dashboard, finance: fin, projects: projectSrc}
}

type Milestone struct {
	Name            string  `json:"name"`
	StartPercent    float64 `json:"startPercent"`
	DurationPercent float64 `json:"durationPercent"`
	Description     string  `json:"description"`
	Color           string  `json:"color"`
	IsCritical      bool    `json:"isCritical"`
}

type Phase struct {
	Name         string  `json:"name"`
	DirectCost   float64 `json:"directCost"`
	IndirectCost float64 `json:"indirectCost"`
	DurationDays float64 `json:"durationDays"`
	Description  string  `json:"description"`
}

type PhaseEstimate struct {
	Phases                 []Phase `json:"phases"`
	TotalEstimatedDuration float64 `json:"totalEstimatedDuration"`
	AISummary              string  `json:"aiSummary"`
}

type PurchasingInput struct {
	Message string `json:"message"`
	Specs   string `json:"specs"`
	Image   string `json:"image"`
}

// PhasesInput optionally carries edited budget lines. Without items the
// project's catalog budget is used.
type PhasesInput struct {
	Typology string         `json:"typology"`
	Items    []budgets.Item `json:"items"`
}

func (s *Service) ask(ctx context.Context, req gemini.Request) (string, error) {
	if s.gen == nil {
		return "", gemini.ErrNotConfigured
	}
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, gemini.ErrNotConfigured) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", gemini.ErrUpstream, err)
	}
	return res.TextOrEmpty(), nil
}

// decodeAnswer parses a JSON answer, tolerating a fenced code block.
func decodeAnswer(text string, v any) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadAnswer, err)
	}
	return nil
}

func (s *Service) Briefing(ctx context.Context) (string, error) {
	d, err := s.dashboard.Build(ctx)
	if err != nil {
		return "", err
	}
	return s.ask(ctx, briefingPrompt(d))
}

func (s *Service) Report(ctx context.Context) (string, error) {
	d, err := s.dashboard.Build(ctx)
	if err != nil {
		return "", err
	}
	return s.ask(ctx, reportPrompt(d))
}

// FinanceAnalysis reviews one project's figures, or all of them when
// projectID is empty.
func (s *Service) FinanceAnalysis(ctx context.Context, projectID string) (string, error) {
	contextName := GlobalContext
	if projectID != "" {
		p, err := s.projects.Get(ctx, projectID)
		if err != nil {
			return "", err
		}
		contextName = p.Name
	}
	m, err := s.finance.Metrics(ctx, projectID)
	if err != nil {
		return "", err
	}
	return s.ask(ctx, financePrompt(contextName, m))
}

// CashFlow asks for a seven day forecast and returns the prediction array as sent by the model.
func (s *Service) CashFlow(ctx context.Context, projectID string) (json.RawMessage, error) {
	txs, err := s.finance.List(ctx, projectID, "")
	if err != nil {
		return nil, err
	}
	text, err := s.ask(ctx, cashFlowPrompt(txs))
	if err != nil {
		return nil, err
	}
	var out struct {
		Prediction json.RawMessage `json:"prediction"`
	}
	if err := decodeAnswer(text, &out); err != nil {
		return nil, err
	}
	if len(out.Prediction) == 0 || out.Prediction[0] != '[' {
		return nil, fmt.Errorf("%w: missing prediction array", ErrBadAnswer)
	}
	return out.Prediction, nil
}

func (s *Service) Timeline(ctx context.Context, projectID string) ([]Milestone, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	text, err := s.ask(ctx, timelinePrompt(p))
	if err != nil {
		return nil, err
	}
	var out struct {
		Milestones []Milestone `json:"milestones"`
	}
	if err := decodeAnswer(text, &out); err != nil {
		return nil, err
	}
	if out.Milestones == nil {
		out.Milestones = []Milestone{}
	}
	return out.Milestones, nil
}

func (s *Service) Phases(ctx context.Context, projectID string, in PhasesInput) (*PhaseEstimate, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var b *budgets.Budget
	if len(in.Items) > 0 {
		b, err = budgets.Compute(in.Items)
	} else {
		b, err = budgets.Seed(p, in.Typology)
	}
	if err != nil {
		return nil, err
	}
	active := budgets.Active(b.Items)
	if len(active) == 0 {
		return nil, ErrNoBudgetItems
	}

	text, err := s.ask(ctx, phasesPrompt(p.Name, active))
	if err != nil {
		return nil, err
	}
	var out PhaseEstimate
	if err := decodeAnswer(text, &out); err != nil {
		return nil, err
	}
	if out.Phases == nil {
		out.Phases = []Phase{}
	}
	return &out, nil
}

func (s *Service) Purchasing(ctx context.Context, in PurchasingInput) (string, error) {
	if strings.TrimSpace(in.Message) == "" {
		return "", ErrMessageMissing
	}
	var image *gemini.InlineData
	if in.Image != "" {
		var err error
		if image, err = gemini.ParseDataURL(in.Image); err != nil {
			return "", err
		}
	}
	txs, err := s.finance.List(ctx, "", "")
	if err != nil {
		return "", err
	}
	list, err := s.projects.List(ctx, projects.Filter{})
	if err != nil {
		return "", err
	}
	return s.ask(ctx, purchasingPrompt(in, txs, list, image))
}
