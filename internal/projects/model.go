package projects

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrNameRequired    = errors.New("name and clientName are required")
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrInvalidTypology = errors.New("invalid typology")
	ErrInvalidArea     = errors.New("areas must be zero or positive")
)

const (
	StatusPending     = "PENDING"
	StatusActive      = "ACTIVE"
	StatusArchived    = "ARCHIVED"
	StatusPaused      = "PAUSED"
	StatusStopped     = "STOPPED"
	StatusExecuted    = "EXECUTED"
	StatusPreliminary = "PRELIMINARY"
)

var Statuses = []string{StatusPending, StatusActive, StatusArchived, StatusPaused, StatusStopped, StatusExecuted, StatusPreliminary}

const (
	TypologyResidencial = "RESIDENCIAL"
	TypologyComercial   = "COMERCIAL"
	TypologyIndustrial  = "INDUSTRIAL"
	TypologyCivil       = "CIVIL"
	TypologyPublica     = "PUBLICA"
)

var Typologies = []string{TypologyResidencial, TypologyComercial, TypologyIndustrial, TypologyCivil, TypologyPublica}

// CoverTypes are the roof systems offered in the project form.
var CoverTypes = []string{"Losa Solida", "Losa Prefabricada", "Estructura Metálica", "Pérgola de Madera", "Pérgola de Metal", "Otros"}

// DefaultEstimatedDays is used for progress when a project has no estimate.
const DefaultEstimatedDays = 120

const dateLayout = "2006-01-02"

// WarnAreaExceeded is returned with a saved project whose built area is
// larger than its lot.
const WarnAreaExceeded = "constructionArea is larger than landArea"

type Project struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ClientName       string    `json:"clientName"`
	LandArea         float64   `json:"landArea"`
	ConstructionArea float64   `json:"constructionArea"`
	Location         string    `json:"location"`
	NeedsProgram     string    `json:"needsProgram"`
	Status           string    `json:"status"`
	StartDate        string    `json:"startDate"`
	Typology         string    `json:"typology"`
	CoverType        string    `json:"coverType"`
	EstimatedDays    *int      `json:"estimatedDays,omitempty"`
	AIJustification  *string   `json:"aiJustification,omitempty"`
	BudgetTotal      *float64  `json:"budgetTotal,omitempty"`
	Progress         int       `json:"progress"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Input is the writable part of a project.
type Input struct {
	Name             string   `json:"name"`
	ClientName       string   `json:"clientName"`
	LandArea         float64  `json:"landArea"`
	ConstructionArea float64  `json:"constructionArea"`
	Location         string   `json:"location"`
	NeedsProgram     string   `json:"needsProgram"`
	Status           string   `json:"status"`
	StartDate        string   `json:"startDate"`
	Typology         string   `json:"typology"`
	CoverType        string   `json:"coverType"`
	EstimatedDays    *int     `json:"estimatedDays"`
	AIJustification  *string  `json:"aiJustification"`
	BudgetTotal      *float64 `json:"budgetTotal"`
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Normalize trims fields, fills defaults and validates enums. creating
// forces the status to PENDING.
func (in *Input) Normalize(creating bool, today time.Time) error {
	in.Name = strings.TrimSpace(in.Name)
	in.ClientName = strings.TrimSpace(in.ClientName)
	if in.Name == "" || in.ClientName == "" {
		return ErrNameRequired
	}
	if in.LandArea < 0 || in.ConstructionArea < 0 || math.IsNaN(in.LandArea) || math.IsNaN(in.ConstructionArea) {
		return ErrInvalidArea
	}

	if creating || in.Status == "" {
		in.Status = StatusPending
	}
	if !contains(Statuses, in.Status) {
		return ErrInvalidStatus
	}

	in.Typology = strings.ToUpper(strings.TrimSpace(in.Typology))
	if in.Typology == "" {
		in.Typology = TypologyResidencial
	}
	if !contains(Typologies, in.Typology) {
		return ErrInvalidTypology
	}

	if strings.TrimSpace(in.CoverType) == "" {
		in.CoverType = "Otros"
	}
	if strings.TrimSpace(in.StartDate) == "" {
		in.StartDate = today.Format(dateLayout)
	}
	if in.EstimatedDays == nil && creating {
		d := DefaultEstimatedDays
		in.EstimatedDays = &d
	}
	return nil
}

// Warnings lists non-blocking issues with the input.
func (in *Input) Warnings() []string {
	if in.ConstructionArea > in.LandArea {
		return []string{WarnAreaExceeded}
	}
	return nil
}

// ProgressAt returns elapsed time since the start date as a 0-100 share of
// the estimated duration.
func ProgressAt(startDate string, estimatedDays *int, now time.Time) int {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 0
	}
	days := DefaultEstimatedDays
	if estimatedDays != nil && *estimatedDays > 0 {
		days = *estimatedDays
	}
	total := time.Duration(days) * 24 * time.Hour
	pct := math.Round(float64(now.Sub(start)) / float64(total) * 100)
	return int(math.Min(math.Max(pct, 0), 100))
}
