package finance

import (
	"errors"
	"math"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrInvalidType        = errors.New("type must be INCOME or EXPENSE")
	ErrProjectRequired    = errors.New("projectId is required")
	ErrUnknownProject     = errors.New("projectId is not a valid project id")
	ErrDescriptionMissing = errors.New("description is required")
	ErrCostInvalid        = errors.New("cost must be greater than zero")
	ErrCategoryMissing    = errors.New("category is required")
	ErrQuantityInvalid    = errors.New("quantity must be greater than zero")
	ErrInvalidDate        = errors.New("dates must be YYYY-MM-DD")
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

const DateLayout = "2006-01-02"

// DefaultUnit is used when a transaction is a plain amount.
const DefaultUnit = "Quetzal"

var Units = []string{
	"Quetzal", "m3", "m2", "ml", "saco", "libra", "varilla", "quintal", "unidad", "global", "pie tabla", "litro", "viaje", "hora",
}

var ExpenseCategories = []string{
	"Materiales", "Planilla", "Equipo/Herramienta", "Sub-contrato", "Administrativo", "Personales",
}

var IncomeCategories = []string{
	"Aporte (Cliente)", "Agrimensura", "Avaluó", "Planificación", "Ante Proyecto", "Otros",
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishMonth returns the lower-case Spanish name of t's month.
func SpanishMonth(t time.Time) string {
	return spanishMonths[t.Month()-1]
}

type Transaction struct {
	ID          string  `json:"id"`
	ProjectID   string  `json:"projectId"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	Cost        float64 `json:"cost"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Month       string  `json:"month"`
	Provider    *string `json:"provider,omitempty"`
	RentalStart *string `json:"rentalStart,omitempty"`
	RentalEnd   *string `json:"rentalEnd,omitempty"`
}

// Amount is cost times quantity.
func (t Transaction) Amount() float64 {
	return amount(t).InexactFloat64()
}

// Input is a new transaction as sent by the back office.
type Input struct {
	ProjectID   string   `json:"projectId"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Cost        float64  `json:"cost"`
	Category    string   `json:"category"`
	Date        string   `json:"date"`
	Provider    string   `json:"provider"`
	RentalStart string   `json:"rentalStart"`
	RentalEnd   string   `json:"rentalEnd"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func validDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Build validates the input and returns the transaction to store. today
// fills a missing date.
func (in Input) Build(today time.Time) (Transaction, error) {
	t := Transaction{
		ProjectID:   strings.TrimSpace(in.ProjectID),
		Type:        strings.ToUpper(strings.TrimSpace(in.Type)),
		Description: strings.TrimSpace(in.Description),
		Quantity:    1,
		Unit:        strings.TrimSpace(in.Unit),
		Cost:        in.Cost,
		Category:    strings.TrimSpace(in.Category),
		Date:        strings.TrimSpace(in.Date),
		Provider:    optional(in.Provider),
		RentalStart: optional(in.RentalStart),
		RentalEnd:   optional(in.RentalEnd),
	}

	if t.Type != TypeIncome && t.Type != TypeExpense {
		return t, ErrInvalidType
	}
	if t.ProjectID == "" {
		return t, ErrProjectRequired
	}
	if t.Description == "" {
		return t, ErrDescriptionMissing
	}
	if !(t.Cost > 0) || math.IsInf(t.Cost, 0) {
		return t, ErrCostInvalid
	}
	if t.Category == "" {
		return t, ErrCategoryMissing
	}
	if in.Quantity != nil {
		if !(*in.Quantity > 0) || math.IsInf(*in.Quantity, 0) {
			return t, ErrQuantityInvalid
		}
		t.Quantity = *in.Quantity
	}
	if t.Unit == "" {
		t.Unit = DefaultUnit
	}
	if t.Date == "" {
		t.Date = today.Format(DateLayout)
	}
	if !validDate(t.Date) {
		return t, ErrInvalidDate
	}
	for _, d := range []*string{t.RentalStart, t.RentalEnd} {
		if d != nil && !validDate(*d) {
			return t, ErrInvalidDate
		}
	}

	day, _ := time.Parse(DateLayout, t.Date)
	t.Month = SpanishMonth(day)
	return t, nil
}
