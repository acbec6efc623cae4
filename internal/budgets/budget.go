package budgets

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mys-constructora/backoffice/internal/projects"
)

var (
	ErrUnknownTypology = errors.New("unknown typology")
	ErrInvalidItem     = errors.New("quantity and unitPrice must be zero or positive")
)

type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
	Total     float64 `json:"total"`
}

type Budget struct {
	Typology     string  `json:"typology,omitempty"`
	Items        []Item  `json:"items"`
	DirectCost   float64 `json:"directCost"`
	IndirectCost float64 `json:"indirectCost"`
	Utility      float64 `json:"utility"`
	Taxes        float64 `json:"taxes"`
	GrandTotal   float64 `json:"grandTotal"`
}

// AutoQuantity picks the starting quantity of a catalog line from the
// project's areas: square-metre lines take the built area, site clearing
// takes the lot area.
func AutoQuantity(item CatalogItem, p *projects.Project) float64 {
	if p == nil {
		return 0
	}
	if item.Unit == "m2" {
		return p.ConstructionArea
	}
	if strings.Contains(strings.ToLower(item.Name), "limpieza") {
		return p.LandArea
	}
	return 0
}

// Seed builds the default budget of typology for p. An empty typology uses
// the project's own.
func Seed(p *projects.Project, typology string) (*Budget, error) {
	typology = strings.ToUpper(strings.TrimSpace(typology))
	if typology == "" && p != nil {
		typology = p.Typology
	}
	lines, ok := Catalog[typology]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTypology, typology)
	}

	items := make([]Item, 0, len(lines))
	for idx, line := range lines {
		items = append(items, Item{
			ID:        fmt.Sprintf("%s-%d", typology, idx),
			Name:      line.Name,
			Category:  line.Category,
			Unit:      line.Unit,
			UnitPrice: line.Price,
			Quantity:  AutoQuantity(line, p),
		})
	}
	b, err := Compute(items)
	if err != nil {
		return nil, err
	}
	b.Typology = typology
	return b, nil
}

func valid(f float64) bool {
	return f >= 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Compute recomputes every line total and the budget summary.
func Compute(items []Item) (*Budget, error) {
	out := make([]Item, len(items))
	direct := decimal.Zero
	for i, it := range items {
		if !valid(it.Quantity) || !valid(it.UnitPrice) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidItem, it.Name)
		}
		total := decimal.NewFromFloat(it.UnitPrice).Mul(decimal.NewFromFloat(it.Quantity))
		it.Total = money(total)
		out[i] = it
		direct = direct.Add(total)
	}

	indirect := direct.Mul(IndirectRate)
	utility := direct.Mul(UtilityRate)
	taxes := direct.Add(indirect).Add(utility).Mul(TaxRate)
	grand := direct.Add(indirect).Add(utility).Add(taxes)

	return &Budget{
		Items:        out,
		DirectCost:   money(direct),
		IndirectCost: money(indirect),
		Utility:      money(utility),
		Taxes:        money(taxes),
		GrandTotal:   money(grand),
	}, nil
}

// Active returns the lines with a positive total.
func Active(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Total > 0 {
			out = append(out, it)
		}
	}
	return out
}
