package budgets

import (
	"github.com/shopspring/decimal"

	"github.com/mys-constructora/backoffice/internal/projects"
)

// CatalogItem is a default line of a typology budget.
type CatalogItem struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

var (
	IndirectRate = decimal.RequireFromString("0.15")
	UtilityRate  = decimal.RequireFromString("0.10")
	TaxRate      = decimal.RequireFromString("0.12")
)

// Catalog lists the default budget lines per project typology, in display order.
var Catalog = map[string][]CatalogItem{
	projects.TypologyResidencial: {
		{"Limpieza y Chapeo", "m2", "Preliminares", 15},
		{"Trazo y Estaqueo", "m2", "Preliminares", 25},
		{"Excavación Cimiento Corrido", "m3", "Cimentación", 85},
		{"Cimiento Corrido 0.40x0.20", "ml", "Cimentación", 350},
		{"Solera de Humedad", "ml", "Cimentación", 210},
		{"Levantado de Block 0.14 Poma", "m2", "Muros", 145},
		{"Losa Prefabricada", "m2", "Cubierta", 380},
		{"Piso Cerámico Nacional", "m2", "Acabados", 175},
	},
	projects.TypologyComercial: {
		{"Demolición de Estructuras", "m3", "Demolición", 120},
		{"Columnas de Acero Estructural", "lb", "Estructura", 12},
		{"Losa de Entrepiso (Steel Deck)", "m2", "Entrepiso", 550},
		{"Fachada Vidrio Templado", "m2", "Fachada", 1400},
	},
	projects.TypologyIndustrial: {
		{"Pavimento Concreto 4000 PSI", "m2", "Pisos", 450},
		{"Estructura Nave Industrial", "kg", "Estructura", 25},
		{"Lámina Aluzinc Prepintada", "m2", "Cubierta", 145},
	},
	projects.TypologyCivil: {
		{"Base Granular Triturada", "m3", "Mov. Tierras", 280},
		{"Asfalto Caliente 3\"", "m2", "Pavimento", 195},
		{"Bordillo de Concreto", "ml", "Drenaje", 145},
	},
	projects.TypologyPublica: {
		{"Cimentación Edificios Públicos", "m3", "Cimentación", 3200},
		{"Baterías de Baños Institucionales", "global", "Instalaciones", 45000},
	},
}
