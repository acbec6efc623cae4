package insights

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mys-constructora/backoffice/internal/budgets"
	"github.com/mys-constructora/backoffice/internal/finance"
	"github.com/mys-constructora/backoffice/internal/gemini"
	"github.com/mys-constructora/backoffice/internal/projects"
)

// GlobalContext names the consolidated view in finance prompts.
const GlobalContext = "GLOBAL CONSOLIDADO"

const (
	cashFlowSample    = 15
	purchasingHistory = 50
)

var jsonConfig = &gemini.Config{ResponseMimeType: "application/json"}

func q(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func briefingPrompt(d *finance.Dashboard) gemini.Request {
	p := fmt.Sprintf("Actúa como CEO de M&S. Genera un resumen ejecutivo de 2 párrafos basado en: Q%s utilidad, %d obras activas, %d empleados. Usa tono formal.",
		q(d.Profit), d.ActiveProjects, d.TotalEmployees)
	return gemini.TextPrompt(gemini.ModelFlash, p, nil)
}

func financePrompt(contextName string, m finance.Metrics) gemini.Request {
	p := fmt.Sprintf("Analiza las finanzas de %s: Ingresos Q%s, Egresos Q%s, Balance Q%s.\n"+
		"Proporciona un dictamen ejecutivo en Markdown resaltando riesgos y oportunidades de ahorro.",
		contextName, q(m.Income), q(m.Expense), q(m.Balance))
	return gemini.TextPrompt(gemini.ModelPro, p, nil)
}

func cashFlowPrompt(txs []finance.Transaction) gemini.Request {
	if len(txs) > cashFlowSample {
		txs = txs[:cashFlowSample]
	}
	p := fmt.Sprintf("Predice el flujo de caja para los próximos 7 días basado en este historial: %s.\n"+
		"Responde estrictamente en JSON con un objeto que contenga un array 'prediction'.", mustJSON(txs))
	return gemini.TextPrompt(gemini.ModelFlash, p, jsonConfig)
}

func reportPrompt(d *finance.Dashboard) gemini.Request {
	p := fmt.Sprintf(`Actúa como Director General de M&S Constructora.
Analiza los siguientes datos consolidados y genera un REPORTE EJECUTIVO de 3 párrafos.

DATOS:
- Ingresos Totales: Q%s
- Gastos Totales: Q%s
- Utilidad Bruta: Q%s
- Proyectos Totales: %d
- Personal en Cuadrilla: %d

Estructura:
1. Diagnóstico de Salud Financiera.
2. Análisis de Capacidad Operativa.
3. Recomendación Estratégica para el próximo trimestre.
Responde en Markdown profesional.`, q(d.Income), q(d.Expense), q(d.Profit), d.TotalProjects, d.TotalEmployees)
	return gemini.TextPrompt(gemini.ModelFlash, p, nil)
}

func timelinePrompt(p *projects.Project) gemini.Request {
	text := fmt.Sprintf(`Senior Construction Manager Simulation:
Analiza el proyecto %q de tipología %s con %sm2 de construcción sobre un terreno de %sm2.
Genera un cronograma técnico maestro de 8 hitos en JSON para un diagrama de Gantt.

Esquema JSON:
{
  "milestones": [
    { "name": "string", "startPercent": number, "durationPercent": number, "description": "string", "color": "hex_color", "isCritical": boolean }
  ]
}`, p.Name, p.Typology, q(p.ConstructionArea), q(p.LandArea))
	return gemini.TextPrompt(gemini.ModelFlash, text, jsonConfig)
}

func phasesPrompt(projectName string, items []budgets.Item) gemini.Request {
	text := fmt.Sprintf(`Actúa como un Senior Estimator de construcción. Analiza estos renglones: %s.
Divide el proyecto %q en fases lógicas (Cimentación, Estructura, Muros, Acabados, etc.).
Para cada fase, calcula:
1. Costo Directo (suma de renglones asignados).
2. Costo Indirecto (15%%).
3. Duración estimada en días calendario.
4. Breve justificación técnica.

Responde exclusivamente en JSON con esta estructura:
{
  "phases": [
    { "name": "string", "directCost": number, "indirectCost": number, "durationDays": number, "description": "string" }
  ],
  "totalEstimatedDuration": number,
  "aiSummary": "string"
}`, mustJSON(items), projectName)
	return gemini.TextPrompt(gemini.ModelFlash, text, jsonConfig)
}

const purchasingInstruction = `Eres el "Logistics Intelligence Director" de M&S Constructora.
Tu objetivo es minimizar el costo de adquisición (COA) y garantizar el flujo de materiales.
REGLAS DE OPERACIÓN:
- Eres proactivo: No esperes a que te pidan ahorrar, busca el ahorro en cada palabra del usuario.
- Eres territorial: Conoces a la perfección el mercado de Guatemala (Construfácil, EPA, Cemaco, Ferretería El Globo, Aceros de Guatemala, Progreso).
- Eres analítico: Usas los datos históricos proporcionados para cuestionar pedidos ineficientes.
- Eres ejecutivo: Tu lenguaje es directo, serio y enfocado en resultados financieros.
Usa Markdown profesional con tablas comparativas si es posible.`

type purchaseRecord struct {
	Desc     string  `json:"desc"`
	Price    float64 `json:"precio"`
	Unit     string  `json:"unidad"`
	Category string  `json:"cat"`
	Date     string  `json:"fecha"`
	Provider string  `json:"prov"`
}

type projectBrief struct {
	Name     string `json:"n"`
	Typology string `json:"t"`
	Status   string `json:"s"`
}

func purchasingPrompt(in PurchasingInput, txs []finance.Transaction, list []projects.Project, image *gemini.InlineData) gemini.Request {
	if len(txs) > purchasingHistory {
		txs = txs[:purchasingHistory]
	}
	history := make([]purchaseRecord, 0, len(txs))
	for _, t := range txs {
		prov := "N/A"
		if t.Provider != nil && *t.Provider != "" {
			prov = *t.Provider
		}
		history = append(history, purchaseRecord{Desc: t.Description, Price: t.Cost, Unit: t.Unit, Category: t.Category, Date: t.Date, Provider: prov})
	}
	briefs := make([]projectBrief, 0, len(list))
	for _, p := range list {
		briefs = append(briefs, projectBrief{Name: p.Name, Typology: p.Typology, Status: p.Status})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CONSULTA DE REQUISICIÓN: %q", in.Message)
	if specs := strings.TrimSpace(in.Specs); specs != "" {
		fmt.Fprintf(&sb, "\n\nDATOS TÉCNICOS ADJUNTOS:\n%s", specs)
	}
	fmt.Fprintf(&sb, `

--- CONTEXTO OPERATIVO M&S ---
HISTORIAL DE COMPRAS (Últimas 50): %s
PROYECTOS ACTIVOS: %s

TAREA CRÍTICA:
1. Usa Google Search para encontrar el precio MÁS BAJO actual en Guatemala para los insumos mencionados.
2. Compara el precio de mercado vs. el precio histórico de la empresa.
3. Si el precio actual es >10%% mayor al histórico, alerta sobre SOBRECOSTO y sugiere proveedores alternos.
4. Si el precio actual es <10%% menor al histórico, sugiere COMPRA POR VOLUMEN inmediata.
5. Identifica riesgos de desabastecimiento (ej. huelgas, escasez de clinker para cemento, fluctuación del acero).
6. Responde con secciones: [ANÁLISIS DE MERCADO], [COMPARATIVA HISTÓRICA], [ALERTAS DE RIESGO] y [RECOMENDACIÓN ESTRATÉGICA].`,
		mustJSON(history), mustJSON(briefs))

	parts := []gemini.Part{{Text: sb.String()}}
	if image != nil {
		parts = append(parts, gemini.Part{InlineData: image})
	}
	return gemini.Request{
		Model: gemini.ModelPro,
		Parts: parts,
		Config: &gemini.Config{
			SystemInstruction: purchasingInstruction,
			Tools:             []gemini.Tool{gemini.GoogleSearchTool()},
		},
	}
}
