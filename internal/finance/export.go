package finance

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	SheetTransactions = "Transacciones"
	SheetSummary      = "Resumen"
)

var exportHeader = []any{
	"Fecha", "Mes", "Tipo", "Descripción", "Categoría", "Cantidad", "Unidad", "Costo", "Monto", "Proveedor", "Inicio alquiler", "Fin alquiler",
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// WriteWorkbook writes the transactions and their totals as an xlsx file.
func WriteWorkbook(w io.Writer, txs []Transaction) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetTransactions, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, t := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			t.Date, t.Month, t.Type, t.Description, t.Category, t.Quantity, t.Unit, t.Cost, t.Amount(),
			deref(t.Provider), deref(t.RentalStart), deref(t.RentalEnd),
		}
		if err := f.SetSheetRow(SheetTransactions, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	m := ComputeMetrics(txs)
	summary := [][]any{
		{"Ingresos", m.Income},
		{"Egresos", m.Expense},
		{"Balance", m.Balance},
		{"Transacciones", len(txs)},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetSummary, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
