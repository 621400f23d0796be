// Package excel exporta el historial de movimientos de stock a XLSX.
package excel

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

var _ inventory.MovementExporter = (*MovementExporter)(nil)

// SheetName hoja donde se escriben los movimientos.
const SheetName = "Movimientos"

var headers = []string{
	"Fecha", "Tipo", "Variante", "Modelo", "Cantidad", "Cambio",
	"Origen", "Destino", "Responsable", "Observaciones", "Reporte",
}

// MovementExporter genera un libro XLSX con una fila por movimiento en el orden recibido.
type MovementExporter struct{}

// NewMovementExporter construye el exportador.
func NewMovementExporter() *MovementExporter { return &MovementExporter{} }

// ExportMovements escribe encabezados en la fila 1 y los movimientos desde la fila 2.
func (e *MovementExporter) ExportMovements(_ context.Context, movements []entity.Movement) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("excel: encabezados: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo encabezados: %w", err)
	}

	for i, m := range movements {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			m.Date.UTC().Format(time.RFC3339),
			m.Type,
			m.Variant,
			m.Model,
			m.Quantity,
			m.Delta,
			m.Source,
			m.Destination,
			m.ResponsibleUser,
			m.Observations,
			m.ReportDate,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(SheetName, "A", "A", 24)
	_ = f.SetColWidth(SheetName, "J", "J", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
