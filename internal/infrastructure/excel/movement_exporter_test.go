package excel_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/excel"
)

func TestExportMovements_EscribeEncabezadosYFilas(t *testing.T) {
	date := time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC)
	movs := []entity.Movement{
		{Date: date, Type: entity.MovementTypeEntry, Variant: entity.VariantV1, Model: "V1", Quantity: 5, Delta: 5, ResponsibleUser: "Ana"},
		{Date: date.Add(-time.Hour), Type: entity.MovementTypeAdjustment, Variant: entity.VariantV9, Model: "V9", Quantity: 3, Delta: -2, ReportDate: "2026-02-28"},
	}

	out, err := excel.NewMovementExporter().ExportMovements(context.Background(), movs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Fecha", rows[0][0])
	assert.Equal(t, "2026-03-01T08:30:00Z", rows[1][0])
	assert.Equal(t, "entry", rows[1][1])
	assert.Equal(t, "5", rows[1][4])
	assert.Equal(t, "-2", rows[2][5])
	assert.Equal(t, "2026-02-28", rows[2][10])
}

func TestExportMovements_SinMovimientos(t *testing.T) {
	out, err := excel.NewMovementExporter().ExportMovements(context.Background(), nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(excel.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
