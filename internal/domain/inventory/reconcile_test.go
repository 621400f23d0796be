package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/inventory"
)

func report(date string, morning, afternoon []entity.OperatorEntry) *entity.Report {
	return &entity.Report{
		Header:    entity.ReportHeader{Date: date, Supervisor: "Laura", Unit: "Línea 1", Shift: entity.ShiftMorning},
		Morning:   morning,
		Afternoon: afternoon,
	}
}

func TestReportTotals_TestedYV9(t *testing.T) {
	r := report("2026-03-01",
		[]entity.OperatorEntry{{Name: "A", Tested: 3, V9: 1, Approved: 99}},
		[]entity.OperatorEntry{{Name: "B", Tested: 1, V9: 1}},
	)

	v1, v9 := inventory.ReportTotals(r)
	assert.Equal(t, 4, v1)
	assert.Equal(t, 2, v9)
}

func TestReconcile_DescuentaYGeneraAjustes(t *testing.T) {
	l := newLedger()
	rec := seeded(t, 10, 5)
	r := report("2026-03-01",
		[]entity.OperatorEntry{{Name: "A", Tested: 3, V9: 1}},
		[]entity.OperatorEntry{{Name: "B", Tested: 1, V9: 1}},
	)

	movs := l.Reconcile(rec, r, t0)

	assert.Equal(t, 6, rec.Items[entity.VariantV1].Quantity)
	assert.Equal(t, 3, rec.Items[entity.VariantV9].Quantity)
	require.Len(t, movs, 2)
	assert.Len(t, rec.Movements, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeAdjustment, m.Type)
		assert.Equal(t, entity.SystemUser, m.ResponsibleUser)
		assert.Equal(t, "2026-03-01", m.ReportDate)
		assert.NotEmpty(t, m.ID)
	}
	assert.Equal(t, 4, movs[0].Quantity)
	assert.Equal(t, -4, movs[0].Delta)
	assert.False(t, movs[0].Date.Equal(movs[1].Date))
}

func TestReconcile_RecortaEnCero(t *testing.T) {
	l := newLedger()
	rec := seeded(t, 2, 7)
	r := report("2026-03-02", []entity.OperatorEntry{{Name: "A", Tested: 5}}, nil)

	movs := l.Reconcile(rec, r, t0)

	assert.Zero(t, rec.Items[entity.VariantV1].Quantity)
	assert.Equal(t, entity.StockStatusOutOfStock, rec.Items[entity.VariantV1].Status)
	assert.Equal(t, 7, rec.Items[entity.VariantV9].Quantity, "v9 sin contribución no cambia")
	require.Len(t, movs, 1)
	assert.Equal(t, 5, movs[0].Quantity, "la cantidad registra el total del reporte")
	assert.Equal(t, -2, movs[0].Delta, "el delta registra lo efectivamente descontado")
}

func TestReconcile_ReporteVacioNoGeneraMovimientos(t *testing.T) {
	l := newLedger()
	rec := seeded(t, 4, 4)

	movs := l.Reconcile(rec, report("2026-03-03", nil, nil), t0)

	assert.Empty(t, movs)
	assert.Empty(t, rec.Movements)
	assert.Equal(t, 4, rec.Items[entity.VariantV1].Quantity)
}
