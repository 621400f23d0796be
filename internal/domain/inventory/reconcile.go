package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

// ReportTotals suma la contribución de un reporte al stock.
// "tested" alimenta a v1 y "v9" a v9, tal como lo registran los formularios de turno.
func ReportTotals(r *entity.Report) (totalV1, totalV9 int) {
	for _, e := range r.Entries() {
		totalV1 += e.Tested
		totalV9 += e.V9
	}
	return totalV1, totalV9
}

// Reconcile descuenta del stock la contribución de un reporte eliminado.
// La resta se recorta en cero: nunca falla por sobre-descuento.
// Genera un movimiento adjustment por cada variante con total > 0 y lo agrega al historial.
func (l Ledger) Reconcile(rec *entity.StockRecord, report *entity.Report, now time.Time) []entity.Movement {
	totalV1, totalV9 := ReportTotals(report)
	totals := map[string]int{entity.VariantV1: totalV1, entity.VariantV9: totalV9}

	var out []entity.Movement
	for _, v := range entity.Variants {
		total := totals[v]
		if total <= 0 {
			continue
		}
		it := rec.Items[v]
		applied := total
		if applied > it.Quantity {
			applied = it.Quantity
		}
		at := uniqueDate(rec, now)
		mov := entity.Movement{
			ID:              uuid.New().String(),
			Date:            at,
			Type:            entity.MovementTypeAdjustment,
			Variant:         v,
			Model:           l.Models[v],
			Source:          "Reporte " + report.Header.Date,
			ResponsibleUser: entity.SystemUser,
			Observations:    fmt.Sprintf("Ajuste por eliminación del reporte %s (%s)", report.Header.Date, v),
			Quantity:        total,
			Delta:           -applied,
			ReportDate:      report.Header.Date,
		}
		it.Quantity -= applied
		it.LastUpdate = at
		it.Status = l.Status(it.Quantity)
		if it.Model == "" {
			it.Model = l.Models[v]
		}
		rec.Items[v] = it
		rec.Movements = append(rec.Movements, mov)
		out = append(out, mov)
	}
	return out
}
