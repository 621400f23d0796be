package reports

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/linea-stock-api/internal/domain/inventory"
)

var hundred = decimal.NewFromInt(100)

// Summarize agrega los conteos por turno y del día. Las tasas son porcentaje sobre "tested"
// con dos decimales; cero cuando no hubo equipos probados.
func Summarize(r *entity.Report) *dto.ReportSummaryResponse {
	morning := summarizeShift(r.Morning)
	afternoon := summarizeShift(r.Afternoon)
	total := summarizeShift(r.Entries())
	totalV1, totalV9 := domaininv.ReportTotals(r)

	return &dto.ReportSummaryResponse{
		Date:       r.Header.Date,
		Supervisor: r.Header.Supervisor,
		Unit:       r.Header.Unit,
		Shift:      r.Header.Shift,
		Morning:    morning,
		Afternoon:  afternoon,
		Total:      total,
		StockImpact: map[string]int{
			entity.VariantV1: totalV1,
			entity.VariantV9: totalV9,
		},
	}
}

func summarizeShift(entries []entity.OperatorEntry) dto.ShiftSummary {
	s := dto.ShiftSummary{Operators: len(entries)}
	for _, e := range entries {
		s.Tested += e.Tested
		s.Approved += e.Approved
		s.Rejected += e.Rejected
		s.Cleaned += e.Cleaned
		s.Resetados += e.Resetados
		s.V9 += e.V9
	}
	s.ApprovalRate = rate(s.Approved, s.Tested)
	s.RejectionRate = rate(s.Rejected, s.Tested)
	return s
}

func rate(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Div(decimal.NewFromInt(int64(whole))).
		Mul(hundred).
		Round(2)
}
