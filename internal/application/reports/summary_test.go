package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

func TestRate_RedondeaADosDecimales(t *testing.T) {
	assert.Equal(t, "66.67", rate(2, 3).String())
	assert.True(t, rate(5, 0).IsZero())
}

func TestSummarize_SinOperadores(t *testing.T) {
	s := Summarize(&entity.Report{Header: entity.ReportHeader{Date: "2026-03-01"}})

	assert.Zero(t, s.Total.Operators)
	assert.True(t, s.Total.ApprovalRate.IsZero())
	assert.Equal(t, 0, s.StockImpact[entity.VariantV1])
}
