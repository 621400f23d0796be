package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/linea-stock-api/internal/application/reports"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/pdf"
)

func TestGenerateReportPDF(t *testing.T) {
	r := &entity.Report{
		Header: entity.ReportHeader{Date: "2026-03-01", Supervisor: "Laura", Unit: "Línea 1", Shift: entity.ShiftMorning},
		Morning: []entity.OperatorEntry{
			{Name: "Ana", Tested: 1200, Approved: 1100, Rejected: 100, V9: 4},
		},
	}

	out, err := pdf.NewReportPDFGenerator().GenerateReportPDF(context.Background(), r, reports.Summarize(r))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
