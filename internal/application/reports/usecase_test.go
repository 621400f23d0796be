package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/application/reports"
	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/infrastructure/memory"
)

type stubPDF struct{}

func (stubPDF) GenerateReportPDF(context.Context, *entity.Report, *dto.ReportSummaryResponse) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func newReportUC() *reports.ReportUseCase {
	return reports.NewReportUseCase(memory.NewStore().ReportRepository(), stubPDF{})
}

func request(date, shift string) dto.ReportRequest {
	return dto.ReportRequest{
		Header: dto.ReportHeaderInput{Date: date, Supervisor: "Laura", Unit: "Línea 1", Shift: shift},
		Morning: []dto.OperatorEntryInput{
			{Name: "Ana", Tested: 8, Approved: 6, Rejected: 2, V9: 1},
		},
		Afternoon: []dto.OperatorEntryInput{
			{Name: "Luis", Tested: 4, Approved: 3, Rejected: 1, Cleaned: 2},
		},
	}
}

func TestCreate_DuplicadoEsConflicto(t *testing.T) {
	ctx := context.Background()
	uc := newReportUC()

	_, err := uc.Create(ctx, request("2026-03-01", entity.ShiftMorning))
	require.NoError(t, err)

	_, err = uc.Create(ctx, request("2026-03-01", entity.ShiftAfternoon))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newReportUC()

	_, err := uc.Create(context.Background(), request("01/03/2026", entity.ShiftMorning))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), request("2026-03-01", "night"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	bad := request("2026-03-01", entity.ShiftMorning)
	bad.Morning[0].Tested = -1
	_, err = uc.Create(context.Background(), bad)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGet_InexistenteEsNotFound(t *testing.T) {
	_, err := newReportUC().Get(context.Background(), "2026-01-01")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_UpsertConservaCreacion(t *testing.T) {
	ctx := context.Background()
	uc := newReportUC()
	created, err := uc.Create(ctx, request("2026-03-01", entity.ShiftMorning))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	in := request("", entity.ShiftAfternoon)
	updated, err := uc.Update(ctx, "2026-03-01", in)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftAfternoon, updated.Header.Shift)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	fresh, err := uc.Update(ctx, "2026-03-09", request("2026-03-09", entity.ShiftMorning))
	require.NoError(t, err)
	assert.Equal(t, "2026-03-09", fresh.Header.Date)
}

func TestUpdate_FechaDistintaALaRuta(t *testing.T) {
	_, err := newReportUC().Update(context.Background(), "2026-03-01", request("2026-03-02", entity.ShiftMorning))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_FiltrosYOrden(t *testing.T) {
	ctx := context.Background()
	uc := newReportUC()
	for _, d := range []string{"2026-03-01", "2026-03-03", "2026-03-02"} {
		_, err := uc.Create(ctx, request(d, entity.ShiftMorning))
		require.NoError(t, err)
	}

	all, err := uc.List(ctx, dto.ReportListQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-03", all[0].Header.Date)
	assert.Equal(t, "2026-03-01", all[2].Header.Date)

	ranged, err := uc.List(ctx, dto.ReportListQuery{From: "2026-03-02", To: "2026-03-02"})
	require.NoError(t, err)
	require.Len(t, ranged, 1)

	none, err := uc.List(ctx, dto.ReportListQuery{Shift: entity.ShiftAfternoon})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = uc.List(ctx, dto.ReportListQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummary_TasasYImpacto(t *testing.T) {
	ctx := context.Background()
	uc := newReportUC()
	_, err := uc.Create(ctx, request("2026-03-01", entity.ShiftMorning))
	require.NoError(t, err)

	s, err := uc.Summary(ctx, "2026-03-01")
	require.NoError(t, err)

	assert.Equal(t, 12, s.Total.Tested)
	assert.Equal(t, 2, s.Total.Operators)
	assert.Equal(t, "75", s.Morning.ApprovalRate.String())
	assert.Equal(t, "75", s.Afternoon.ApprovalRate.String())
	assert.Equal(t, "25", s.Total.RejectionRate.String())
	assert.Equal(t, map[string]int{entity.VariantV1: 12, entity.VariantV9: 1}, s.StockImpact)
}

func TestDownloadPDF_NombreDeArchivo(t *testing.T) {
	ctx := context.Background()
	uc := newReportUC()
	_, err := uc.Create(ctx, request("2026-03-01", entity.ShiftMorning))
	require.NoError(t, err)

	pdf, name, err := uc.DownloadPDF(ctx, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "reporte-2026-03-01.pdf", name)
	assert.NotEmpty(t, pdf)
}
