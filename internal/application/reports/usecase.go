package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

// ReportUseCase casos de uso CRUD para reportes de turno. Crear o actualizar un reporte
// no toca el stock; solo la eliminación concilia (ver inventory.ReconcileReportUseCase).
type ReportUseCase struct {
	repo      repository.ReportRepository
	generator ReportPDFGenerator
	now       func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ReportRepository, generator ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{
		repo:      repo,
		generator: generator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create inserta un reporte nuevo. Si ya existe uno para la fecha devuelve ErrDuplicate.
func (uc *ReportUseCase) Create(ctx context.Context, in dto.ReportRequest) (*entity.Report, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	report := toReport(in)
	report.CreatedAt = now
	report.UpdatedAt = now
	if err := uc.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Get obtiene el reporte de una fecha.
func (uc *ReportUseCase) Get(ctx context.Context, date string) (*entity.Report, error) {
	report, err := uc.repo.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, fmt.Errorf("reporte %s: %w", date, domain.ErrNotFound)
	}
	return report, nil
}

// List lista reportes (fecha descendente) con filtros opcionales.
func (uc *ReportUseCase) List(ctx context.Context, q dto.ReportListQuery) ([]*entity.Report, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ReportFilter{
		From:  q.From,
		To:    q.To,
		Shift: q.Shift,
		Unit:  q.Unit,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Report{}
	}
	return list, nil
}

// Update reemplaza el reporte completo de la fecha (lo crea si no existía).
// La fecha del cuerpo, si viene, debe coincidir con la de la ruta.
func (uc *ReportUseCase) Update(ctx context.Context, date string, in dto.ReportRequest) (*entity.Report, error) {
	if in.Header.Date == "" {
		in.Header.Date = date
	}
	if in.Header.Date != date {
		return nil, domain.Invalid("header.date", "no coincide con la fecha de la ruta")
	}
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	report := toReport(in)
	report.CreatedAt = now
	report.UpdatedAt = now
	return uc.repo.Upsert(ctx, report)
}

// Summary calcula totales y tasas del reporte.
func (uc *ReportUseCase) Summary(ctx context.Context, date string) (*dto.ReportSummaryResponse, error) {
	report, err := uc.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	return Summarize(report), nil
}

// DownloadPDF genera el PDF del reporte; devuelve bytes y nombre de archivo sugerido.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, date string) ([]byte, string, error) {
	report, err := uc.Get(ctx, date)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReportPDF(ctx, report, Summarize(report))
	if err != nil {
		return nil, "", fmt.Errorf("pdf reporte %s: %w", date, err)
	}
	return pdf, "reporte-" + date + ".pdf", nil
}

func toReport(in dto.ReportRequest) *entity.Report {
	return &entity.Report{
		Header: entity.ReportHeader{
			Date:       in.Header.Date,
			Supervisor: in.Header.Supervisor,
			Unit:       in.Header.Unit,
			Shift:      in.Header.Shift,
		},
		Morning:       toEntries(in.Morning),
		Afternoon:     toEntries(in.Afternoon),
		DashboardData: in.DashboardData,
	}
}

func toEntries(in []dto.OperatorEntryInput) []entity.OperatorEntry {
	out := make([]entity.OperatorEntry, 0, len(in))
	for _, e := range in {
		out = append(out, entity.OperatorEntry{
			Name:      e.Name,
			Tested:    e.Tested,
			Approved:  e.Approved,
			Rejected:  e.Rejected,
			Cleaned:   e.Cleaned,
			Resetados: e.Resetados,
			V9:        e.V9,
		})
	}
	return out
}
