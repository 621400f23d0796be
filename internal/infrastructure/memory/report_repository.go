package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo adaptador en memoria de reportes.
type ReportRepo struct {
	with func(func(*state) error) error
}

func cloneReport(r *entity.Report) *entity.Report {
	if r == nil {
		return nil
	}
	c := *r
	c.Morning = append([]entity.OperatorEntry(nil), r.Morning...)
	c.Afternoon = append([]entity.OperatorEntry(nil), r.Afternoon...)
	c.DashboardData = append([]byte(nil), r.DashboardData...)
	if len(c.DashboardData) == 0 {
		c.DashboardData = nil
	}
	return &c
}

// Create inserta; ErrDuplicate si la fecha ya existe.
func (r *ReportRepo) Create(_ context.Context, report *entity.Report) error {
	return r.with(func(st *state) error {
		if _, ok := st.reports[report.Header.Date]; ok {
			return fmt.Errorf("reporte %s: %w", report.Header.Date, domain.ErrDuplicate)
		}
		st.reports[report.Header.Date] = cloneReport(report)
		return nil
	})
}

// Get devuelve nil si no existe.
func (r *ReportRepo) Get(_ context.Context, date string) (*entity.Report, error) {
	var out *entity.Report
	err := r.with(func(st *state) error {
		out = cloneReport(st.reports[date])
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el mutex ya está tomado; fuera equivale a Get.
func (r *ReportRepo) GetForUpdate(ctx context.Context, date string) (*entity.Report, error) {
	return r.Get(ctx, date)
}

// List filtra y ordena por fecha descendente.
func (r *ReportRepo) List(_ context.Context, f repository.ReportFilter) ([]*entity.Report, error) {
	var out []*entity.Report
	err := r.with(func(st *state) error {
		for _, rep := range st.reports {
			h := rep.Header
			if f.From != "" && h.Date < f.From {
				continue
			}
			if f.To != "" && h.Date > f.To {
				continue
			}
			if f.Shift != "" && h.Shift != f.Shift {
				continue
			}
			if f.Unit != "" && h.Unit != f.Unit {
				continue
			}
			out = append(out, cloneReport(rep))
		}
		return nil
	})
	sortReportsDesc(out)
	return out, err
}

// Upsert reemplaza conservando CreatedAt del existente.
func (r *ReportRepo) Upsert(_ context.Context, report *entity.Report) (*entity.Report, error) {
	var out *entity.Report
	err := r.with(func(st *state) error {
		c := cloneReport(report)
		if prev, ok := st.reports[c.Header.Date]; ok {
			c.CreatedAt = prev.CreatedAt
		}
		st.reports[c.Header.Date] = c
		out = cloneReport(c)
		return nil
	})
	return out, err
}

// Delete ErrNotFound si no existía.
func (r *ReportRepo) Delete(_ context.Context, date string) error {
	return r.with(func(st *state) error {
		if _, ok := st.reports[date]; !ok {
			return fmt.Errorf("reporte %s: %w", date, domain.ErrNotFound)
		}
		delete(st.reports, date)
		return nil
	})
}
