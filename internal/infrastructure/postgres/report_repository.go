package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

var reportColumns = []string{
	"report_date", "supervisor", "unit", "shift",
	"morning", "afternoon", "dashboard_data", "created_at", "updated_at",
}

// reportRow fila tal como la devuelve PostgreSQL; los turnos llegan como JSON crudo.
type reportRow struct {
	ReportDate    string    `db:"report_date"`
	Supervisor    string    `db:"supervisor"`
	Unit          string    `db:"unit"`
	Shift         string    `db:"shift"`
	Morning       []byte    `db:"morning"`
	Afternoon     []byte    `db:"afternoon"`
	DashboardData []byte    `db:"dashboard_data"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (row reportRow) toEntity() (*entity.Report, error) {
	rep := &entity.Report{
		Header: entity.ReportHeader{
			Date:       row.ReportDate,
			Supervisor: row.Supervisor,
			Unit:       row.Unit,
			Shift:      row.Shift,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if err := json.Unmarshal(row.Morning, &rep.Morning); err != nil {
		return nil, fmt.Errorf("decode morning %s: %w", row.ReportDate, err)
	}
	if err := json.Unmarshal(row.Afternoon, &rep.Afternoon); err != nil {
		return nil, fmt.Errorf("decode afternoon %s: %w", row.ReportDate, err)
	}
	if len(row.DashboardData) > 0 {
		rep.DashboardData = json.RawMessage(row.DashboardData)
	}
	return rep, nil
}

// ReportRepo implementación de ReportRepository sobre PostgreSQL (usable con pool o tx).
type ReportRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func encodeEntries(entries []entity.OperatorEntry) ([]byte, error) {
	if entries == nil {
		entries = []entity.OperatorEntry{}
	}
	return json.Marshal(entries)
}

func dashboardArg(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func reportArgs(report *entity.Report) ([]any, error) {
	morning, err := encodeEntries(report.Morning)
	if err != nil {
		return nil, err
	}
	afternoon, err := encodeEntries(report.Afternoon)
	if err != nil {
		return nil, err
	}
	h := report.Header
	return []any{
		h.Date, h.Supervisor, h.Unit, h.Shift,
		morning, afternoon, dashboardArg(report.DashboardData),
		report.CreatedAt, report.UpdatedAt,
	}, nil
}

// Create inserta el reporte; ErrDuplicate si la fecha ya existe.
func (r *ReportRepo) Create(ctx context.Context, report *entity.Report) error {
	args, err := reportArgs(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	query, qargs, err := r.builder.Insert("shift_reports").Columns(reportColumns...).Values(args...).ToSql()
	if err != nil {
		return fmt.Errorf("build insert report: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, qargs...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reporte %s: %w", report.Header.Date, domain.ErrDuplicate)
		}
		return storeErr("insert report", err)
	}
	return nil
}

// Get obtiene el reporte de una fecha; (nil, nil) si no existe.
func (r *ReportRepo) Get(ctx context.Context, date string) (*entity.Report, error) {
	return r.get(ctx, date, "")
}

// GetForUpdate obtiene el reporte y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
// Un upsert concurrente de la misma fecha espera a que la transacción termine.
func (r *ReportRepo) GetForUpdate(ctx context.Context, date string) (*entity.Report, error) {
	return r.get(ctx, date, "FOR UPDATE")
}

func (r *ReportRepo) get(ctx context.Context, date, suffix string) (*entity.Report, error) {
	q := r.builder.Select(reportColumns...).
		From("shift_reports").
		Where(squirrel.Eq{"report_date": date})
	if suffix != "" {
		q = q.Suffix(suffix)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get report: %w", err)
	}
	var row reportRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, storeErr("get report", err)
	}
	return row.toEntity()
}

// List lista reportes por fecha descendente aplicando los filtros presentes.
func (r *ReportRepo) List(ctx context.Context, f repository.ReportFilter) ([]*entity.Report, error) {
	q := r.builder.Select(reportColumns...).From("shift_reports").OrderBy("report_date DESC")
	if f.From != "" {
		q = q.Where(squirrel.GtOrEq{"report_date": f.From})
	}
	if f.To != "" {
		q = q.Where(squirrel.LtOrEq{"report_date": f.To})
	}
	if f.Shift != "" {
		q = q.Where(squirrel.Eq{"shift": f.Shift})
	}
	if f.Unit != "" {
		q = q.Where(squirrel.Eq{"unit": f.Unit})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list reports: %w", err)
	}

	var rows []reportRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, storeErr("list reports", err)
	}
	out := make([]*entity.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, nil
}

// Upsert reemplaza el reporte completo; created_at se conserva si la fila ya existía.
func (r *ReportRepo) Upsert(ctx context.Context, report *entity.Report) (*entity.Report, error) {
	args, err := reportArgs(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	query, qargs, err := r.builder.Insert("shift_reports").
		Columns(reportColumns...).
		Values(args...).
		Suffix(`ON CONFLICT (report_date) DO UPDATE SET
			supervisor = EXCLUDED.supervisor,
			unit = EXCLUDED.unit,
			shift = EXCLUDED.shift,
			morning = EXCLUDED.morning,
			afternoon = EXCLUDED.afternoon,
			dashboard_data = EXCLUDED.dashboard_data,
			updated_at = EXCLUDED.updated_at
			RETURNING ` + strings.Join(reportColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert report: %w", err)
	}
	var row reportRow
	if err := pgxscan.Get(ctx, r.q, &row, query, qargs...); err != nil {
		return nil, storeErr("upsert report", err)
	}
	return row.toEntity()
}

// Delete elimina el reporte; ErrNotFound si no existía.
func (r *ReportRepo) Delete(ctx context.Context, date string) error {
	query, args, err := r.builder.Delete("shift_reports").Where(squirrel.Eq{"report_date": date}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete report: %w", err)
	}
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return storeErr("delete report", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("reporte %s: %w", date, domain.ErrNotFound)
	}
	return nil
}
