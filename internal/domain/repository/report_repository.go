package repository

import (
	"context"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

// ReportFilter filtros opcionales del listado de reportes (fechas inclusivas YYYY-MM-DD).
type ReportFilter struct {
	From  string
	To    string
	Shift string
	Unit  string
}

// ReportRepository define el puerto de persistencia de reportes de turno (clave: fecha).
type ReportRepository interface {
	// Create falla con domain.ErrDuplicate si ya existe un reporte para la fecha.
	Create(ctx context.Context, report *entity.Report) error
	// Get devuelve (nil, nil) si no existe.
	Get(ctx context.Context, date string) (*entity.Report, error)
	// GetForUpdate como Get, pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, date string) (*entity.Report, error)
	// List ordenado por fecha descendente.
	List(ctx context.Context, filter ReportFilter) ([]*entity.Report, error)
	// Upsert reemplaza el reporte completo o lo crea; conserva CreatedAt si ya existía.
	Upsert(ctx context.Context, report *entity.Report) (*entity.Report, error)
	// Delete devuelve domain.ErrNotFound si no había reporte.
	Delete(ctx context.Context, date string) error
}
