package inventory

import (
	"context"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando repositorios atados a ella.
// Garantiza que leer, ajustar y guardar el documento de stock sea una sola operación atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRecordRepository,
		reportRepo repository.ReportRepository,
	) error) error
}

// MovementExporter serializa el historial de movimientos a un archivo descargable.
type MovementExporter interface {
	ExportMovements(ctx context.Context, movements []entity.Movement) ([]byte, error)
}
