package repository

import (
	"context"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

// StockRecordRepository define el puerto de persistencia del documento de stock singleton.
// Usado dentro de transacciones para garantizar consistencia.
type StockRecordRepository interface {
	// Get devuelve el documento o (nil, nil) si aún no existe.
	Get(ctx context.Context) (*entity.StockRecord, error)
	// GetForUpdate igual que Get pero bloquea el documento hasta el fin de la transacción.
	GetForUpdate(ctx context.Context) (*entity.StockRecord, error)
	// CreateIfAbsent inserta el documento si no existe; devuelve false si otro lo creó antes.
	CreateIfAbsent(ctx context.Context, rec *entity.StockRecord) (bool, error)
	// Save reemplaza el documento completo e incrementa su versión.
	Save(ctx context.Context, rec *entity.StockRecord) error
}
