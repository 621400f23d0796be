package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo guarda el StockRecord como un documento JSONB (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Get obtiene el documento; (nil, nil) si no existe.
func (r *StockRecordRepo) Get(ctx context.Context) (*entity.StockRecord, error) {
	return r.get(ctx, `SELECT document, version FROM stock_records WHERE id = $1`)
}

// GetForUpdate obtiene el documento y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *StockRecordRepo) GetForUpdate(ctx context.Context) (*entity.StockRecord, error) {
	return r.get(ctx, `SELECT document, version FROM stock_records WHERE id = $1 FOR UPDATE`)
}

func (r *StockRecordRepo) get(ctx context.Context, query string) (*entity.StockRecord, error) {
	var (
		doc     []byte
		version int64
	)
	err := r.q.QueryRow(ctx, query, entity.StockRecordID).Scan(&doc, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get stock", err)
	}
	var rec entity.StockRecord
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("decode stock: %w", err)
	}
	rec.ID = entity.StockRecordID
	rec.Version = version
	if rec.Items == nil {
		rec.Items = map[string]entity.StockItem{}
	}
	if rec.Movements == nil {
		rec.Movements = []entity.Movement{}
	}
	return &rec, nil
}

// CreateIfAbsent inserta el documento semilla; ON CONFLICT evita la carrera entre dos primeras lecturas.
func (r *StockRecordRepo) CreateIfAbsent(ctx context.Context, rec *entity.StockRecord) (bool, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("encode stock: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO stock_records (id, document, version, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (id) DO NOTHING`,
		entity.StockRecordID, doc,
	)
	if err != nil {
		return false, storeErr("create stock", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Save reemplaza el documento completo y aumenta la versión (se refleja en rec.Version).
func (r *StockRecordRepo) Save(ctx context.Context, rec *entity.StockRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode stock: %w", err)
	}
	var version int64
	err = r.q.QueryRow(ctx, `
		UPDATE stock_records
		SET document = $2, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version`,
		entity.StockRecordID, doc,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("save stock: %w", domain.ErrNotFound)
		}
		return storeErr("save stock", err)
	}
	rec.Version = version
	return nil
}
