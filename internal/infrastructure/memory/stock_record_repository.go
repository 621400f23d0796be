package memory

import (
	"context"

	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo adaptador en memoria del documento de stock. Devuelve siempre copias.
type StockRecordRepo struct {
	with func(func(*state) error) error
}

// Get devuelve una copia del documento o nil si no existe.
func (r *StockRecordRepo) Get(_ context.Context) (*entity.StockRecord, error) {
	var out *entity.StockRecord
	err := r.with(func(st *state) error {
		out = st.stock.Clone()
		return nil
	})
	return out, err
}

// GetForUpdate dentro de Run el mutex ya está tomado; fuera equivale a Get.
func (r *StockRecordRepo) GetForUpdate(ctx context.Context) (*entity.StockRecord, error) {
	return r.Get(ctx)
}

// CreateIfAbsent guarda rec solo si no hay documento.
func (r *StockRecordRepo) CreateIfAbsent(_ context.Context, rec *entity.StockRecord) (bool, error) {
	created := false
	err := r.with(func(st *state) error {
		if st.stock != nil {
			return nil
		}
		c := rec.Clone()
		c.ID = entity.StockRecordID
		c.Version = 1
		st.stock = c
		created = true
		return nil
	})
	return created, err
}

// Save reemplaza el documento e incrementa la versión (también en rec).
func (r *StockRecordRepo) Save(_ context.Context, rec *entity.StockRecord) error {
	return r.with(func(st *state) error {
		version := int64(1)
		if st.stock != nil {
			version = st.stock.Version + 1
		}
		rec.Version = version
		c := rec.Clone()
		c.ID = entity.StockRecordID
		st.stock = c
		return nil
	})
}
