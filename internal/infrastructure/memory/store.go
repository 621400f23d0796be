// Package memory implementa los puertos de persistencia en memoria de proceso.
// Sirve para desarrollo local (STORE_DRIVER=memory) y para los tests de casos de uso.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/linea-stock-api/internal/application/inventory"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type state struct {
	stock   *entity.StockRecord
	reports map[string]*entity.Report
}

func (s *state) clone() *state {
	out := &state{
		stock:   s.stock.Clone(),
		reports: make(map[string]*entity.Report, len(s.reports)),
	}
	for k, v := range s.reports {
		out.reports[k] = v
	}
	return out
}

// Store guarda el documento de stock y los reportes detrás de un único mutex.
// Run trabaja sobre una copia y la publica solo si fn termina sin error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{st: &state{reports: map[string]*entity.Report{}}}
}

// Run ejecuta fn con acceso exclusivo; commit si fn devuelve nil, descarte en caso contrario.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	reportRepo repository.ReportRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	with := func(f func(*state) error) error { return f(work) }
	if err := fn(&StockRecordRepo{with: with}, &ReportRepo{with: with}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// StockRecordRepository repositorio fuera de transacción (cada llamada toma el mutex).
func (s *Store) StockRecordRepository() *StockRecordRepo {
	return &StockRecordRepo{with: s.locked}
}

// ReportRepository repositorio fuera de transacción (cada llamada toma el mutex).
func (s *Store) ReportRepository() *ReportRepo {
	return &ReportRepo{with: s.locked}
}

// Ping siempre disponible.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) locked(f func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.st)
}

func sortReportsDesc(list []*entity.Report) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Header.Date > list[j].Header.Date
	})
}
