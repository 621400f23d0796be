package inventory

import (
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

// DefaultLowStockThreshold cantidad por debajo de la cual una variante pasa a low_stock.
const DefaultLowStockThreshold = 10

// Ledger reglas de consistencia del stock (servicio de dominio, sin I/O).
// Models asocia cada variante con el nombre de modelo que envían los clientes.
type Ledger struct {
	Models            map[string]string
	LowStockThreshold int
}

// NewLedger construye el ledger con los nombres de modelo de v1 y v9.
func NewLedger(modelV1, modelV9 string, lowThreshold int) Ledger {
	if lowThreshold < 0 {
		lowThreshold = DefaultLowStockThreshold
	}
	return Ledger{
		Models: map[string]string{
			entity.VariantV1: modelV1,
			entity.VariantV9: modelV9,
		},
		LowStockThreshold: lowThreshold,
	}
}

// ResolveVariant busca la variante por nombre exacto de modelo.
func (l Ledger) ResolveVariant(model string) (string, bool) {
	for _, v := range entity.Variants {
		if l.Models[v] == model {
			return v, true
		}
	}
	return "", false
}

// Status deriva el estado de una cantidad.
func (l Ledger) Status(qty int) string {
	switch {
	case qty <= 0:
		return entity.StockStatusOutOfStock
	case qty < l.LowStockThreshold:
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}

// Seed crea el documento inicial con cantidad cero para ambas variantes.
func (l Ledger) Seed(now time.Time) *entity.StockRecord {
	rec := &entity.StockRecord{
		ID:        entity.StockRecordID,
		Items:     make(map[string]entity.StockItem, len(entity.Variants)),
		Movements: []entity.Movement{},
	}
	for _, v := range entity.Variants {
		rec.Items[v] = entity.StockItem{
			Model:      l.Models[v],
			Quantity:   0,
			LastUpdate: now,
			Status:     l.Status(0),
		}
	}
	return rec
}

// ReplaceItems sobrescribe el mapa de items. Exige ambas variantes y cantidades no negativas.
func (l Ledger) ReplaceItems(rec *entity.StockRecord, items map[string]entity.StockItem, now time.Time) error {
	if len(items) == 0 {
		return domain.Invalid("items", "es requerido")
	}
	for k := range items {
		if _, ok := l.Models[k]; !ok {
			return domain.Invalid("items", fmt.Sprintf("variante desconocida %q", k))
		}
	}
	next := make(map[string]entity.StockItem, len(entity.Variants))
	for _, v := range entity.Variants {
		it, ok := items[v]
		if !ok {
			return domain.Invalid("items."+v, "es requerido")
		}
		if it.Quantity < 0 {
			return domain.Invalid("items."+v+".quantity", "no puede ser negativa")
		}
		if it.Model == "" {
			it.Model = l.Models[v]
		}
		it.LastUpdate = now
		it.Status = l.Status(it.Quantity)
		next[v] = it
	}
	rec.Items = next
	return nil
}

// ApplyDelta suma delta a la variante. Si el resultado fuera negativo devuelve
// ErrInsufficientStock y el registro no cambia.
func (l Ledger) ApplyDelta(rec *entity.StockRecord, variant string, delta int, now time.Time) error {
	it, ok := rec.Items[variant]
	if !ok {
		return domain.Invalid("variant", fmt.Sprintf("variante %q sin item de stock", variant))
	}
	next := it.Quantity + delta
	if next < 0 {
		return fmt.Errorf("%w: %s tiene %d, cambio %d", domain.ErrInsufficientStock, variant, it.Quantity, delta)
	}
	it.Quantity = next
	it.LastUpdate = now
	it.Status = l.Status(next)
	rec.Items[variant] = it
	return nil
}

// SignedDelta cambio con signo para un movimiento manual.
func SignedDelta(movType string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, domain.Invalid("quantity", "debe ser un entero positivo")
	}
	switch movType {
	case entity.MovementTypeEntry:
		return quantity, nil
	case entity.MovementTypeExit:
		return -quantity, nil
	case entity.MovementTypeAdjustment:
		return 0, domain.Invalid("type", "adjustment solo lo genera el sistema")
	default:
		return 0, domain.Invalid("type", "debe ser entry o exit")
	}
}

// Append aplica mov.Delta y agrega el movimiento al final del historial.
// Devuelve el movimiento tal como quedó guardado.
func (l Ledger) Append(rec *entity.StockRecord, mov entity.Movement) (entity.Movement, error) {
	mov.Date = uniqueDate(rec, mov.Date)
	if err := l.ApplyDelta(rec, mov.Variant, mov.Delta, mov.Date); err != nil {
		return entity.Movement{}, err
	}
	rec.Movements = append(rec.Movements, mov)
	return mov, nil
}

// uniqueDate la fecha es la clave de borrado: dos movimientos no pueden compartirla.
func uniqueDate(rec *entity.StockRecord, t time.Time) time.Time {
	for {
		taken := false
		for _, m := range rec.Movements {
			if m.Date.Equal(t) {
				taken = true
				break
			}
		}
		if !taken {
			return t
		}
		t = t.Add(time.Microsecond)
	}
}

// Matches indica si key identifica al movimiento: por fecha (RFC 3339) o por id.
func Matches(mov entity.Movement, key string) bool {
	if key == "" {
		return false
	}
	if mov.ID == key {
		return true
	}
	t, err := time.Parse(time.RFC3339Nano, key)
	if err != nil {
		return false
	}
	return mov.Date.Equal(t)
}

// Remove busca el primer movimiento que coincide con key, revierte su Delta y lo quita.
func (l Ledger) Remove(rec *entity.StockRecord, key string, now time.Time) (entity.Movement, error) {
	idx := -1
	for i, m := range rec.Movements {
		if Matches(m, key) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.Movement{}, fmt.Errorf("movimiento %s: %w", key, domain.ErrNotFound)
	}
	mov := rec.Movements[idx]
	if err := l.ApplyDelta(rec, mov.Variant, -mov.Delta, now); err != nil {
		return entity.Movement{}, err
	}
	rec.Movements = append(rec.Movements[:idx:idx], rec.Movements[idx+1:]...)
	return mov, nil
}

// SortByDateDesc devuelve una copia ordenada por fecha descendente; no altera el orden guardado.
func SortByDateDesc(movs []entity.Movement) []entity.Movement {
	out := make([]entity.Movement, len(movs))
	copy(out, movs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
