package entity

import "time"

// StockRecordID es la clave del único documento de stock por despliegue.
const StockRecordID = "main"

// Variantes de hardware controladas.
const (
	VariantV1 = "v1"
	VariantV9 = "v9"
)

// Variants lista las variantes en orden estable.
var Variants = []string{VariantV1, VariantV9}

// Estados de stock de una variante.
const (
	StockStatusInStock    = "in_stock"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// StockItem cantidad y estado actual de una variante.
type StockItem struct {
	Model      string    `json:"model"`
	Quantity   int       `json:"quantity"`
	LastUpdate time.Time `json:"lastUpdate"`
	Status     string    `json:"status"`
}

// StockRecord documento singleton con las cantidades por variante y el historial de movimientos.
type StockRecord struct {
	ID        string               `json:"id"`
	Items     map[string]StockItem `json:"items"`
	Movements []Movement           `json:"movements"`
	Version   int64                `json:"version"`
}

// Clone devuelve una copia profunda; los stores la usan para no compartir memoria con el llamador.
func (r *StockRecord) Clone() *StockRecord {
	if r == nil {
		return nil
	}
	out := &StockRecord{ID: r.ID, Version: r.Version}
	out.Items = make(map[string]StockItem, len(r.Items))
	for k, v := range r.Items {
		out.Items[k] = v
	}
	out.Movements = make([]Movement, len(r.Movements))
	copy(out.Movements, r.Movements)
	return out
}
