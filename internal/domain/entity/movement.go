package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry      = "entry"      // entrada
	MovementTypeExit       = "exit"       // salida
	MovementTypeAdjustment = "adjustment" // ajuste generado por el sistema
)

// SystemUser responsable de los movimientos generados por conciliación.
const SystemUser = "Sistema"

// Movement representa un movimiento de stock embebido en el StockRecord.
// Delta es el cambio con signo realmente aplicado a la cantidad de la variante;
// eliminar el movimiento revierte exactamente ese Delta.
type Movement struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Type            string    `json:"type"`
	Variant         string    `json:"variant"`
	Model           string    `json:"model"`
	Source          string    `json:"source"`
	Destination     string    `json:"destination"`
	ResponsibleUser string    `json:"responsibleUser"`
	Observations    string    `json:"observations"`
	Quantity        int       `json:"quantity"`
	Delta           int       `json:"delta"`
	ReportDate      string    `json:"reportDate,omitempty"`
}
