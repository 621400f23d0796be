package entity

import (
	"encoding/json"
	"time"
)

// Turnos de trabajo.
const (
	ShiftMorning   = "morning"
	ShiftAfternoon = "afternoon"
)

// ReportDateLayout formato de la fecha que identifica un reporte.
const ReportDateLayout = "2006-01-02"

// ReportHeader cabecera del reporte diario; Date es la clave única.
type ReportHeader struct {
	Date       string `json:"date"`
	Supervisor string `json:"supervisor"`
	Unit       string `json:"unit"`
	Shift      string `json:"shift"`
}

// OperatorEntry conteos de un operador en un turno.
type OperatorEntry struct {
	Name      string `json:"name"`
	Tested    int    `json:"tested"`
	Approved  int    `json:"approved"`
	Rejected  int    `json:"rejected"`
	Cleaned   int    `json:"cleaned"`
	Resetados int    `json:"resetados"`
	V9        int    `json:"v9"`
}

// Report reporte de turno de la línea de pruebas.
// DashboardData lo calcula el cliente y se guarda tal cual.
type Report struct {
	Header        ReportHeader    `json:"header"`
	Morning       []OperatorEntry `json:"morning"`
	Afternoon     []OperatorEntry `json:"afternoon"`
	DashboardData json.RawMessage `json:"dashboardData,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Entries devuelve los operadores de ambos turnos (mañana primero).
func (r *Report) Entries() []OperatorEntry {
	out := make([]OperatorEntry, 0, len(r.Morning)+len(r.Afternoon))
	out = append(out, r.Morning...)
	return append(out, r.Afternoon...)
}
