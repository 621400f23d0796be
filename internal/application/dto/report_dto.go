package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ReportHeaderInput cabecera del reporte.
type ReportHeaderInput struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Supervisor string `json:"supervisor" validate:"required"`
	Unit       string `json:"unit" validate:"required"`
	Shift      string `json:"shift" validate:"required,oneof=morning afternoon"`
}

// OperatorEntryInput conteos de un operador.
type OperatorEntryInput struct {
	Name      string `json:"name" validate:"required"`
	Tested    int    `json:"tested" validate:"min=0"`
	Approved  int    `json:"approved" validate:"min=0"`
	Rejected  int    `json:"rejected" validate:"min=0"`
	Cleaned   int    `json:"cleaned" validate:"min=0"`
	Resetados int    `json:"resetados" validate:"min=0"`
	V9        int    `json:"v9" validate:"min=0"`
}

// ReportRequest body para POST /api/reports y PUT /api/reports/{date}.
type ReportRequest struct {
	Header        ReportHeaderInput    `json:"header"`
	Morning       []OperatorEntryInput `json:"morning" validate:"dive"`
	Afternoon     []OperatorEntryInput `json:"afternoon" validate:"dive"`
	DashboardData json.RawMessage      `json:"dashboardData,omitempty"`
}

// ReportListQuery filtros de GET /api/reports.
type ReportListQuery struct {
	From  string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Shift string `query:"shift" validate:"omitempty,oneof=morning afternoon"`
	Unit  string `query:"unit"`
}

// ShiftSummary totales de un turno (o del día) con tasas en porcentaje.
type ShiftSummary struct {
	Operators     int             `json:"operators"`
	Tested        int             `json:"tested"`
	Approved      int             `json:"approved"`
	Rejected      int             `json:"rejected"`
	Cleaned       int             `json:"cleaned"`
	Resetados     int             `json:"resetados"`
	V9            int             `json:"v9"`
	ApprovalRate  decimal.Decimal `json:"approvalRate"`
	RejectionRate decimal.Decimal `json:"rejectionRate"`
}

// ReportSummaryResponse resumen calculado en servidor de un reporte.
type ReportSummaryResponse struct {
	Date       string       `json:"date"`
	Supervisor string       `json:"supervisor"`
	Unit       string       `json:"unit"`
	Shift      string       `json:"shift"`
	Morning    ShiftSummary `json:"morning"`
	Afternoon  ShiftSummary `json:"afternoon"`
	Total      ShiftSummary `json:"total"`
	// StockImpact lo que se descontaría del stock al eliminar el reporte.
	StockImpact map[string]int `json:"stockImpact"`
}
