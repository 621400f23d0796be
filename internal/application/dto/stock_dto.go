package dto

import "github.com/jhoicas/linea-stock-api/internal/domain/entity"

// AddMovementRequest body para POST /api/stock/movements.
type AddMovementRequest struct {
	Model           string `json:"model" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=entry exit adjustment"`
	Quantity        int    `json:"quantity" validate:"gt=0"`
	Source          string `json:"source"`
	Destination     string `json:"destination"`
	ResponsibleUser string `json:"responsibleUser"`
	Observations    string `json:"observations"`
}

// StockItemInput cantidad por variante en PUT /api/stock.
type StockItemInput struct {
	Model    string `json:"model"`
	Quantity *int   `json:"quantity" validate:"required,min=0"`
}

// ReplaceStockRequest body para PUT /api/stock.
type ReplaceStockRequest struct {
	Items map[string]StockItemInput `json:"items" validate:"required,min=1,dive"`
}

// DeleteMovementResponse respuesta de DELETE /api/stock/movements/{date}.
type DeleteMovementResponse struct {
	Message         string              `json:"message"`
	DeletedMovement entity.Movement     `json:"deletedMovement"`
	UpdatedStock    *entity.StockRecord `json:"updatedStock"`
}

// DeleteReportResponse respuesta de DELETE /api/reports/{date}.
type DeleteReportResponse struct {
	DeletedReport         *entity.Report      `json:"deletedReport"`
	UpdatedStock          *entity.StockRecord `json:"updatedStock"`
	CompensatingMovements []entity.Movement   `json:"compensatingMovements"`
}
