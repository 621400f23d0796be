package reports

import (
	"context"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
)

// ReportPDFGenerator genera la versión imprimible de un reporte de turno.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, report *entity.Report, summary *dto.ReportSummaryResponse) ([]byte, error)
}
