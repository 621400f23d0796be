package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/linea-stock-api/internal/domain/inventory"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
	"github.com/jhoicas/linea-stock-api/pkg/logger"
)

// ReconcileReportUseCase elimina un reporte de turno descontando su contribución del stock.
//
// Todo el ciclo corre en una sola transacción, con el reporte y el stock bloqueados:
//
//	bloquear reporte → totales → bloquear stock → ajustar (recorte en 0) → agregar movimientos → borrar reporte
//
// Si falta el reporte o el stock se aborta con ErrNotFound sin tocar nada; si falla cualquier
// paso posterior la transacción se revierte y ambos documentos quedan como estaban.
type ReconcileReportUseCase struct {
	txRunner TxRunner
	ledger   domaininv.Ledger
	log      *logger.Logger
	now      func() time.Time
}

// NewReconcileReportUseCase construye el caso de uso.
func NewReconcileReportUseCase(txRunner TxRunner, ledger domaininv.Ledger, log *logger.Logger) *ReconcileReportUseCase {
	return &ReconcileReportUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		log:      log.Component("reconcile"),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// DeleteReport elimina el reporte de la fecha y devuelve el reporte borrado y el stock ajustado.
func (uc *ReconcileReportUseCase) DeleteReport(ctx context.Context, date string) (*dto.DeleteReportResponse, error) {
	if date == "" {
		return nil, domain.Invalid("date", "es requerido")
	}
	var out dto.DeleteReportResponse
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, reportRepo repository.ReportRepository) error {
		report, err := reportRepo.GetForUpdate(ctx, date)
		if err != nil {
			return err
		}
		if report == nil {
			return fmt.Errorf("reporte %s: %w", date, domain.ErrNotFound)
		}

		rec, err := stockRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("stock: %w", domain.ErrNotFound)
		}

		movs := uc.ledger.Reconcile(rec, report, uc.now())
		if len(movs) > 0 {
			if err := stockRepo.Save(ctx, rec); err != nil {
				return err
			}
		}
		if err := reportRepo.Delete(ctx, date); err != nil {
			return err
		}

		out = dto.DeleteReportResponse{
			DeletedReport:         report,
			UpdatedStock:          rec,
			CompensatingMovements: movs,
		}
		if out.CompensatingMovements == nil {
			out.CompensatingMovements = []entity.Movement{}
		}
		return nil
	})
	if err != nil {
		uc.log.Debug().Err(err).Str("report", date).Msg("eliminación de reporte abortada")
		return nil, err
	}

	totalV1, totalV9 := domaininv.ReportTotals(out.DeletedReport)
	uc.log.Info().
		Str("report", date).
		Int("total_v1", totalV1).
		Int("total_v9", totalV9).
		Int("movements", len(out.CompensatingMovements)).
		Msg("reporte eliminado y stock conciliado")
	return &out, nil
}
