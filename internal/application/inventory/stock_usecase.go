package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/linea-stock-api/internal/application/dto"
	"github.com/jhoicas/linea-stock-api/internal/domain"
	"github.com/jhoicas/linea-stock-api/internal/domain/entity"
	domaininv "github.com/jhoicas/linea-stock-api/internal/domain/inventory"
	"github.com/jhoicas/linea-stock-api/internal/domain/repository"
	"github.com/jhoicas/linea-stock-api/pkg/logger"
)

// StockUseCase mantiene el documento de stock: lectura con siembra perezosa, reemplazo de items
// y registro/eliminación de movimientos. Cada escritura se aplica dentro de una transacción
// con el documento bloqueado (lectura-modificación-escritura atómica).
type StockUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
	exporter  MovementExporter
	ledger    domaininv.Ledger
	log       *logger.Logger
	now       func() time.Time
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRecordRepository,
	exporter MovementExporter,
	ledger domaininv.Ledger,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		stockRepo: stockRepo,
		exporter:  exporter,
		ledger:    ledger,
		log:       log.Component("stock"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Get devuelve el documento de stock; lo crea con cantidades en cero si aún no existe.
func (uc *StockUseCase) Get(ctx context.Context) (*entity.StockRecord, error) {
	rec, err := uc.stockRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}
	created, err := uc.stockRepo.CreateIfAbsent(ctx, uc.ledger.Seed(uc.now()))
	if err != nil {
		return nil, err
	}
	if created {
		uc.log.Info().Msg("documento de stock inicial creado")
	}
	// Releer: si otra petición lo sembró primero, devolvemos su versión.
	rec, err = uc.stockRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("stock sembrado pero no encontrado: %w", domain.ErrStore)
	}
	return rec, nil
}

// Replace sobrescribe los items (cantidades por variante) y marca lastUpdate.
func (uc *StockUseCase) Replace(ctx context.Context, in dto.ReplaceStockRequest) (*entity.StockRecord, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	items := make(map[string]entity.StockItem, len(in.Items))
	for k, v := range in.Items {
		items[k] = entity.StockItem{Model: v.Model, Quantity: *v.Quantity}
	}

	var out *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, _ repository.ReportRepository) error {
		now := uc.now()
		if _, err := stockRepo.CreateIfAbsent(ctx, uc.ledger.Seed(now)); err != nil {
			return err
		}
		rec, err := stockRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("stock: %w", domain.ErrNotFound)
		}
		if err := uc.ledger.ReplaceItems(rec, items, now); err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovements devuelve los movimientos ordenados por fecha descendente (vista; no altera el documento).
func (uc *StockUseCase) ListMovements(ctx context.Context) ([]entity.Movement, error) {
	rec, err := uc.stockRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return []entity.Movement{}, nil
	}
	return domaininv.SortByDateDesc(rec.Movements), nil
}

// ExportMovements genera el archivo del historial (fecha descendente).
func (uc *StockUseCase) ExportMovements(ctx context.Context) ([]byte, error) {
	movs, err := uc.ListMovements(ctx)
	if err != nil {
		return nil, err
	}
	return uc.exporter.ExportMovements(ctx, movs)
}

// AddMovement registra una entrada o salida para el modelo indicado.
// Rechaza con ErrInsufficientStock si la cantidad quedaría negativa (sin modificar nada)
// y con ErrNotFound si el documento de stock aún no existe.
func (uc *StockUseCase) AddMovement(ctx context.Context, in dto.AddMovementRequest) (*entity.StockRecord, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	variant, ok := uc.ledger.ResolveVariant(in.Model)
	if !ok {
		return nil, domain.Invalid("model", fmt.Sprintf("modelo desconocido %q", in.Model))
	}
	delta, err := domaininv.SignedDelta(in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}

	var out *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, _ repository.ReportRepository) error {
		rec, err := stockRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("stock: %w", domain.ErrNotFound)
		}
		mov := entity.Movement{
			ID:              uuid.New().String(),
			Date:            uc.now(),
			Type:            in.Type,
			Variant:         variant,
			Model:           in.Model,
			Source:          in.Source,
			Destination:     in.Destination,
			ResponsibleUser: in.ResponsibleUser,
			Observations:    in.Observations,
			Quantity:        in.Quantity,
			Delta:           delta,
		}
		if _, err := uc.ledger.Append(rec, mov); err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().Str("variant", variant).Int("delta", delta).Msg("movimiento rechazado por stock insuficiente")
		}
		return nil, err
	}
	uc.log.Debug().Str("variant", variant).Str("type", in.Type).Int("quantity", in.Quantity).Msg("movimiento registrado")
	return out, nil
}

// DeleteMovement elimina el movimiento identificado por su fecha (o id) y revierte su efecto.
// Un segundo borrado del mismo movimiento devuelve ErrNotFound.
func (uc *StockUseCase) DeleteMovement(ctx context.Context, key string) (*dto.DeleteMovementResponse, error) {
	if key == "" {
		return nil, domain.Invalid("date", "es requerido")
	}
	var out dto.DeleteMovementResponse
	err := uc.txRunner.Run(ctx, func(stockRepo repository.StockRecordRepository, _ repository.ReportRepository) error {
		rec, err := stockRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("stock: %w", domain.ErrNotFound)
		}
		mov, err := uc.ledger.Remove(rec, key, uc.now())
		if err != nil {
			return err
		}
		if err := stockRepo.Save(ctx, rec); err != nil {
			return err
		}
		out = dto.DeleteMovementResponse{
			Message:         "movimiento eliminado",
			DeletedMovement: mov,
			UpdatedStock:    rec,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("movement", out.DeletedMovement.ID).Int("reverted", -out.DeletedMovement.Delta).Msg("movimiento eliminado")
	return &out, nil
}
