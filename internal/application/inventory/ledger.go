package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/inventory"
)

const lotCodeAttempts = 3

// LedgerOptions parámetros de reintento del libro mayor.
type LedgerOptions struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// LedgerUseCase publica entradas, salidas (simples y por receta) y anulaciones.
// Cada operación corre en una sola transacción con el producto bloqueado (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner  TxRunner
	publisher AlertPublisher
	log       zerolog.Logger
	opts      LedgerOptions
	now       func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, publisher AlertPublisher, log zerolog.Logger, opts LedgerOptions) *LedgerUseCase {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &LedgerUseCase{
		txRunner:  txRunner,
		publisher: publisher,
		log:       log.With().Str("component", "ledger").Logger(),
		opts:      opts,
		now:       time.Now,
	}
}

// ReceiptInput entrada de mercancía: crea un lote nuevo.
// PurchasedAt/ExpiresAt permiten registrar saldos de apertura con fechas explícitas.
type ReceiptInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitCost    decimal.Decimal
	Reason      string
	Source      string
	UserID      string
	PurchasedAt *time.Time
	ExpiresAt   *time.Time
}

// ReceiptResult resultado de una entrada.
type ReceiptResult struct {
	Movement    *entity.Movement
	Lot         *entity.Lot
	StockActual decimal.Decimal
}

// IssueInput salida de un producto. WarehouseID es opcional: la asignación FIFO es por producto.
type IssueInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	Reason      string
	Source      string
	UserID      string
}

// IssueResult movimientos publicados (uno por lote tocado) y stock resultante.
type IssueResult struct {
	Movements   []*entity.Movement
	StockActual decimal.Decimal
	Alert       *entity.Alert
}

// RecipeIssueInput salida por receta: Portions porciones del plato.
type RecipeIssueInput struct {
	RecipeID string
	Portions decimal.Decimal
	UserID   string
}

// RecipeIssueResult movimientos de todos los ingredientes y alertas creadas.
type RecipeIssueResult struct {
	Movements []*entity.Movement
	Alerts    []*entity.Alert
}

// VoidResult movimiento anulado y stock resultante del producto.
type VoidResult struct {
	Movement    *entity.Movement
	StockActual decimal.Decimal
	Alert       *entity.Alert
}

// PostReceipt registra una entrada: lote nuevo + movimiento RECEIPT + stock del producto.
func (uc *LedgerUseCase) PostReceipt(ctx context.Context, in ReceiptInput) (*ReceiptResult, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "producto y almacén son obligatorios")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "la cantidad debe ser mayor que cero")
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el costo unitario no puede ser negativo")
	}

	var res *ReceiptResult
	err := uc.withRetry(ctx, "receipt", func(repos Repos) error {
		now := uc.now()
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if _, err := repos.Warehouses.GetByID(ctx, in.WarehouseID); err != nil {
			return err
		}
		purchasedAt := now
		if in.PurchasedAt != nil {
			purchasedAt = *in.PurchasedAt
		}
		lot := &entity.Lot{
			ID:                uuid.New().String(),
			ProductID:         product.ID,
			WarehouseID:       in.WarehouseID,
			UnitCost:          in.UnitCost,
			TotalCost:         in.UnitCost.Mul(in.Quantity),
			InitialQuantity:   in.Quantity,
			AvailableQuantity: in.Quantity,
			PurchasedAt:       purchasedAt,
			ExpiresAt:         in.ExpiresAt,
			Status:            entity.LotStatusActive,
			CreatedAt:         now,
		}
		if err := createLot(ctx, repos, lot, now); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			Kind:        entity.MovementReceipt,
			Quantity:    in.Quantity,
			UnitCost:    in.UnitCost,
			TotalCost:   lot.TotalCost,
			OccurredAt:  now,
			Reason:      in.Reason,
			Source:      in.Source,
			ProductID:   product.ID,
			WarehouseID: in.WarehouseID,
			LotID:       lot.ID,
			UserID:      in.UserID,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		stock, err := repos.Products.AddStock(ctx, product.ID, in.Quantity)
		if err != nil {
			return err
		}
		res = &ReceiptResult{Movement: mov, Lot: lot, StockActual: stock}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// createLot persiste el lote generando un código nuevo ante colisión.
func createLot(ctx context.Context, repos Repos, lot *entity.Lot, now time.Time) error {
	var err error
	for i := 0; i < lotCodeAttempts; i++ {
		lot.Code = inventory.NewLotCode(now)
		if err = repos.Lots.Create(ctx, lot); !errors.Is(err, domain.ErrDuplicate) {
			return err
		}
	}
	return fmt.Errorf("generar código de lote: %w", err)
}

// PostIssue registra una salida consumiendo lotes FIFO.
func (uc *LedgerUseCase) PostIssue(ctx context.Context, in IssueInput) (*IssueResult, error) {
	if in.ProductID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el producto es obligatorio")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "la cantidad debe ser mayor que cero")
	}

	var res *IssueResult
	var created []*entity.Alert
	err := uc.withRetry(ctx, "issue", func(repos Repos) error {
		created = nil
		now := uc.now()
		product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if in.WarehouseID != "" {
			if _, err := repos.Warehouses.GetByID(ctx, in.WarehouseID); err != nil {
				return err
			}
		}
		if in.Quantity.GreaterThan(product.StockActual) {
			return insufficientStock(product, in.Quantity)
		}
		movs, err := allocate(ctx, repos, uc.log, product.ID, in.Quantity, issueMeta{
			Reason: in.Reason, Source: in.Source, UserID: in.UserID, Now: now,
		})
		if err != nil {
			return err
		}
		stock, err := repos.Products.AddStock(ctx, product.ID, in.Quantity.Neg())
		if err != nil {
			return err
		}
		alert, err := checkStockAlert(ctx, repos.Alerts, product, stock, now)
		if err != nil {
			return err
		}
		if alert != nil {
			created = append(created, alert)
		}
		res = &IssueResult{Movements: movs, StockActual: stock, Alert: alert}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publishAlerts(ctx, created)
	return res, nil
}

// PostRecipeIssue descuenta los ingredientes de una receta para Portions porciones.
// Todo o nada: si un ingrediente no alcanza no se publica ningún movimiento.
func (uc *LedgerUseCase) PostRecipeIssue(ctx context.Context, in RecipeIssueInput) (*RecipeIssueResult, error) {
	if in.RecipeID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "la receta es obligatoria")
	}
	if !in.Portions.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "las porciones deben ser mayores que cero")
	}

	var res *RecipeIssueResult
	err := uc.withRetry(ctx, "recipe_issue", func(repos Repos) error {
		res = nil
		now := uc.now()
		recipe, err := repos.Recipes.GetByID(ctx, in.RecipeID)
		if err != nil {
			return err
		}
		if len(recipe.Ingredients) == 0 {
			return domain.Errorf(domain.ErrInvalidInput, "la receta %q no tiene ingredientes", recipe.DishName)
		}

		// necesidades por producto, en el orden de la receta
		needed := make(map[string]decimal.Decimal, len(recipe.Ingredients))
		order := make([]string, 0, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			if _, seen := needed[ing.ProductID]; !seen {
				order = append(order, ing.ProductID)
			}
			needed[ing.ProductID] = needed[ing.ProductID].Add(ing.QtyPerPortion.Mul(in.Portions))
		}

		// bloqueo en orden de ID para no cruzarse con otra receta
		lockOrder := append([]string(nil), order...)
		sort.Strings(lockOrder)
		products := make(map[string]*entity.Product, len(lockOrder))
		for _, id := range lockOrder {
			p, err := repos.Products.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			products[id] = p
		}
		for _, id := range order {
			if needed[id].GreaterThan(products[id].StockActual) {
				return insufficientStock(products[id], needed[id])
			}
		}

		meta := issueMeta{
			Reason: "Salida por receta base: " + recipe.DishName,
			Source: "RECETA:" + recipe.ID,
			UserID: in.UserID,
			Now:    now,
		}
		out := &RecipeIssueResult{}
		for _, id := range order {
			qty := needed[id]
			if !qty.IsPositive() {
				continue
			}
			movs, err := allocate(ctx, repos, uc.log, id, qty, meta)
			if err != nil {
				return err
			}
			out.Movements = append(out.Movements, movs...)
			stock, err := repos.Products.AddStock(ctx, id, qty.Neg())
			if err != nil {
				return err
			}
			alert, err := checkStockAlert(ctx, repos.Alerts, products[id], stock, now)
			if err != nil {
				return err
			}
			if alert != nil {
				out.Alerts = append(out.Alerts, alert)
			}
		}
		res = out
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publishAlerts(ctx, res.Alerts)
	return res, nil
}

// VoidMovement anula un movimiento aplicando el delta inverso sobre su lote y el stock del producto.
func (uc *LedgerUseCase) VoidMovement(ctx context.Context, movementID, userID string) (*VoidResult, error) {
	if movementID == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el movimiento es obligatorio")
	}

	var res *VoidResult
	var created []*entity.Alert
	err := uc.withRetry(ctx, "void", func(repos Repos) error {
		created = nil
		now := uc.now()
		// leer sin bloqueo para conocer el producto; el producto se bloquea antes que el movimiento
		current, err := repos.Movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		product, err := repos.Products.GetForUpdate(ctx, current.ProductID)
		if err != nil {
			return err
		}
		mov, err := repos.Movements.GetForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if mov.Voided {
			return domain.Errorf(domain.ErrAlreadyVoided, "el movimiento %s ya fue anulado", mov.ID)
		}

		delta := mov.SignedQuantity().Neg()
		switch mov.Kind {
		case entity.MovementReceipt:
			if err := repos.Lots.Decrement(ctx, mov.LotID, mov.Quantity); err != nil {
				if errors.Is(err, domain.ErrInsufficientLotQuantity) {
					return domain.Errorf(domain.ErrInvalidReversal,
						"el lote de la entrada ya fue consumido; no se puede anular %s", mov.Quantity.String())
				}
				return err
			}
		case entity.MovementIssue:
			if err := repos.Lots.Increment(ctx, mov.LotID, mov.Quantity); err != nil {
				return err
			}
		default:
			return domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento desconocido %q", mov.Kind)
		}

		stock, err := repos.Products.AddStock(ctx, mov.ProductID, delta)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return domain.Errorf(domain.ErrInvalidReversal, "la anulación dejaría el stock en negativo")
			}
			return err
		}
		if err := repos.Movements.MarkVoided(ctx, mov.ID, entity.VoidNote); err != nil {
			return err
		}
		mov.Voided = true
		mov.Reason = AppendVoidNote(mov.Reason)

		var alert *entity.Alert
		if delta.IsNegative() {
			if alert, err = checkStockAlert(ctx, repos.Alerts, product, stock, now); err != nil {
				return err
			}
			if alert != nil {
				created = append(created, alert)
			}
		}
		uc.log.Info().Str("movement_id", mov.ID).Str("user_id", userID).Str("kind", string(mov.Kind)).Msg("movimiento anulado")
		res = &VoidResult{Movement: mov, StockActual: stock, Alert: alert}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publishAlerts(ctx, created)
	return res, nil
}

// AppendVoidNote añade la nota de anulación al motivo original.
func AppendVoidNote(reason string) string {
	if strings.TrimSpace(reason) == "" {
		return entity.VoidNote
	}
	return reason + " | " + entity.VoidNote
}

func insufficientStock(p *entity.Product, requested decimal.Decimal) error {
	return domain.Errorf(domain.ErrInsufficientStock,
		"stock insuficiente para '%s': disponible %s, solicitado %s", p.Name, p.StockActual.String(), requested.String())
}

// withRetry ejecuta fn en una transacción y la repite ante ErrConcurrentModification.
// Una salida que agota los reintentos termina en ErrStockAllocationFailed.
func (uc *LedgerUseCase) withRetry(ctx context.Context, op string, fn func(repos Repos) error) error {
	var err error
	for attempt := 1; attempt <= uc.opts.MaxRetries; attempt++ {
		err = uc.txRunner.Run(ctx, fn)
		if !errors.Is(err, domain.ErrConcurrentModification) {
			return err
		}
		uc.log.Warn().Err(err).Str("op", op).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando")
		if attempt == uc.opts.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(uc.opts.RetryBackoff * time.Duration(attempt)):
		}
	}
	if op == "issue" || op == "recipe_issue" {
		uc.log.Error().Err(err).Str("op", op).Msg("reintentos agotados")
		return &domain.Error{Kind: domain.ErrStockAllocationFailed, Msg: "no se pudo asignar la salida tras varios intentos: " + err.Error()}
	}
	return err
}
