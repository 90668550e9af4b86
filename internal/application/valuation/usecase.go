package valuation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// PeriodLayout formato del periodo contable (año-mes).
const PeriodLayout = "2006-01"

// UseCase genera, cierra y consulta snapshots de valorización del inventario.
type UseCase struct {
	valuations repository.ValuationRepository
	lots       repository.LotRepository
	movements  repository.MovementRepository
	loc        *time.Location
	log        zerolog.Logger
	printer    *message.Printer
	now        func() time.Time
}

// NewUseCase construye el motor. loc define los límites del mes (nil = UTC).
func NewUseCase(
	valuations repository.ValuationRepository,
	lots repository.LotRepository,
	movements repository.MovementRepository,
	loc *time.Location,
	log zerolog.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		valuations: valuations,
		lots:       lots,
		movements:  movements,
		loc:        loc,
		log:        log.With().Str("component", "valuation").Logger(),
		printer:    message.NewPrinter(language.Spanish),
		now:        time.Now,
	}
}

// Methods catálogo de métodos de valorización admitidos.
func (uc *UseCase) Methods() []string {
	return entity.ValuationMethods()
}

// PeriodBounds devuelve [inicio, inicioSiguienteMes) del periodo en la zona indicada.
func PeriodBounds(period string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(PeriodLayout, period, loc)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Errorf(domain.ErrInvalidInput, "periodo inválido %q, se espera AAAA-MM", period)
	}
	return start, start.AddDate(0, 1, 0), nil
}

// Run calcula el valor del inventario (Σ saldo × costo del lote) y el costo de las salidas del periodo
// y persiste el snapshot abierto.
func (uc *UseCase) Run(ctx context.Context, period, method, userID string) (*entity.ValuationPeriod, error) {
	from, to, err := PeriodBounds(period, uc.loc)
	if err != nil {
		return nil, err
	}
	if !validMethod(method) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "método de valorización inválido %q", method)
	}

	var inventoryValue, issueCost decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.lots.SumInventoryValue(gctx)
		inventoryValue = v
		return err
	})
	g.Go(func() error {
		v, err := uc.movements.SumIssueCost(gctx, from, to)
		issueCost = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if inventoryValue.IsNegative() {
		inventoryValue = decimal.Zero
	}
	if issueCost.IsNegative() {
		issueCost = decimal.Zero
	}

	v := &entity.ValuationPeriod{
		ID:              uuid.New().String(),
		Period:          period,
		Method:          method,
		InventoryValue:  inventoryValue,
		PeriodIssueCost: issueCost,
		Observations:    uc.observation(method, inventoryValue, issueCost),
		CreatedBy:       userID,
		CreatedAt:       uc.now(),
	}
	if err := uc.valuations.Create(ctx, v); err != nil {
		return nil, err
	}
	uc.log.Info().Str("period", period).Str("method", method).Str("inventory_value", inventoryValue.String()).Msg("valorización generada")
	return v, nil
}

func (uc *UseCase) observation(method string, inventoryValue, issueCost decimal.Decimal) string {
	return uc.printer.Sprintf("Valorización %s: inventario $%.2f, costo de salidas del periodo $%.2f",
		method, inventoryValue.InexactFloat64(), issueCost.InexactFloat64())
}

// Close cierra el periodo. Observaciones en blanco conservan las anteriores.
func (uc *UseCase) Close(ctx context.Context, id, observations string) (*entity.ValuationPeriod, error) {
	v, err := uc.valuations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.Closed {
		return nil, domain.Errorf(domain.ErrOperationNotAllowed, "el periodo %s ya está cerrado", v.Period)
	}
	if obs := strings.TrimSpace(observations); obs != "" {
		v.Observations = obs
	}
	if err := uc.valuations.Close(ctx, v.ID, v.Observations); err != nil {
		return nil, err
	}
	v.Closed = true
	return v, nil
}

// Delete elimina un snapshot abierto. Los cerrados son inmutables.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	v, err := uc.valuations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Closed {
		return domain.Errorf(domain.ErrOperationNotAllowed, "no se puede eliminar un periodo cerrado")
	}
	return uc.valuations.Delete(ctx, id)
}

// Latest última valorización generada.
func (uc *UseCase) Latest(ctx context.Context) (*entity.ValuationPeriod, error) {
	return uc.valuations.Latest(ctx)
}

func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.ValuationPeriod, error) {
	return uc.valuations.GetByID(ctx, id)
}

func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.ValuationPeriod, error) {
	if limit <= 0 {
		limit = 20
	}
	return uc.valuations.List(ctx, limit, offset)
}

func validMethod(m string) bool {
	for _, known := range entity.ValuationMethods() {
		if m == known {
			return true
		}
	}
	return false
}
