package usecase

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// AlertUseCase consulta y resolución de alertas. Las alertas solo se crean desde el libro mayor.
type AlertUseCase struct {
	repo repository.AlertRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(repo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{repo: repo}
}

// List alertas, opcionalmente solo las pendientes.
func (uc *AlertUseCase) List(ctx context.Context, onlyPending bool, limit, offset int) ([]dto.AlertResponse, error) {
	list, err := uc.repo.List(ctx, onlyPending, limit, offset)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertList(list), nil
}

// ListByProduct historial de alertas de un producto (sin deduplicar).
func (uc *AlertUseCase) ListByProduct(ctx context.Context, productID string) ([]dto.AlertResponse, error) {
	list, err := uc.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return dto.NewAlertList(list), nil
}

// Resolve marca la alerta como atendida. Resolver dos veces no está permitido.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string) (*dto.AlertResponse, error) {
	alert, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert.Resolved {
		return nil, domain.Errorf(domain.ErrOperationNotAllowed, "la alerta ya fue resuelta")
	}
	if err := uc.repo.MarkResolved(ctx, id); err != nil {
		return nil, err
	}
	alert.Resolved = true
	res := dto.NewAlertResponse(alert)
	return &res, nil
}
