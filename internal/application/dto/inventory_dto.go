package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// ReceiptRequest body para POST /api/inventory/receipts.
type ReceiptRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Reason      string          `json:"reason" validate:"max=500"`
	Source      string          `json:"source" validate:"max=100"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// IssueRequest body para POST /api/inventory/issues. warehouse_id es opcional.
type IssueRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	WarehouseID string          `json:"warehouse_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason" validate:"max=500"`
	Source      string          `json:"source" validate:"max=100"`
}

// RecipeIssueRequest body para POST /api/inventory/recipe-issues.
type RecipeIssueRequest struct {
	RecipeID string          `json:"recipe_id" validate:"required"`
	Portions decimal.Decimal `json:"portions"`
}

// MovementResponse salida de un movimiento del libro mayor.
type MovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Reason      string          `json:"reason"`
	Source      string          `json:"source"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LotID       string          `json:"lot_id"`
	UserID      string          `json:"user_id,omitempty"`
	Voided      bool            `json:"voided"`
}

// ReceiptResponse resultado de una entrada.
type ReceiptResponse struct {
	Movement    MovementResponse `json:"movement"`
	Lot         LotResponse      `json:"lot"`
	StockActual decimal.Decimal  `json:"stock_actual"`
}

// IssueResponse resultado de una salida: un movimiento por lote tocado.
type IssueResponse struct {
	Movements   []MovementResponse `json:"movements"`
	StockActual decimal.Decimal    `json:"stock_actual"`
	Alert       *AlertResponse     `json:"alert,omitempty"`
}

// RecipeIssueResponse resultado de una salida por receta.
type RecipeIssueResponse struct {
	Movements []MovementResponse `json:"movements"`
	Alerts    []AlertResponse    `json:"alerts"`
}

// VoidResponse resultado de una anulación.
type VoidResponse struct {
	Movement    MovementResponse `json:"movement"`
	StockActual decimal.Decimal  `json:"stock_actual"`
	Alert       *AlertResponse   `json:"alert,omitempty"`
}

// NewMovementResponse mapea la entidad.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		Type:        string(m.Kind),
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		OccurredAt:  m.OccurredAt,
		Reason:      m.Reason,
		Source:      m.Source,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		LotID:       m.LotID,
		UserID:      m.UserID,
		Voided:      m.Voided,
	}
}

// NewMovementList mapea una lista; nunca devuelve nil.
func NewMovementList(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, NewMovementResponse(m))
	}
	return out
}
