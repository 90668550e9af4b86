package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// LotResponse salida de un lote.
type LotResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	PurchasedAt       time.Time       `json:"purchased_at"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
	Status            string          `json:"status"`
}

// ProductLotsResponse lotes de un producto con su resumen.
type ProductLotsResponse struct {
	ProductID      string          `json:"product_id"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	AverageCost    decimal.Decimal `json:"average_cost"`
	Lots           []LotResponse   `json:"lots"`
}

func NewLotResponse(l *entity.Lot) LotResponse {
	return LotResponse{
		ID:                l.ID,
		Code:              l.Code,
		ProductID:         l.ProductID,
		WarehouseID:       l.WarehouseID,
		UnitCost:          l.UnitCost,
		TotalCost:         l.TotalCost,
		InitialQuantity:   l.InitialQuantity,
		AvailableQuantity: l.AvailableQuantity,
		PurchasedAt:       l.PurchasedAt,
		ExpiresAt:         l.ExpiresAt,
		Status:            l.Status,
	}
}

func NewLotList(list []*entity.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(list))
	for _, l := range list {
		out = append(out, NewLotResponse(l))
	}
	return out
}
