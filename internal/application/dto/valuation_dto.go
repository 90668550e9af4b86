package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// RunValuationRequest body para POST /api/valuations.
type RunValuationRequest struct {
	Period string `json:"period" validate:"required,len=7"`
	Method string `json:"method" validate:"required,oneof=FIFO PROMEDIO_PONDERADO"`
}

// CloseValuationRequest body para PATCH /api/valuations/:id/close.
type CloseValuationRequest struct {
	Observations string `json:"observations" validate:"max=2000"`
}

// ValuationResponse salida de un periodo de valorización.
type ValuationResponse struct {
	ID              string          `json:"id"`
	Period          string          `json:"period"`
	Method          string          `json:"method"`
	InventoryValue  decimal.Decimal `json:"inventory_value"`
	PeriodIssueCost decimal.Decimal `json:"period_issue_cost"`
	Observations    string          `json:"observations"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	Closed          bool            `json:"closed"`
}

func NewValuationResponse(v *entity.ValuationPeriod) ValuationResponse {
	return ValuationResponse{
		ID:              v.ID,
		Period:          v.Period,
		Method:          v.Method,
		InventoryValue:  v.InventoryValue,
		PeriodIssueCost: v.PeriodIssueCost,
		Observations:    v.Observations,
		CreatedBy:       v.CreatedBy,
		CreatedAt:       v.CreatedAt,
		Closed:          v.Closed,
	}
}

func NewValuationList(list []*entity.ValuationPeriod) []ValuationResponse {
	out := make([]ValuationResponse, 0, len(list))
	for _, v := range list {
		out = append(out, NewValuationResponse(v))
	}
	return out
}
