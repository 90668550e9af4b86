package dto

import (
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// AlertResponse salida de una alerta de stock.
type AlertResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	Resolved  bool      `json:"resolved"`
}

func NewAlertResponse(a *entity.Alert) AlertResponse {
	return AlertResponse{
		ID:        a.ID,
		ProductID: a.ProductID,
		Message:   a.Message,
		Priority:  a.Priority,
		CreatedAt: a.CreatedAt,
		Resolved:  a.Resolved,
	}
}

// NewAlertPtr igual que NewAlertResponse pero admite nil.
func NewAlertPtr(a *entity.Alert) *AlertResponse {
	if a == nil {
		return nil
	}
	r := NewAlertResponse(a)
	return &r
}

func NewAlertList(list []*entity.Alert) []AlertResponse {
	out := make([]AlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, NewAlertResponse(a))
	}
	return out
}
