package dto

import "time"

type AppointmentListDTO struct {
	ID         uint      `json:"id"`
	PropertyID uint      `json:"property_id"`
	BuyerID    uint      `json:"buyer_id"`
	Date       time.Time `json:"date"`
	Status     string    `json:"status"`
	Outcome    string    `json:"outcome,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
