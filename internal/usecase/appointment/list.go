package appointment

import (
	"context"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/dto"
)

type ListVisits struct {
	repo domain.Repository
}

func NewListVisits(repo domain.Repository) *ListVisits {
	return &ListVisits{repo: repo}
}

func (uc *ListVisits) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			PropertyID: ap.PropertyID,
			BuyerID:    ap.BuyerID,
			Date:       ap.Date,
			Status:     ap.Status,
			Outcome:    ap.Outcome,
			Comment:    ap.Comment,
			CreatedAt:  ap.CreatedAt,
		})
	}

	return out, nil
}
