package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/HestiaEstates/listing-api/internal/domain/appointment"
	"github.com/HestiaEstates/listing-api/internal/httperr"
	"github.com/HestiaEstates/listing-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Property
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProperty(
	ctx context.Context,
	id uint,
) (*models.Property, error) {

	var prop models.Property
	if err := r.db.WithContext(ctx).First(&prop, id).Error; err != nil {
		return nil, err
	}
	return &prop, nil
}

func (r *AppointmentGormRepository) GetProgress(
	ctx context.Context,
	propertyID uint,
) (*models.ListingProgress, error) {

	var progress models.ListingProgress
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *AppointmentGormRepository) GetVisitSettings(
	ctx context.Context,
	propertyID uint,
) (*models.VisitSettings, error) {

	var settings models.VisitSettings
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// --------------------------------------------------
// Appointment (create / pair invariant)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// The property row is the serialization point: concurrent requests
		// for the same pair queue on this lock even when the pair has no
		// appointment rows yet.
		var prop models.Property
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&prop, ap.PropertyID).Error; err != nil {
			return err
		}

		var count int64
		if err := activePairGuard(tx, ap.PropertyID, ap.BuyerID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeConflict)
		}

		if err := tx.Create(ap).Error; err != nil {
			if isUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeConflict)
			}
			return err
		}

		return nil
	})
}

// activePairGuard selects the pair's non-terminal appointments. The count
// carries no locking clause: Postgres rejects FOR UPDATE on aggregates, and
// the property row lock already serializes the check.
func activePairGuard(tx *gorm.DB, propertyID, buyerID uint) *gorm.DB {
	return tx.
		Model(&models.Appointment{}).
		Where(
			"property_id = ? AND buyer_id = ? AND status IN ?",
			propertyID,
			buyerID,
			[]string{string(domain.StatusPending), string(domain.StatusAccepted)},
		)
}

// isUniqueViolation matches the partial unique index on active pairs, the
// backstop for writers outside this repository.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *AppointmentGormRepository) LatestForPair(
	ctx context.Context,
	propertyID uint,
	buyerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND buyer_id = ?", propertyID, buyerID).
		Order("created_at DESC, id DESC").
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateLocked(
	ctx context.Context,
	id uint,
	mutate func(*models.Appointment) error,
) (*models.Appointment, error) {

	var ap models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ap, id).Error; err != nil {
			return err
		}

		if err := mutate(&ap); err != nil {
			return err
		}

		return tx.Save(&ap).Error
	})

	if err != nil {
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.PropertyID != 0 {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.BuyerID != 0 {
		q = q.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var aps []models.Appointment
	if err := q.Order("date ASC").Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
