package events

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/HestiaEstates/listing-api/internal/models"
)

// Recorder persists domain events; the notification system reads the rows.
type Recorder struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Record(
	propertyID uint,
	actorID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	ev := models.DomainEvent{
		PropertyID: propertyID,
		ActorID:    actorID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Metadata:   metaJSON,
	}

	return r.db.Create(&ev).Error
}
