package entities

import (
	"time"

	"github.com/google/uuid"
)

// CatalogEventType represents the type of catalog change
type CatalogEventType string

const (
	CatalogEventUpserted CatalogEventType = "medicine_upserted"
	CatalogEventDeleted  CatalogEventType = "medicine_deleted"
)

// CatalogEvent announces that a medicine record changed in the backing
// store. Consumers drop their cached copies of it.
type CatalogEvent struct {
	ID         string           `json:"id"`
	MedicineID string           `json:"medicine_id"`
	EventType  CatalogEventType `json:"event_type"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewCatalogEvent creates a new catalog event
func NewCatalogEvent(medicineID string, eventType CatalogEventType) *CatalogEvent {
	return &CatalogEvent{
		ID:         uuid.New().String(),
		MedicineID: medicineID,
		EventType:  eventType,
		Timestamp:  time.Now(),
	}
}
