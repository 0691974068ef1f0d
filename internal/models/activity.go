package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity rows are hard-deleted, so there is no DeletedAt column.
type Activity struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:uuid;index;not null"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description *string   `json:"description" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Activity DTOs
type ActivityCreate struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=255"`
}

// NewActivity builds the row for ownerID. Ownership never comes from the payload.
func (in ActivityCreate) NewActivity(ownerID uuid.UUID) Activity {
	return Activity{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
	}
}

type ActivityUpdate struct {
	Title       OptionalString `json:"title" validate:"omitempty,min=1,max=255"`
	Description OptionalString `json:"description" validate:"omitempty,max=255"`
}

// Validate rejects an explicit null title; the column is NOT NULL.
func (in ActivityUpdate) Validate() error {
	if in.Title.Set && in.Title.Value == nil {
		return errors.New("title: must not be null")
	}
	return nil
}

// Changes returns the columns set in the payload, keyed by column name.
// An explicit null description clears the column.
func (in ActivityUpdate) Changes() map[string]interface{} {
	changes := map[string]interface{}{}
	if in.Title.Set && in.Title.Value != nil {
		changes["title"] = *in.Title.Value
	}
	if in.Description.Set {
		if in.Description.Value != nil {
			changes["description"] = *in.Description.Value
		} else {
			changes["description"] = nil
		}
	}
	return changes
}

type ActivitiesPublic struct {
	Data  []Activity `json:"data"`
	Count int64      `json:"count"`
}
