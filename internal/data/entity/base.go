package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record is embedded by entities that are updated after creation.
type Record struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewRecord(now time.Time) Record {
	return Record{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
}

// CreatedRecord is embedded by write-once entities.
type CreatedRecord struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

func NewCreatedRecord(now time.Time) CreatedRecord {
	return CreatedRecord{ID: uuid.New(), CreatedAt: now}
}
