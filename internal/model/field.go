package model

import "time"

// Field represents a bookable sports field.  Operating hours are kept
// as zero-padded "HH:MM" wall-clock strings with no timezone; the whole
// system assumes a single local timezone for all fields.  OpenTime must
// sort before CloseTime — overnight windows are not supported.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – human readable label, unique per venue.
//	Sport        – kind of field (futsal, badminton, basket, ...).
//	Size         – pitch dimensions as free text.
//	Description  – optional marketing text.
//	PricePerHour – rental price per hour in whole rupiah.
//	OpenTime     – first bookable wall-clock time ("HH:MM").
//	CloseTime    – closing wall-clock time ("HH:MM"), exclusive.
//	IsActive     – whether the field accepts new bookings.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type Field struct {
	ID           uint64    `json:"id"`             // fields.id
	Name         string    `json:"name"`           // fields.name
	Sport        string    `json:"sport"`          // fields.sport
	Size         string    `json:"size"`           // fields.size
	Description  *string   `json:"description"`    // fields.description (nullable)
	PricePerHour int64     `json:"price_per_hour"` // fields.price_per_hour
	OpenTime     string    `json:"open_time"`      // fields.open_time  ("HH:MM")
	CloseTime    string    `json:"close_time"`     // fields.close_time ("HH:MM")
	IsActive     bool      `json:"is_active"`      // fields.is_active
	CreatedAt    time.Time `json:"created_at"`     // fields.created_at
	UpdatedAt    time.Time `json:"updated_at"`     // fields.updated_at
}
