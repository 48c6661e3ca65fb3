package db

import (
	"time"

	"gorm.io/datatypes"
)

// --------------------------------------------------------------------------------------
// Embedded document store

// DocumentEntry one document held by the embedded document store
//
// Each database of the embedded store is its own table sharing this layout.
type DocumentEntry struct {
	// ID document ID
	ID string `gorm:"column:id;primaryKey"`
	// Revision current revision token
	Revision string `gorm:"column:rev;not null"`
	// Body document JSON body
	Body datatypes.JSON `gorm:"column:body;not null"`
	// CreatedAt entry creation timestamp
	CreatedAt time.Time
	// UpdatedAt entry update timestamp
	UpdatedAt time.Time
}

// TableName hard code table name
func (DocumentEntry) TableName() string {
	return DefaultDatabaseName
}
