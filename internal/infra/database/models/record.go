package models

import (
	"time"
)

// Record mirrors a resolved upstream record. The primary key is the record
// ID, so re-mirroring the same resolution output is a no-op.
type Record struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Author    string    `json:"author" gorm:"type:text;index"`
	Kind      int       `json:"kind" gorm:"index"`
	CreatedAt int64     `json:"createdAt" gorm:"index"`
	Content   string    `json:"content" gorm:"type:text"`
	Tags      string    `json:"tags" gorm:"type:text"`
	CDate     time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
