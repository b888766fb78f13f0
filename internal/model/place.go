// Package model defines database models
package model

type Place struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;index" json:"id"`
	AuthorID    string `gorm:"index" json:"-"`
	Title       string `gorm:"not null" json:"title"`
	Location    string `gorm:"not null" json:"location"`
	Description string `json:"description"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null" json:"created_at"` // unix millisecond timestamp
}
