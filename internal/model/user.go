package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"unique; not null"`
	Email        string `gorm:"unique; not null"`
	PasswordHash string `gorm:"not null"`
	// Set once at registration, cleared once the email address is verified.
	// NULL never collides with the unique index.
	VerificationToken *string `gorm:"uniqueIndex"`
	Verified          bool    `gorm:"default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Places []Place `gorm:"foreignKey:AuthorID"`
}
