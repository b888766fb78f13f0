package service

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/validators"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type Places struct {
	db *gorm.DB
}

func NewPlaces(db *gorm.DB) *Places {
	return &Places{db: db}
}

// List returns every place, newest first
func (p *Places) List(ctx context.Context) ([]model.Place, error) {
	var places []model.Place

	err := p.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&places).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list places, %w", err)
	}

	return places, nil
}

// Create validates and stores a place authored by authorID
func (p *Places) Create(ctx context.Context, authorID string, place *model.Place) error {
	place.Title = strings.TrimSpace(place.Title)
	place.Location = strings.TrimSpace(place.Location)
	place.Description = strings.TrimSpace(place.Description)

	if err := validators.PlaceValidator(place.Title, place.Location); err != nil {
		return &ValidationError{Err: err}
	}

	place.AuthorID = authorID

	if err := p.db.WithContext(ctx).Create(place).Error; err != nil {
		return fmt.Errorf("failed to create place, %w", err)
	}

	return nil
}
