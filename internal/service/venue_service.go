package service

import (
	"context"
	"fmt"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"gorm.io/gorm"
)

type VenueService interface {
	ListActive(ctx context.Context) ([]models.Venue, error)
	Create(ctx context.Context, venue *models.Venue, createdBy uint) error
}

type venueService struct {
	venueRepo repository.VenueRepository
	logRepo   repository.SecurityLogRepository
	db        *gorm.DB
}

func NewVenueService(venueRepo repository.VenueRepository, logRepo repository.SecurityLogRepository, db *gorm.DB) VenueService {
	return &venueService{venueRepo: venueRepo, logRepo: logRepo, db: db}
}

func (s *venueService) ListActive(ctx context.Context) ([]models.Venue, error) {
	return s.venueRepo.FindActive(ctx)
}

func (s *venueService) Create(ctx context.Context, venue *models.Venue, createdBy uint) error {
	if venue.Country == "" {
		venue.Country = "Chile"
	}
	venue.Status = "active"

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}

	entry := &models.SecurityLog{
		UserID:     &createdBy,
		Action:     "create",
		Resource:   "venue",
		ResourceID: &venue.ID,
		Status:     "success",
		Details:    models.StringMap{"venue_name": venue.Name},
	}
	return s.logRepo.Append(ctx, s.db, entry)
}
