package repository

import (
	"context"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SectionSummary is a section with its seat counts for the event detail view.
type SectionSummary struct {
	models.Section
	TotalSeats     int `json:"total_seats"`
	AvailableSeats int `json:"available_seats"`
}

type SeatRepository interface {
	CreateSection(ctx context.Context, tx *gorm.DB, section *models.Section) error
	CreateSeats(ctx context.Context, tx *gorm.DB, seats []models.Seat) error
	FindSectionsByEvent(ctx context.Context, eventID uint) ([]SectionSummary, error)
	FindSectionByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error)
	FindSeatsBySections(ctx context.Context, sectionIDs []uint) ([]models.Seat, error)
	// FindAvailableForUpdate locks the requested seats that are still available.
	FindAvailableForUpdate(ctx context.Context, tx *gorm.DB, seatIDs []uint) ([]models.Seat, error)
	Reserve(ctx context.Context, tx *gorm.DB, seatIDs []uint, until time.Time) error
	MarkSold(ctx context.Context, tx *gorm.DB, seatIDs []uint) error
	FindExpiredForUpdate(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.Seat, error)
	Release(ctx context.Context, tx *gorm.DB, seatIDs []uint) error
	GetDB() *gorm.DB
}

type seatRepository struct {
	db *gorm.DB
}

func NewSeatRepository(db *gorm.DB) SeatRepository {
	return &seatRepository{db: db}
}

func (r *seatRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *seatRepository) CreateSection(ctx context.Context, tx *gorm.DB, section *models.Section) error {
	return tx.WithContext(ctx).Create(section).Error
}

func (r *seatRepository) CreateSeats(ctx context.Context, tx *gorm.DB, seats []models.Seat) error {
	return tx.WithContext(ctx).Create(&seats).Error
}

func (r *seatRepository) FindSectionsByEvent(ctx context.Context, eventID uint) ([]SectionSummary, error) {
	var sections []SectionSummary
	err := r.db.WithContext(ctx).
		Model(&models.Section{}).
		Select(`sections.*,
			COUNT(seats.id) AS total_seats,
			COUNT(CASE WHEN seats.status = 'available' THEN 1 END) AS available_seats`).
		Joins("LEFT JOIN seats ON seats.section_id = sections.id").
		Where("sections.event_id = ?", eventID).
		Group("sections.id").
		Order("sections.name ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *seatRepository) FindSectionByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Section, error) {
	var section models.Section
	if err := tx.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *seatRepository) FindSeatsBySections(ctx context.Context, sectionIDs []uint) ([]models.Seat, error) {
	var seats []models.Seat
	err := r.db.WithContext(ctx).
		Where("section_id IN ?", sectionIDs).
		Order("section_id, row_name, seat_number").
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *seatRepository) FindAvailableForUpdate(ctx context.Context, tx *gorm.DB, seatIDs []uint) ([]models.Seat, error) {
	var seats []models.Seat
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND status = ?", seatIDs, models.SeatAvailable).
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *seatRepository) Reserve(ctx context.Context, tx *gorm.DB, seatIDs []uint, until time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.Seat{}).
		Where("id IN ?", seatIDs).
		Updates(map[string]any{
			"status":         models.SeatReserved,
			"reserved_until": until,
		}).Error
}

func (r *seatRepository) MarkSold(ctx context.Context, tx *gorm.DB, seatIDs []uint) error {
	return tx.WithContext(ctx).
		Model(&models.Seat{}).
		Where("id IN ?", seatIDs).
		Updates(map[string]any{
			"status":         models.SeatSold,
			"reserved_until": nil,
		}).Error
}

func (r *seatRepository) FindExpiredForUpdate(ctx context.Context, tx *gorm.DB, now time.Time) ([]models.Seat, error) {
	var seats []models.Seat
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? AND reserved_until IS NOT NULL AND reserved_until < ?", models.SeatReserved, now).
		Find(&seats).Error
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (r *seatRepository) Release(ctx context.Context, tx *gorm.DB, seatIDs []uint) error {
	return tx.WithContext(ctx).
		Model(&models.Seat{}).
		Where("id IN ?", seatIDs).
		Updates(map[string]any{
			"status":         models.SeatAvailable,
			"reserved_until": nil,
		}).Error
}
