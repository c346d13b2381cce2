package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/pkg/rabbitmq"
	"gorm.io/gorm"
)

// ErrEventHasOrders blocks deletion of events with pending or completed orders.
var ErrEventHasOrders = errors.New("cannot delete event with active orders, cancel the event instead")

type SectionWithSeats struct {
	repository.SectionSummary
	Seats []models.Seat `json:"seats"`
}

type EventDetail struct {
	Event    *models.Event
	Sections []SectionWithSeats
}

type EventService interface {
	ListActive(ctx context.Context) ([]models.Event, error)
	GetDetail(ctx context.Context, id uint) (*EventDetail, error)
	Create(ctx context.Context, event *models.Event) error
	// Update applies only the supplied fields; everything else keeps its value.
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Event, error)
	// Cancel soft-deletes: events with pending or completed orders are refused.
	Cancel(ctx context.Context, id uint) error
	CreateSection(ctx context.Context, eventID uint, section *models.Section, rows, seatsPerRow int) (*models.Section, int, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	seatRepo  repository.SeatRepository
	orderRepo repository.OrderRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(
	eventRepo repository.EventRepository,
	seatRepo repository.SeatRepository,
	orderRepo repository.OrderRepository,
	publisher *rabbitmq.Publisher,
) EventService {
	return &eventService{
		eventRepo: eventRepo,
		seatRepo:  seatRepo,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

func (s *eventService) ListActive(ctx context.Context) ([]models.Event, error) {
	return s.eventRepo.FindActive(ctx)
}

func (s *eventService) GetDetail(ctx context.Context, id uint) (*EventDetail, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	sections, err := s.seatRepo.FindSectionsByEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &EventDetail{Event: event, Sections: make([]SectionWithSeats, len(sections))}
	if len(sections) == 0 {
		return detail, nil
	}

	sectionIDs := make([]uint, len(sections))
	for i, sec := range sections {
		sectionIDs[i] = sec.ID
	}
	seats, err := s.seatRepo.FindSeatsBySections(ctx, sectionIDs)
	if err != nil {
		return nil, err
	}

	bySection := make(map[uint][]models.Seat)
	for _, seat := range seats {
		bySection[seat.SectionID] = append(bySection[seat.SectionID], seat)
	}
	for i, sec := range sections {
		detail.Sections[i] = SectionWithSeats{
			SectionSummary: sec,
			Seats:          bySection[sec.ID],
		}
	}

	return detail, nil
}

func (s *eventService) Create(ctx context.Context, event *models.Event) error {
	event.Status = models.EventActive
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	_ = s.publisher.Publish("event.created", event)
	return nil
}

func (s *eventService) Update(ctx context.Context, id uint, fields map[string]any) (*models.Event, error) {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	event, err := s.eventRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish("event.updated", event)
	return event, nil
}

func (s *eventService) Cancel(ctx context.Context, id uint) error {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	active, err := s.orderRepo.CountActiveByEvent(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrEventHasOrders
	}

	if err := s.eventRepo.UpdateStatus(ctx, s.eventRepo.GetDB(), id, models.EventCancelled); err != nil {
		return err
	}

	event.Status = models.EventCancelled
	_ = s.publisher.Publish("event.cancelled", event)
	return nil
}

// CreateSection provisions a section and its rows x seatsPerRow seat grid.
// Rows are labelled A, B, C and so on.
func (s *eventService) CreateSection(ctx context.Context, eventID uint, section *models.Section, rows, seatsPerRow int) (*models.Section, int, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrEventNotFound
		}
		return nil, 0, err
	}

	section.EventID = eventID

	err := s.seatRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.seatRepo.CreateSection(ctx, tx, section); err != nil {
			return err
		}

		seats := make([]models.Seat, 0, rows*seatsPerRow)
		for row := 0; row < rows; row++ {
			rowName := rowLabel(row)
			for num := 1; num <= seatsPerRow; num++ {
				seats = append(seats, models.Seat{
					SectionID:  section.ID,
					RowName:    rowName,
					SeatNumber: num,
					Status:     models.SeatAvailable,
					X:          num,
					Y:          row + 1,
				})
			}
		}
		return s.seatRepo.CreateSeats(ctx, tx, seats)
	})
	if err != nil {
		return nil, 0, err
	}

	return section, rows * seatsPerRow, nil
}

// rowLabel converts 0-based row index to A, B, ..., Z, AA, AB, ...
func rowLabel(i int) string {
	label := ""
	for {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}
