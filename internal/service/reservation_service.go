package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/monitoring"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/pkg/rabbitmq"
	"github.com/entradalive/ticketing/pkg/random"
	"gorm.io/gorm"
)

// HoldDuration is how long reserved seats are held for a pending order.
const HoldDuration = 10 * time.Minute

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventNotActive   = errors.New("event is not open for sale")
	ErrSeatsUnavailable = errors.New("some seats are no longer available")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderNotPending  = errors.New("order is not pending")
)

type ReservationService interface {
	// Reserve holds the seats and creates a pending order with one reserved
	// ticket per seat, all inside a single transaction with the seat rows
	// locked across the availability check.
	Reserve(ctx context.Context, userID, eventID uint, seatIDs []uint, totalAmount float64) (*models.Order, time.Time, error)
	// Confirm completes a pending order: tickets become active, seats sold.
	Confirm(ctx context.Context, userID, orderID uint) (*models.Order, error)
	// ReclaimExpired releases seats whose hold has lapsed and cancels their
	// dangling tickets and orders. Returns the number of seats released.
	ReclaimExpired(ctx context.Context, now time.Time) (int, error)
}

type reservationService struct {
	eventRepo  repository.EventRepository
	seatRepo   repository.SeatRepository
	orderRepo  repository.OrderRepository
	ticketRepo repository.TicketRepository
	publisher  *rabbitmq.Publisher
}

func NewReservationService(
	eventRepo repository.EventRepository,
	seatRepo repository.SeatRepository,
	orderRepo repository.OrderRepository,
	ticketRepo repository.TicketRepository,
	publisher *rabbitmq.Publisher,
) ReservationService {
	return &reservationService{
		eventRepo:  eventRepo,
		seatRepo:   seatRepo,
		orderRepo:  orderRepo,
		ticketRepo: ticketRepo,
		publisher:  publisher,
	}
}

func (s *reservationService) Reserve(ctx context.Context, userID, eventID uint, seatIDs []uint, totalAmount float64) (*models.Order, time.Time, error) {
	var (
		order     *models.Order
		expiresAt time.Time
	)

	err := s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, eventID)
		if err != nil {
			return ErrEventNotFound
		}
		if event.Status != models.EventActive {
			return ErrEventNotActive
		}

		// Lock the seat rows; concurrent reservations for the same seats
		// serialize here instead of racing past the availability check.
		seats, err := s.seatRepo.FindAvailableForUpdate(ctx, tx, seatIDs)
		if err != nil {
			return err
		}
		if len(seats) != len(seatIDs) {
			return ErrSeatsUnavailable
		}

		orderNumber, err := random.OrderNumber()
		if err != nil {
			return err
		}
		order = &models.Order{
			UserID:      userID,
			EventID:     eventID,
			OrderNumber: orderNumber,
			TotalAmount: totalAmount,
			Status:      models.OrderPending,
		}
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}

		expiresAt = time.Now().Add(HoldDuration)
		if err := s.seatRepo.Reserve(ctx, tx, seatIDs, expiresAt); err != nil {
			return err
		}

		sectionPrices := make(map[uint]float64)
		tickets := make([]models.Ticket, 0, len(seats))
		for _, seat := range seats {
			price, ok := sectionPrices[seat.SectionID]
			if !ok {
				section, err := s.seatRepo.FindSectionByID(ctx, tx, seat.SectionID)
				if err != nil {
					return fmt.Errorf("load section %d: %w", seat.SectionID, err)
				}
				price = section.Price
				sectionPrices[seat.SectionID] = price
			}

			ticketNumber, err := random.TicketNumber()
			if err != nil {
				return err
			}
			scanCode, err := random.ScanCode()
			if err != nil {
				return err
			}

			tickets = append(tickets, models.Ticket{
				OrderID:      order.ID,
				EventID:      eventID,
				SectionID:    seat.SectionID,
				SeatID:       seat.ID,
				TicketNumber: ticketNumber,
				ScanCode:     scanCode,
				Price:        price,
				Status:       models.TicketReserved,
			})
		}

		return s.ticketRepo.CreateBatch(ctx, tx, tickets)
	})
	if err != nil {
		if errors.Is(err, ErrSeatsUnavailable) {
			monitoring.ReservationsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, time.Time{}, err
	}

	monitoring.ReservationsTotal.WithLabelValues("reserved").Inc()
	_ = s.publisher.Publish("order.created", order)
	return order, expiresAt, nil
}

func (s *reservationService) Confirm(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order *models.Order

	err := s.orderRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			return ErrOrderNotFound
		}
		if found.UserID != userID {
			return ErrOrderNotFound
		}

		affected, err := s.orderRepo.UpdateStatusIf(ctx, tx, orderID, models.OrderPending, models.OrderCompleted)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotPending
		}

		tickets, err := s.ticketRepo.FindByOrderID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if err := s.ticketRepo.ActivateByOrder(ctx, tx, orderID); err != nil {
			return err
		}

		seatIDs := make([]uint, 0, len(tickets))
		for _, t := range tickets {
			seatIDs = append(seatIDs, t.SeatID)
		}
		if len(seatIDs) > 0 {
			if err := s.seatRepo.MarkSold(ctx, tx, seatIDs); err != nil {
				return err
			}
		}

		found.Status = models.OrderCompleted
		order = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.ReservationsTotal.WithLabelValues("confirmed").Inc()
	_ = s.publisher.Publish("order.completed", order)
	return order, nil
}

func (s *reservationService) ReclaimExpired(ctx context.Context, now time.Time) (int, error) {
	var reclaimed int

	err := s.seatRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seats, err := s.seatRepo.FindExpiredForUpdate(ctx, tx, now)
		if err != nil {
			return err
		}
		if len(seats) == 0 {
			return nil
		}

		seatIDs := make([]uint, 0, len(seats))
		for _, seat := range seats {
			seatIDs = append(seatIDs, seat.ID)
		}

		if err := s.seatRepo.Release(ctx, tx, seatIDs); err != nil {
			return err
		}

		orderIDs, err := s.ticketRepo.CancelReservedBySeats(ctx, tx, seatIDs)
		if err != nil {
			return err
		}
		if len(orderIDs) > 0 {
			if err := s.orderRepo.CancelIfNoLiveTickets(ctx, tx, orderIDs); err != nil {
				return err
			}
		}

		reclaimed = len(seatIDs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if reclaimed > 0 {
		monitoring.HoldsReclaimed.Add(float64(reclaimed))
	}
	return reclaimed, nil
}
