//go:build integration

package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"github.com/entradalive/ticketing/internal/repository"
	"github.com/entradalive/ticketing/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestUser(t *testing.T, n int) *models.User {
	t.Helper()
	user := &models.User{
		SubjectID: fmt.Sprintf("sub-%03d", n),
		Email:     fmt.Sprintf("user-%03d@example.com", n),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%03d", n),
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

// createTestEvent seeds an active event with one section of seatCount seats
// and returns the event and the seat IDs.
func createTestEvent(t *testing.T, title string, seatCount int, price float64) (*models.Event, []uint) {
	t.Helper()
	event := &models.Event{
		Title:        title,
		Description:  "test",
		Date:         time.Now().Format("2006-01-02"),
		Time:         "21:00",
		VenueName:    "Teatro Central",
		VenueAddress: "Calle 1",
		VenueCity:    "Santiago",
		Category:     "music",
		Status:       models.EventActive,
	}
	require.NoError(t, testDB.Create(event).Error)

	section := &models.Section{
		EventID: event.ID,
		Name:    "General",
		Type:    models.SectionGeneral,
		Price:   price,
	}
	require.NoError(t, testDB.Create(section).Error)

	seatIDs := make([]uint, 0, seatCount)
	for i := 1; i <= seatCount; i++ {
		seat := &models.Seat{
			SectionID:  section.ID,
			RowName:    "A",
			SeatNumber: i,
			Status:     models.SeatAvailable,
		}
		require.NoError(t, testDB.Create(seat).Error)
		seatIDs = append(seatIDs, seat.ID)
	}
	return event, seatIDs
}

func newReservationService() service.ReservationService {
	return service.NewReservationService(
		repository.NewEventRepository(testDB),
		repository.NewSeatRepository(testDB),
		repository.NewOrderRepository(testDB),
		repository.NewTicketRepository(testDB),
		nil,
	)
}

// 20 users race for the same two seats. Exactly one order wins; everyone
// else gets the seats-unavailable error.
func TestConcurrentReservation_SameSeats(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Sold Out", 2, 25000)
	svc := newReservationService()

	totalUsers := 20
	users := make([]*models.User, totalUsers)
	for i := 0; i < totalUsers; i++ {
		users[i] = createTestUser(t, i)
	}

	var wg sync.WaitGroup
	results := make(chan *models.Order, totalUsers)
	errs := make(chan error, totalUsers)

	wg.Add(totalUsers)
	for i := 0; i < totalUsers; i++ {
		go func(idx int) {
			defer wg.Done()
			order, _, err := svc.Reserve(context.Background(), users[idx].ID, event.ID, seatIDs, 50000)
			if err != nil {
				errs <- err
				return
			}
			results <- order
		}(i)
	}
	wg.Wait()
	close(results)
	close(errs)

	won := 0
	for range results {
		won++
	}
	lost := 0
	for err := range errs {
		assert.ErrorIs(t, err, service.ErrSeatsUnavailable)
		lost++
	}

	assert.Equal(t, 1, won, "exactly one reservation should win")
	assert.Equal(t, totalUsers-1, lost)

	var reserved int64
	testDB.Model(&models.Seat{}).Where("status = ?", models.SeatReserved).Count(&reserved)
	assert.Equal(t, int64(2), reserved)

	var tickets int64
	testDB.Model(&models.Ticket{}).Where("status = ?", models.TicketReserved).Count(&tickets)
	assert.Equal(t, int64(2), tickets)
}

func TestReserve_InactiveEvent(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Cancelado", 2, 25000)
	testDB.Model(&models.Event{}).Where("id = ?", event.ID).Update("status", models.EventCancelled)

	user := createTestUser(t, 1)
	svc := newReservationService()

	_, _, err := svc.Reserve(context.Background(), user.ID, event.ID, seatIDs, 50000)
	assert.ErrorIs(t, err, service.ErrEventNotActive)
}

func TestConfirm_ActivatesTicketsAndSellsSeats(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Confirmado", 2, 25000)
	user := createTestUser(t, 1)
	svc := newReservationService()

	order, _, err := svc.Reserve(context.Background(), user.ID, event.ID, seatIDs, 50000)
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCompleted, confirmed.Status)

	var sold int64
	testDB.Model(&models.Seat{}).Where("status = ?", models.SeatSold).Count(&sold)
	assert.Equal(t, int64(2), sold)

	var active int64
	testDB.Model(&models.Ticket{}).Where("order_id = ? AND status = ?", order.ID, models.TicketActive).Count(&active)
	assert.Equal(t, int64(2), active)
}

func TestConfirm_WrongUser(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Ajeno", 1, 25000)
	owner := createTestUser(t, 1)
	other := createTestUser(t, 2)
	svc := newReservationService()

	order, _, err := svc.Reserve(context.Background(), owner.ID, event.ID, seatIDs, 25000)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), other.ID, order.ID)
	assert.ErrorIs(t, err, service.ErrOrderNotFound)

	var stored models.Order
	require.NoError(t, testDB.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderPending, stored.Status)
}

func TestConfirm_Twice(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Doble", 1, 25000)
	user := createTestUser(t, 1)
	svc := newReservationService()

	order, _, err := svc.Reserve(context.Background(), user.ID, event.ID, seatIDs, 25000)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), user.ID, order.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), user.ID, order.ID)
	assert.ErrorIs(t, err, service.ErrOrderNotPending)
}

// Expired holds are reclaimed: seats back to available, tickets cancelled,
// the order cancelled once no live tickets remain.
func TestReclaimExpired_ReleasesHold(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Expirado", 2, 25000)
	user := createTestUser(t, 1)
	svc := newReservationService()

	order, expiresAt, err := svc.Reserve(context.Background(), user.ID, event.ID, seatIDs, 50000)
	require.NoError(t, err)

	reclaimed, err := svc.ReclaimExpired(context.Background(), expiresAt.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, reclaimed)

	var available int64
	testDB.Model(&models.Seat{}).Where("status = ?", models.SeatAvailable).Count(&available)
	assert.Equal(t, int64(2), available)

	var cancelledTickets int64
	testDB.Model(&models.Ticket{}).Where("order_id = ? AND status = ?", order.ID, models.TicketCancelled).Count(&cancelledTickets)
	assert.Equal(t, int64(2), cancelledTickets)

	var stored models.Order
	require.NoError(t, testDB.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderCancelled, stored.Status)

	// The seats can be reserved again by someone else.
	other := createTestUser(t, 2)
	_, _, err = svc.Reserve(context.Background(), other.ID, event.ID, seatIDs, 50000)
	assert.NoError(t, err)
}

func TestReclaimExpired_LeavesUnexpiredHolds(t *testing.T) {
	cleanTables()
	event, seatIDs := createTestEvent(t, "Concierto Vigente", 1, 25000)
	user := createTestUser(t, 1)
	svc := newReservationService()

	_, _, err := svc.Reserve(context.Background(), user.ID, event.ID, seatIDs, 25000)
	require.NoError(t, err)

	reclaimed, err := svc.ReclaimExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, reclaimed)

	var reserved int64
	testDB.Model(&models.Seat{}).Where("status = ?", models.SeatReserved).Count(&reserved)
	assert.Equal(t, int64(1), reserved)
}
