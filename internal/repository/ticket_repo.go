package repository

import (
	"context"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
)

// OrderTicketRow is one ticket of an order with joined seat/section fields.
type OrderTicketRow struct {
	ID          uint                `json:"id"`
	OrderID     uint                `json:"order_id"`
	ScanCode    string              `json:"scan_code"`
	Status      models.TicketStatus `json:"status"`
	Price       float64             `json:"price"`
	SectionName string              `json:"section_name"`
	RowName     string              `json:"row_name"`
	SeatNumber  int                 `json:"seat_number"`
}

// ScanRow carries the full joined context for a scan-code lookup.
type ScanRow struct {
	ID            uint
	TicketNumber  string
	Status        models.TicketStatus
	UsedAt        *time.Time
	Price         float64
	EventTitle    string
	EventDate     string
	EventTime     string
	VenueName     string
	VenueAddress  string
	SectionName   string
	RowName       string
	SeatNumber    int
	FirstName     string
	LastName      string
	CustomerEmail string
	OrderNumber   string
	UserID        uint
}

type TicketRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error
	ListByOrders(ctx context.Context, orderIDs []uint) ([]OrderTicketRow, error)
	FindByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.Ticket, error)
	FindScanContext(ctx context.Context, scanCode string) (*ScanRow, error)
	// MarkUsedIfActive is the guarded scan-once transition; zero affected rows
	// means the ticket was not active-and-unused at the time of the update.
	MarkUsedIfActive(ctx context.Context, ticketID uint, usedBy string, at time.Time) (int64, error)
	ActivateByOrder(ctx context.Context, tx *gorm.DB, orderID uint) error
	CancelReservedBySeats(ctx context.Context, tx *gorm.DB, seatIDs []uint) ([]uint, error)
	GetDB() *gorm.DB
}

type ticketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *ticketRepository) CreateBatch(ctx context.Context, tx *gorm.DB, tickets []models.Ticket) error {
	return tx.WithContext(ctx).Create(&tickets).Error
}

func (r *ticketRepository) ListByOrders(ctx context.Context, orderIDs []uint) ([]OrderTicketRow, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var rows []OrderTicketRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id, t.order_id, t.scan_code, t.status, t.price,
			sec.name AS section_name, s.row_name, s.seat_number
		FROM tickets t
		JOIN seats s ON t.seat_id = s.id
		JOIN sections sec ON t.section_id = sec.id
		WHERE t.order_id IN ?
		ORDER BY sec.name, s.row_name, s.seat_number
	`, orderIDs).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ticketRepository) FindByOrderID(ctx context.Context, tx *gorm.DB, orderID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	if err := tx.WithContext(ctx).Where("order_id = ?", orderID).Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *ticketRepository) FindScanContext(ctx context.Context, scanCode string) (*ScanRow, error) {
	var row ScanRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			t.id, t.ticket_number, t.status, t.used_at, t.price,
			e.title AS event_title, e.date AS event_date, e.time AS event_time,
			e.venue_name, e.venue_address,
			sec.name AS section_name, s.row_name, s.seat_number,
			u.first_name, u.last_name, u.email AS customer_email,
			o.order_number, o.user_id
		FROM tickets t
		JOIN orders o ON t.order_id = o.id
		JOIN events e ON t.event_id = e.id
		JOIN sections sec ON t.section_id = sec.id
		JOIN seats s ON t.seat_id = s.id
		JOIN users u ON o.user_id = u.id
		WHERE t.scan_code = ?
	`, scanCode).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *ticketRepository) MarkUsedIfActive(ctx context.Context, ticketID uint, usedBy string, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND status = ? AND used_at IS NULL", ticketID, models.TicketActive).
		Updates(map[string]any{
			"status":  models.TicketUsed,
			"used_at": at,
			"used_by": usedBy,
		})
	return result.RowsAffected, result.Error
}

func (r *ticketRepository) ActivateByOrder(ctx context.Context, tx *gorm.DB, orderID uint) error {
	return tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("order_id = ? AND status = ?", orderID, models.TicketReserved).
		Update("status", models.TicketActive).Error
}

// CancelReservedBySeats cancels reserved tickets on the given seats and
// returns their order ids.
func (r *ticketRepository) CancelReservedBySeats(ctx context.Context, tx *gorm.DB, seatIDs []uint) ([]uint, error) {
	var tickets []models.Ticket
	err := tx.WithContext(ctx).
		Where("seat_id IN ? AND status = ?", seatIDs, models.TicketReserved).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}

	if len(tickets) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(tickets))
	orderSet := make(map[uint]struct{})
	var orderIDs []uint
	for _, t := range tickets {
		ids = append(ids, t.ID)
		if _, seen := orderSet[t.OrderID]; !seen {
			orderSet[t.OrderID] = struct{}{}
			orderIDs = append(orderIDs, t.OrderID)
		}
	}

	err = tx.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id IN ?", ids).
		Update("status", models.TicketCancelled).Error
	if err != nil {
		return nil, err
	}
	return orderIDs, nil
}
