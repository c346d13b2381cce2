package repository

import (
	"context"
	"time"

	"github.com/entradalive/ticketing/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserOrderRow is one row of a user's order history with joined event fields.
type UserOrderRow struct {
	ID           uint               `json:"id"`
	OrderNumber  string             `json:"order_number"`
	TotalAmount  float64            `json:"total_amount"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	EventTitle   string             `json:"event_title"`
	EventDate    string             `json:"event_date"`
	EventTime    string             `json:"event_time"`
	VenueName    string             `json:"venue_name"`
	VenueAddress string             `json:"venue_address"`
	TicketCount  int                `json:"ticket_count"`
}

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]UserOrderRow, error)
	// UpdateStatusIf transitions the order only when it still has the expected
	// status; the affected-row count tells the caller whether it won.
	UpdateStatusIf(ctx context.Context, tx *gorm.DB, orderID uint, from, to models.OrderStatus) (int64, error)
	CountActiveByEvent(ctx context.Context, eventID uint) (int64, error)
	CancelIfNoLiveTickets(ctx context.Context, tx *gorm.DB, orderIDs []uint) error
	GetDB() *gorm.DB
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *orderRepository) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uint) ([]UserOrderRow, error) {
	var rows []UserOrderRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.order_number, o.total_amount, o.status, o.created_at,
			e.title AS event_title, e.date AS event_date, e.time AS event_time,
			e.venue_name, e.venue_address,
			COUNT(t.id) AS ticket_count
		FROM orders o
		JOIN events e ON o.event_id = e.id
		LEFT JOIN tickets t ON t.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY o.id, e.title, e.date, e.time, e.venue_name, e.venue_address
		ORDER BY o.created_at DESC
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *orderRepository) UpdateStatusIf(ctx context.Context, tx *gorm.DB, orderID uint, from, to models.OrderStatus) (int64, error) {
	result := tx.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *orderRepository) CountActiveByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("event_id = ? AND status IN ?", eventID,
			[]models.OrderStatus{models.OrderPending, models.OrderCompleted}).
		Count(&count).Error
	return count, err
}

// CancelIfNoLiveTickets cancels pending orders whose tickets have all been
// cancelled, used by the reservation-hold sweep.
func (r *orderRepository) CancelIfNoLiveTickets(ctx context.Context, tx *gorm.DB, orderIDs []uint) error {
	return tx.WithContext(ctx).Exec(`
		UPDATE orders SET status = 'cancelled', updated_at = NOW()
		WHERE id IN ? AND status = 'pending'
		AND NOT EXISTS (
			SELECT 1 FROM tickets
			WHERE tickets.order_id = orders.id
			AND tickets.status NOT IN ('cancelled', 'refunded')
		)
	`, orderIDs).Error
}
