package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type TotalStats struct {
	TotalEvents      int64   `json:"total_events"`
	TotalUsers       int64   `json:"total_users"`
	TotalVenues      int64   `json:"total_venues"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalTicketsSold int64   `json:"total_tickets_sold"`
}

type MonthlyRevenue struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type TopEvent struct {
	EventID     uint    `json:"event_id"`
	Title       string  `json:"title"`
	Revenue     float64 `json:"revenue"`
	TicketsSold int64   `json:"tickets_sold"`
}

type RecentPurchase struct {
	ID           uint      `json:"id"`
	OrderNumber  string    `json:"order_number"`
	TotalAmount  float64   `json:"total_amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	EventTitle   string    `json:"event_title"`
	CustomerName string    `json:"customer_name"`
}

type EventStatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardRepository interface {
	TotalStats(ctx context.Context) (*TotalStats, error)
	MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error)
	TopEvents(ctx context.Context) ([]TopEvent, error)
	RecentPurchases(ctx context.Context) ([]RecentPurchase, error)
	EventStatusCounts(ctx context.Context) ([]EventStatusCount, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) TotalStats(ctx context.Context) (*TotalStats, error) {
	var stats TotalStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM events WHERE status = 'active') AS total_events,
			(SELECT COUNT(*) FROM users WHERE status = 'active') AS total_users,
			(SELECT COUNT(*) FROM venues WHERE status = 'active') AS total_venues,
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'completed') AS total_revenue,
			(SELECT COUNT(*) FROM tickets WHERE status = 'active') AS total_tickets_sold
	`).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *dashboardRepository) MonthlyRevenue(ctx context.Context) ([]MonthlyRevenue, error) {
	var rows []MonthlyRevenue
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			TO_CHAR(DATE_TRUNC('month', created_at), 'Mon') AS month,
			COALESCE(SUM(total_amount), 0) AS amount
		FROM orders
		WHERE status = 'completed'
			AND created_at >= NOW() - INTERVAL '12 months'
		GROUP BY DATE_TRUNC('month', created_at)
		ORDER BY DATE_TRUNC('month', created_at)
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) TopEvents(ctx context.Context) ([]TopEvent, error) {
	var rows []TopEvent
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			e.id AS event_id,
			e.title,
			COALESCE(SUM(o.total_amount), 0) AS revenue,
			COUNT(t.id) AS tickets_sold
		FROM events e
		LEFT JOIN orders o ON e.id = o.event_id AND o.status = 'completed'
		LEFT JOIN tickets t ON o.id = t.order_id
		WHERE e.status = 'active'
		GROUP BY e.id, e.title
		ORDER BY revenue DESC
		LIMIT 5
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) RecentPurchases(ctx context.Context) ([]RecentPurchase, error) {
	var rows []RecentPurchase
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.order_number, o.total_amount, o.status, o.created_at,
			e.title AS event_title,
			u.first_name || ' ' || u.last_name AS customer_name
		FROM orders o
		JOIN events e ON o.event_id = e.id
		JOIN users u ON o.user_id = u.id
		ORDER BY o.created_at DESC
		LIMIT 10
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *dashboardRepository) EventStatusCounts(ctx context.Context) ([]EventStatusCount, error) {
	var rows []EventStatusCount
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM events
		GROUP BY status
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
