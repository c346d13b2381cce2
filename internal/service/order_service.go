package service

import (
	"context"

	"github.com/entradalive/ticketing/internal/repository"
)

type OrderWithTickets struct {
	repository.UserOrderRow
	Tickets []repository.OrderTicketRow `json:"tickets"`
}

type OrderService interface {
	ListUserOrders(ctx context.Context, userID uint) ([]OrderWithTickets, error)
}

type orderService struct {
	orderRepo  repository.OrderRepository
	ticketRepo repository.TicketRepository
}

func NewOrderService(orderRepo repository.OrderRepository, ticketRepo repository.TicketRepository) OrderService {
	return &orderService{orderRepo: orderRepo, ticketRepo: ticketRepo}
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uint) ([]OrderWithTickets, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []OrderWithTickets{}, nil
	}

	orderIDs := make([]uint, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}

	tickets, err := s.ticketRepo.ListByOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uint][]repository.OrderTicketRow)
	for _, t := range tickets {
		byOrder[t.OrderID] = append(byOrder[t.OrderID], t)
	}

	result := make([]OrderWithTickets, len(orders))
	for i, o := range orders {
		result[i] = OrderWithTickets{
			UserOrderRow: o,
			Tickets:      byOrder[o.ID],
		}
	}
	return result, nil
}
