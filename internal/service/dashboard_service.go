package service

import (
	"context"
	"time"

	"github.com/entradalive/ticketing/internal/repository"
)

type DashboardStats struct {
	TotalStats      *repository.TotalStats        `json:"totalStats"`
	MonthlyRevenue  []repository.MonthlyRevenue   `json:"monthlyRevenue"`
	TopEvents       []repository.TopEvent         `json:"topEvents"`
	RecentPurchases []repository.RecentPurchase   `json:"recentPurchases"`
	EventStats      []repository.EventStatusCount `json:"eventStats"`
	LastUpdated     time.Time                     `json:"lastUpdated"`
}

type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	totals, err := s.repo.TotalStats(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.MonthlyRevenue(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopEvents(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentPurchases(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.EventStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalStats:      totals,
		MonthlyRevenue:  monthly,
		TopEvents:       top,
		RecentPurchases: recent,
		EventStats:      byStatus,
		LastUpdated:     time.Now(),
	}, nil
}
