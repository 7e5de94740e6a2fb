package services

import (
	"time"

	"backend/entity"
	"backend/repository"
)

type StatsService struct {
	Repo *repository.OrderRepository
}

func NewStatsService(repo *repository.OrderRepository) *StatsService {
	return &StatsService{Repo: repo}
}

type Stats struct {
	TotalOrders   int64   `json:"total_orders"`
	PendingOrders int64   `json:"pending_orders"`
	TodayOrders   int64   `json:"today_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

// Overview collects the admin dashboard counters. Reads only; two calls
// without intervening writes return identical numbers.
func (s *StatsService) Overview() (*Stats, error) {
	total, err := s.Repo.CountAll()
	if err != nil {
		return nil, err
	}
	pending, err := s.Repo.CountByStatus(entity.StatusPending)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.Repo.CountSince(startOfDay)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.SumRevenue()
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalOrders:   total,
		PendingOrders: pending,
		TodayOrders:   today,
		TotalRevenue:  revenue,
	}, nil
}
