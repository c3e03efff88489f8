package services

import (
	"context"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/models"
)

type DashboardService struct {
	API   *api.Client
	Cache *cache.Cache
}

func NewDashboardService(apiClient *api.Client, c *cache.Cache) *DashboardService {
	return &DashboardService{API: apiClient, Cache: c}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	key := cache.PrefixDashboard + "/stats"
	stats, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.DashboardStats, error) {
		var st models.DashboardStats
		err := s.API.Get(ctx, "/dashboard/stats", nil, &st)
		return st, err
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
