package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/models"
)

// CustomerService is read-only: customers and their services come into
// being through deal activation on the server.
type CustomerService struct {
	API   *api.Client
	Cache *cache.Cache
}

func NewCustomerService(apiClient *api.Client, c *cache.Cache) *CustomerService {
	return &CustomerService{API: apiClient, Cache: c}
}

func (s *CustomerService) List(ctx context.Context, f models.CustomerFilters) (models.Page[models.Customer], error) {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	key := cache.ListKey(cache.PrefixCustomers, q)
	return cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Page[models.Customer], error) {
		var page models.Page[models.Customer]
		err := s.API.Get(ctx, "/customers", q, &page)
		return page, err
	})
}

func (s *CustomerService) Get(ctx context.Context, id int) (*models.Customer, error) {
	key := cache.DetailKey(cache.PrefixCustomers, id)
	customer, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Customer, error) {
		var c models.Customer
		err := s.API.Get(ctx, fmt.Sprintf("/customers/%d", id), nil, &c)
		return c, err
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
