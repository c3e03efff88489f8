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

type DealService struct {
	API   *api.Client
	Cache *cache.Cache
}

func NewDealService(apiClient *api.Client, c *cache.Cache) *DealService {
	return &DealService{API: apiClient, Cache: c}
}

func dealFilterQuery(f models.DealFilters) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (s *DealService) List(ctx context.Context, f models.DealFilters) (models.Page[models.Deal], error) {
	q := dealFilterQuery(f)
	key := cache.ListKey(cache.PrefixDeals, q)
	return cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Page[models.Deal], error) {
		var page models.Page[models.Deal]
		err := s.API.Get(ctx, "/deals", q, &page)
		return page, err
	})
}

func (s *DealService) Get(ctx context.Context, id int) (*models.Deal, error) {
	key := cache.DetailKey(cache.PrefixDeals, id)
	deal, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Deal, error) {
		var d models.Deal
		err := s.API.Get(ctx, fmt.Sprintf("/deals/%d", id), nil, &d)
		return d, err
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// Create validates and filters the payload locally first; a payload with no
// real items is rejected without a network call.
func (s *DealService) Create(ctx context.Context, req models.CreateDealRequest) (*models.Deal, error) {
	prepared, err := PrepareCreateDeal(req)
	if err != nil {
		return nil, err
	}
	var deal models.Deal
	if err := s.API.Post(ctx, "/deals", prepared, &deal); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationDeal)
	return &deal, nil
}

// The transition calls are single request-response exchanges. A failed
// transition is surfaced and left alone; the operator re-invokes.

func (s *DealService) Submit(ctx context.Context, id int) (*models.Deal, error) {
	return s.transition(ctx, "PATCH", fmt.Sprintf("/deals/%d/submit", id), nil)
}

func (s *DealService) Approve(ctx context.Context, id int, note string) (*models.Deal, error) {
	return s.transition(ctx, "PATCH", fmt.Sprintf("/deals/%d/approve", id), &models.ApprovalActionRequest{Note: note})
}

func (s *DealService) Reject(ctx context.Context, id int, note string) (*models.Deal, error) {
	return s.transition(ctx, "PATCH", fmt.Sprintf("/deals/%d/reject", id), &models.ApprovalActionRequest{Note: note})
}

func (s *DealService) Activate(ctx context.Context, id int) (*models.Deal, error) {
	return s.transition(ctx, "POST", fmt.Sprintf("/deals/%d/activate", id), nil)
}

func (s *DealService) transition(ctx context.Context, method, path string, body any) (*models.Deal, error) {
	var deal models.Deal
	var err error
	switch method {
	case "POST":
		err = s.API.Post(ctx, path, body, &deal)
	default:
		err = s.API.Patch(ctx, path, body, &deal)
	}
	if err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationDeal)
	return &deal, nil
}
