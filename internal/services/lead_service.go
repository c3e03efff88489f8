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

type LeadService struct {
	API   *api.Client
	Cache *cache.Cache
}

func NewLeadService(apiClient *api.Client, c *cache.Cache) *LeadService {
	return &LeadService{API: apiClient, Cache: c}
}

func leadFilterQuery(f models.LeadFilters) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Source != "" {
		q.Set("source", string(f.Source))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (s *LeadService) List(ctx context.Context, f models.LeadFilters) (models.Page[models.Lead], error) {
	q := leadFilterQuery(f)
	key := cache.ListKey(cache.PrefixLeads, q)
	return cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Page[models.Lead], error) {
		var page models.Page[models.Lead]
		err := s.API.Get(ctx, "/leads", q, &page)
		return page, err
	})
}

func (s *LeadService) Get(ctx context.Context, id int) (*models.Lead, error) {
	key := cache.DetailKey(cache.PrefixLeads, id)
	lead, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Lead, error) {
		var lead models.Lead
		err := s.API.Get(ctx, fmt.Sprintf("/leads/%d", id), nil, &lead)
		return lead, err
	})
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *LeadService) Create(ctx context.Context, req models.CreateLeadRequest) (*models.Lead, error) {
	var lead models.Lead
	if err := s.API.Post(ctx, "/leads", req, &lead); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationLead)
	return &lead, nil
}

func (s *LeadService) Update(ctx context.Context, id int, req models.UpdateLeadRequest) (*models.Lead, error) {
	var lead models.Lead
	if err := s.API.Patch(ctx, fmt.Sprintf("/leads/%d", id), req, &lead); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationLead)
	return &lead, nil
}

func (s *LeadService) Delete(ctx context.Context, id int) error {
	if err := s.API.Delete(ctx, fmt.Sprintf("/leads/%d", id)); err != nil {
		return err
	}
	s.Cache.InvalidateMutation(cache.MutationLead)
	return nil
}

// Convert asks the backend to turn a qualified lead into a deal. The lead's
// CONVERTED status is the server's to set, never ours.
func (s *LeadService) Convert(ctx context.Context, id int) (*models.Deal, error) {
	var deal models.Deal
	if err := s.API.Post(ctx, fmt.Sprintf("/leads/%d/convert", id), nil, &deal); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationLeadConvert)
	return &deal, nil
}
