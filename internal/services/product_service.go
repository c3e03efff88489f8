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

type ProductService struct {
	API   *api.Client
	Cache *cache.Cache
}

func NewProductService(apiClient *api.Client, c *cache.Cache) *ProductService {
	return &ProductService{API: apiClient, Cache: c}
}

func productFilterQuery(f models.ProductFilters) url.Values {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.ActiveOnly {
		q.Set("isActive", "true")
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (s *ProductService) List(ctx context.Context, f models.ProductFilters) (models.Page[models.Product], error) {
	q := productFilterQuery(f)
	key := cache.ListKey(cache.PrefixProducts, q)
	return cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Page[models.Product], error) {
		var page models.Page[models.Product]
		err := s.API.Get(ctx, "/products", q, &page)
		return page, err
	})
}

func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	key := cache.DetailKey(cache.PrefixProducts, id)
	product, err := cache.Get(ctx, s.Cache, key, func(ctx context.Context) (models.Product, error) {
		var p models.Product
		err := s.API.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &p)
		return p, err
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := s.API.Post(ctx, "/products", req, &p); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationProduct)
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, id int, req models.UpdateProductRequest) (*models.Product, error) {
	var p models.Product
	if err := s.API.Patch(ctx, fmt.Sprintf("/products/%d", id), req, &p); err != nil {
		return nil, err
	}
	s.Cache.InvalidateMutation(cache.MutationProduct)
	return &p, nil
}

// Deactivate is the product "delete": a soft flag flip on the server so
// historical deal items keep a valid product reference.
func (s *ProductService) Deactivate(ctx context.Context, id int) error {
	if err := s.API.Delete(ctx, fmt.Sprintf("/products/%d", id)); err != nil {
		return err
	}
	s.Cache.InvalidateMutation(cache.MutationProduct)
	return nil
}
