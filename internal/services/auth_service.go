package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"nusacrm/internal/api"
	"nusacrm/internal/cache"
	"nusacrm/internal/models"
	"nusacrm/internal/session"
	"nusacrm/internal/utils"
)

var (
	ErrBadEmail      = errors.New("enter a valid email address")
	ErrEmptyPassword = errors.New("password is required")
)

type AuthService struct {
	API     *api.Client
	Session *session.Session
	Cache   *cache.Cache
}

func NewAuthService(apiClient *api.Client, sess *session.Session, c *cache.Cache) *AuthService {
	return &AuthService{API: apiClient, Session: sess, Cache: c}
}

// Login authenticates against the backend and persists the returned
// credential pair and profile. Form-shape problems never reach the network.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if !utils.IsValidEmail(email) {
		return nil, ErrBadEmail
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	var resp models.LoginResponse
	if err := s.API.Post(ctx, "/auth/login", models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	if err := s.Session.Login(resp.User, resp.AccessToken, resp.RefreshToken); err != nil {
		log.Printf("[auth][login] persist session: %v", err)
	}
	log.Printf("[auth][login] ok user=%d role=%s", resp.User.ID, resp.User.Role)
	return &resp.User, nil
}

// Logout is a pure local clear; the backend has no invalidation endpoint.
func (s *AuthService) Logout() {
	s.Session.Logout()
	if s.Cache != nil {
		s.Cache.Invalidate(
			cache.PrefixLeads, cache.PrefixProducts, cache.PrefixDeals,
			cache.PrefixCustomers, cache.PrefixDashboard, cache.PrefixReports,
		)
	}
	log.Printf("[auth][logout] session cleared")
}
