package models

import "time"

type ServiceStatus string

const (
	ServiceActive    ServiceStatus = "ACTIVE"
	ServiceInactive  ServiceStatus = "INACTIVE"
	ServiceSuspended ServiceStatus = "SUSPENDED"
)

// Service is a live subscription created by deal activation. Its status is
// independent of the originating deal's status.
type Service struct {
	ID                  int           `json:"id"`
	ProductID           int           `json:"productId"`
	CustomerID          int           `json:"customerId"`
	MonthlyFee          float64       `json:"monthlyFee"`
	InstallationFee     float64       `json:"installationFee,omitempty"`
	StartDate           string        `json:"startDate"`
	EndDate             string        `json:"endDate,omitempty"`
	Status              ServiceStatus `json:"status"`
	InstallationAddress string        `json:"installationAddress,omitempty"`
	Product             struct {
		ID           int     `json:"id"`
		Name         string  `json:"name"`
		SellingPrice float64 `json:"sellingPrice"`
		SpeedMbps    int     `json:"speedMbps,omitempty"`
	} `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Customer struct {
	ID           int       `json:"id"`
	CustomerCode string    `json:"customerCode"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Services     []Service `json:"services,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CustomerFilters struct {
	Search string
	Page   int
	Limit  int
}
