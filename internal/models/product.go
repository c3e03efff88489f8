package models

import "time"

type Product struct {
	ID            int       `json:"id"`
	Code          string    `json:"code,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	HPP           float64   `json:"hpp"`
	MarginPercent float64   `json:"marginPercent"`
	SellingPrice  float64   `json:"sellingPrice"`
	SpeedMbps     int       `json:"speedMbps,omitempty"`
	Bandwidth     string    `json:"bandwidth,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	HPP           float64 `json:"hpp"`
	MarginPercent float64 `json:"marginPercent"`
	SpeedMbps     int     `json:"speedMbps,omitempty"`
	Bandwidth     string  `json:"bandwidth,omitempty"`
	IsActive      *bool   `json:"isActive,omitempty"`
}

type UpdateProductRequest struct {
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	HPP           *float64 `json:"hpp,omitempty"`
	MarginPercent *float64 `json:"marginPercent,omitempty"`
	SpeedMbps     int      `json:"speedMbps,omitempty"`
	Bandwidth     string   `json:"bandwidth,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

type ProductFilters struct {
	Search     string
	ActiveOnly bool
	Page       int
	Limit      int
}

// SellingPrice is the live form preview of hpp plus margin. The value the
// server returns on the next round trip is authoritative and must replace it.
func SellingPrice(hpp, marginPercent float64) float64 {
	return hpp * (1 + marginPercent/100)
}
