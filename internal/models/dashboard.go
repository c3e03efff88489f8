package models

import "time"

type DashboardStats struct {
	Leads struct {
		Total    int                `json:"total"`
		ByStatus map[LeadStatus]int `json:"byStatus"`
	} `json:"leads"`
	Deals struct {
		Total    int                `json:"total"`
		ByStatus map[DealStatus]int `json:"byStatus"`
	} `json:"deals"`
	Customers struct {
		Total int `json:"total"`
	} `json:"customers"`
	Revenue struct {
		Total float64 `json:"total"`
	} `json:"revenue"`
	PendingApprovals int `json:"pendingApprovals"`
	RecentActivity   struct {
		Leads []RecentLead `json:"leads"`
		Deals []RecentDeal `json:"deals"`
	} `json:"recentActivity"`
}

type RecentLead struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
}

type RecentDeal struct {
	ID          int        `json:"id"`
	DealNumber  string     `json:"dealNumber"`
	Status      DealStatus `json:"status"`
	TotalAmount float64    `json:"totalAmount"`
	CreatedAt   time.Time  `json:"createdAt"`
	Customer    struct {
		Name string `json:"name"`
	} `json:"customer"`
}
