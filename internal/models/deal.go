package models

import "time"

type DealStatus string

const (
	DealDraft           DealStatus = "DRAFT"
	DealWaitingApproval DealStatus = "WAITING_APPROVAL"
	DealApproved        DealStatus = "APPROVED"
	DealRejected        DealStatus = "REJECTED"
)

type DealItem struct {
	ID            int     `json:"id"`
	ProductID     int     `json:"productId"`
	Quantity      int     `json:"quantity"`
	AgreedPrice   float64 `json:"agreedPrice"`
	StandardPrice float64 `json:"standardPrice"`
	Subtotal      float64 `json:"subtotal"`
	NeedsApproval bool    `json:"needsApproval"`
	Product       struct {
		Name         string  `json:"name"`
		SellingPrice float64 `json:"sellingPrice"`
	} `json:"product"`
}

type Deal struct {
	ID          int        `json:"id"`
	DealNumber  string     `json:"dealNumber"`
	Title       string     `json:"title,omitempty"`
	Status      DealStatus `json:"status"`
	TotalAmount float64    `json:"totalAmount"`
	// NeedsApproval is the server's verdict; the client displays it and
	// never recomputes it.
	NeedsApproval bool       `json:"needsApproval"`
	OwnerID       int        `json:"ownerId"`
	CustomerID    int        `json:"customerId,omitempty"`
	LeadID        int        `json:"leadId,omitempty"`
	ActivatedAt   *time.Time `json:"activatedAt,omitempty"`
	Customer      struct {
		Name         string `json:"name"`
		CustomerCode string `json:"customerCode"`
	} `json:"customer"`
	Owner struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"owner"`
	Items     []DealItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (d *Deal) Activated() bool {
	return d.ActivatedAt != nil
}

type CreateDealItem struct {
	ProductID   int     `json:"productId"`
	AgreedPrice float64 `json:"agreedPrice"`
	Quantity    int     `json:"quantity"`
}

type CreateDealRequest struct {
	LeadID     int              `json:"leadId,omitempty"`
	CustomerID int              `json:"customerId,omitempty"`
	Title      string           `json:"title,omitempty"`
	Items      []CreateDealItem `json:"items"`
}

// ApprovalActionRequest carries the optional free-text note for
// approve/reject transitions.
type ApprovalActionRequest struct {
	Note string `json:"note,omitempty"`
}

type DealFilters struct {
	Status DealStatus
	Page   int
	Limit  int
}
