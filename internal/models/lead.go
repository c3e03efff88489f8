package models

import "time"

type LeadStatus string

const (
	LeadNew       LeadStatus = "NEW"
	LeadContacted LeadStatus = "CONTACTED"
	LeadQualified LeadStatus = "QUALIFIED"
	LeadConverted LeadStatus = "CONVERTED" // terminal, set by the server on deal activation
	LeadLost      LeadStatus = "LOST"
)

type LeadSource string

const (
	SourceWebsite  LeadSource = "WEBSITE"
	SourceWalkin   LeadSource = "WALKIN"
	SourcePartner  LeadSource = "PARTNER"
	SourceReferral LeadSource = "REFERRAL"
	SourceOther    LeadSource = "OTHER"
)

type Lead struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Email     string     `json:"email"`
	Address   string     `json:"address"`
	Needs     string     `json:"needs"`
	Source    LeadSource `json:"source"`
	Status    LeadStatus `json:"status"`
	OwnerID   int        `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CreateLeadRequest struct {
	Name    string     `json:"name"`
	Contact string     `json:"contact"`
	Email   string     `json:"email,omitempty"`
	Address string     `json:"address"`
	Needs   string     `json:"needs"`
	Source  LeadSource `json:"source"`
	Status  LeadStatus `json:"status,omitempty"`
}

type UpdateLeadRequest struct {
	Name    string     `json:"name,omitempty"`
	Contact string     `json:"contact,omitempty"`
	Email   string     `json:"email,omitempty"`
	Address string     `json:"address,omitempty"`
	Needs   string     `json:"needs,omitempty"`
	Source  LeadSource `json:"source,omitempty"`
	Status  LeadStatus `json:"status,omitempty"`
}

type LeadFilters struct {
	Status LeadStatus
	Source LeadSource
	Search string
	Page   int
	Limit  int
}

// ManualLeadStatuses are the statuses an operator may set by hand.
// CONVERTED is reachable only through deal activation on the server.
func ManualLeadStatuses() []LeadStatus {
	return []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadLost}
}
