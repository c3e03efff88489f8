package services

import (
	"errors"

	"nusacrm/internal/authz"
	"nusacrm/internal/models"
)

// Action is a deal transition the UI may offer. The backend remains the
// arbiter of whether the transition is actually permitted.
type Action string

const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionActivate Action = "activate"
)

// Actions reachable from each status. REJECTED has no outgoing edge here:
// the client exposes no resubmission path.
var dealActions = map[models.DealStatus][]Action{
	models.DealDraft:           {ActionSubmit},
	models.DealWaitingApproval: {ActionApprove, ActionReject},
	models.DealApproved:        {ActionActivate},
	models.DealRejected:        {},
}

// AvailableActions is a pure function of deal state and caller role:
// DRAFT offers submit to anyone who can see the deal, WAITING_APPROVAL
// offers approve/reject to managers only, APPROVED offers activate until
// activation lands.
func AvailableActions(deal *models.Deal, role authz.Role) []Action {
	if deal == nil {
		return nil
	}
	var out []Action
	for _, a := range dealActions[deal.Status] {
		switch a {
		case ActionApprove, ActionReject:
			if !authz.CanApproveDeals(role) {
				continue
			}
		case ActionActivate:
			if deal.Activated() {
				continue
			}
		}
		out = append(out, a)
	}
	return out
}

func ActionOffered(deal *models.Deal, role authz.Role, action Action) bool {
	for _, a := range AvailableActions(deal, role) {
		if a == action {
			return true
		}
	}
	return false
}

var (
	ErrDealReference = errors.New("a deal must reference exactly one of a lead or a customer")
	ErrDealNoItems   = errors.New("a deal needs at least one item with positive quantity and price")
)

// PrepareCreateDeal enforces the creation invariant before anything goes on
// the wire: exactly one of lead/customer referenced, empty form-row
// placeholders dropped, and at least one real item left after dropping.
// needsApproval is deliberately not computed here; the server decides it.
func PrepareCreateDeal(req models.CreateDealRequest) (models.CreateDealRequest, error) {
	if (req.LeadID == 0) == (req.CustomerID == 0) {
		return req, ErrDealReference
	}
	items := make([]models.CreateDealItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.AgreedPrice <= 0 {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return req, ErrDealNoItems
	}
	req.Items = items
	return req, nil
}
