package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BiddingStatus string

const (
	StatusPending  BiddingStatus = "PENDING"
	StatusOngoing  BiddingStatus = "ONGOING"
	StatusClosed   BiddingStatus = "CLOSED"
	StatusCanceled BiddingStatus = "CANCELED"
)

func ValidBiddingStatus(s BiddingStatus) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusClosed, StatusCanceled:
		return true
	default:
		return false
	}
}

type BiddingMethod string

const (
	MethodFixedPrice BiddingMethod = "FIXED_PRICE"
	MethodOpenPrice  BiddingMethod = "OPEN_PRICE"
)

func ValidBiddingMethod(m BiddingMethod) bool {
	switch m {
	case MethodFixedPrice, MethodOpenPrice:
		return true
	default:
		return false
	}
}

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBuyer    Role = "BUYER"
	RolePurchase Role = "PURCHASE_STAFF" // buyer sub-role for purchasing departments
	RoleSupplier Role = "SUPPLIER"
)

// BuyerSide reports whether the role belongs to the buyer organization.
// ADMIN is handled separately by the authorization engine.
func (r Role) BuyerSide() bool {
	return r == RoleBuyer || r == RolePurchase
}

// Action is a lifecycle operation requested against a bidding.
type Action string

const (
	ActionCreate         Action = "create"
	ActionEdit           Action = "edit"
	ActionDelete         Action = "delete"
	ActionChangeStatus   Action = "changeStatus"
	ActionSelectWinner   Action = "selectWinner"
	ActionCreateContract Action = "createContract"
	ActionCreateOrder    Action = "createOrder"
	ActionEvaluate       Action = "evaluate"
	ActionParticipate    Action = "participate"
)

// Principal is the acting user as presented by the identity layer.
// It is never mutated by the engine.
type Principal struct {
	Role           Role   `json:"role"`
	RankHint       int    `json:"rankHint,omitempty"` // 0 means "not set"
	TitleText      string `json:"titleText,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
	SupplierID     string `json:"supplierId,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

// BiddingRecord is the central lifecycle entity.
type BiddingRecord struct {
	ID                      string          `db:"id" json:"id"`
	Name                    string          `db:"name" json:"name"`
	Description             string          `db:"description" json:"description"`
	Status                  BiddingStatus   `db:"status" json:"status"`
	Method                  BiddingMethod   `db:"method" json:"method"`
	Deadline                *time.Time      `db:"deadline" json:"deadline,omitempty"` // nil means no expiry
	OrganizationID          string          `db:"organization_id" json:"organizationId"`
	InvitedSupplierIDs      []string        `db:"-" json:"invitedSupplierIds,omitempty"`
	Participations          []Participation `db:"-" json:"participations,omitempty"`
	SelectedParticipationID *string         `db:"selected_participation_id" json:"selectedParticipationId,omitempty"`
	HasContract             bool            `db:"has_contract" json:"hasContract"`
	HasOrder                bool            `db:"has_order" json:"hasOrder"`
	Version                 int             `db:"version" json:"version"`
	CreatedAt               time.Time       `db:"created_at" json:"createdAt"`
}

// Participation is one supplier's proposal against a bidding.
// At most one exists per (bidding, supplier) pair.
type Participation struct {
	ID               string          `db:"id" json:"id"`
	BiddingID        string          `db:"bidding_id" json:"biddingId"`
	SupplierID       string          `db:"supplier_id" json:"supplierId"`
	UnitPrice        decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Quantity         int             `db:"quantity" json:"quantity"`
	SubmittedAt      time.Time       `db:"submitted_at" json:"submittedAt"`
	Evaluation       *Evaluation     `db:"-" json:"evaluation,omitempty"`
	IsSelectedBidder bool            `db:"is_selected_bidder" json:"isSelectedBidder"`
}

// Evaluation stores the scored assessment of one participation.
// Grade fields are on the common 1-5 scale; TotalPoints is the raw rubric sum.
type Evaluation struct {
	ParticipationID string    `db:"participation_id" json:"participationId"`
	PriceGrade      int       `db:"price_grade" json:"priceGrade"`
	QualityGrade    int       `db:"quality_grade" json:"qualityGrade"`
	TechnicalGrade  int       `db:"technical_grade" json:"technicalGrade"`
	SupportGrade    int       `db:"support_grade" json:"supportGrade"`
	TotalPoints     int       `db:"total_points" json:"totalPoints"`
	EvaluatedAt     time.Time `db:"evaluated_at" json:"evaluatedAt"`
}

// ProcessSummary is a derived snapshot of which milestones a bidding reached.
type ProcessSummary struct {
	Created         bool `json:"created"`
	Ongoing         bool `json:"ongoing"`
	Closed          bool `json:"closed"`
	Evaluated       bool `json:"evaluated"`
	BidderSelected  bool `json:"bidderSelected"`
	ContractCreated bool `json:"contractCreated"`
	OrderCreated    bool `json:"orderCreated"`
}
