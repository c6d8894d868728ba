package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"bidding/models"
)

// ErrVersionConflict is returned when an optimistic version check fails.
// The engine assumes single-writer-per-bidding semantics; this is how the
// storage layer enforces them.
var ErrVersionConflict = errors.New("bidding was modified concurrently")

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Employee is a buyer-side user.
type Employee struct {
	ID             string    `db:"id" json:"id"`
	Username       string    `db:"username" json:"username"`
	DisplayName    string    `db:"display_name" json:"displayName"`
	Title          string    `db:"title" json:"title"`
	Rank           int       `db:"rank" json:"rank"`
	OrganizationID string    `db:"organization_id" json:"organizationId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateEmployee(ctx context.Context, e *Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
        INSERT INTO employee (id, username, display_name, title, rank, organization_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query,
		e.ID, e.Username, e.DisplayName, e.Title, e.Rank, e.OrganizationID).
		Scan(&e.CreatedAt)
}

func (s *Storage) GetEmployeeByUsername(ctx context.Context, username string) (*Employee, error) {
	e := &Employee{}
	query := `SELECT * FROM employee WHERE username=$1`
	err := s.db.GetContext(ctx, e, query, username)
	return e, err
}

// Supplier is a vendor that may participate in biddings.
type Supplier struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateSupplier(ctx context.Context, sup *Supplier) error {
	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}
	query := `
        INSERT INTO supplier (id, name)
        VALUES ($1, $2)
        RETURNING created_at`
	return s.db.QueryRowContext(ctx, query, sup.ID, sup.Name).Scan(&sup.CreatedAt)
}

func (s *Storage) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	sup := &Supplier{}
	query := `SELECT * FROM supplier WHERE id=$1`
	err := s.db.GetContext(ctx, sup, query, id)
	return sup, err
}

const biddingColumns = `id, name, description, status, method, deadline, organization_id,
        selected_participation_id, has_contract, has_order, version, created_at`

func (s *Storage) CreateBidding(ctx context.Context, b *models.BiddingRecord) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.InvitedSupplierIDs == nil {
		b.InvitedSupplierIDs = []string{}
	}
	query := `
        INSERT INTO bidding
            (id, name, description, status, method, deadline, organization_id, invited_supplier_ids, version)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, 1)
        RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query,
		b.ID, b.Name, b.Description, b.Status, b.Method, b.Deadline,
		b.OrganizationID, pq.StringArray(b.InvitedSupplierIDs)).
		Scan(&b.CreatedAt)
	if err != nil {
		return err
	}
	b.Version = 1
	return nil
}

// GetBidding loads a bidding together with its invitation list and all
// participations (evaluations attached where present).
func (s *Storage) GetBidding(ctx context.Context, id string) (*models.BiddingRecord, error) {
	b := &models.BiddingRecord{}
	query := `SELECT ` + biddingColumns + ` FROM bidding WHERE id=$1`
	if err := s.db.GetContext(ctx, b, query, id); err != nil {
		return nil, err
	}

	var invited pq.StringArray
	if err := s.db.GetContext(ctx, &invited, `SELECT invited_supplier_ids FROM bidding WHERE id=$1`, id); err != nil {
		return nil, err
	}
	b.InvitedSupplierIDs = []string(invited)

	participations, err := s.GetParticipationsForBidding(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Participations = participations
	return b, nil
}

func (s *Storage) GetBiddings(ctx context.Context, status models.BiddingStatus, limit, offset int) ([]models.BiddingRecord, error) {
	query := `SELECT ` + biddingColumns + ` FROM bidding`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`
	query += fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, offset)

	biddings := []models.BiddingRecord{}
	if err := s.db.SelectContext(ctx, &biddings, query, args...); err != nil {
		return nil, err
	}
	return biddings, nil
}

// UpdateBidding persists editable fields and bumps the version.
func (s *Storage) UpdateBidding(ctx context.Context, b *models.BiddingRecord) error {
	if b.InvitedSupplierIDs == nil {
		b.InvitedSupplierIDs = []string{}
	}
	b.Version++
	query := `
        UPDATE bidding
        SET name=$1, description=$2, deadline=$3, invited_supplier_ids=$4, version=$5
        WHERE id=$6`
	_, err := s.db.ExecContext(ctx, query,
		b.Name, b.Description, b.Deadline, pq.StringArray(b.InvitedSupplierIDs), b.Version, b.ID)
	return err
}

// UpdateBiddingStatus applies an already-validated status transition under
// an optimistic version check.
func (s *Storage) UpdateBiddingStatus(ctx context.Context, id string, status models.BiddingStatus, expectedVersion int) error {
	query := `
        UPDATE bidding
        SET status=$1, version=version+1
        WHERE id=$2 AND version=$3`
	res, err := s.db.ExecContext(ctx, query, status, id, expectedVersion)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func (s *Storage) DeleteBidding(ctx context.Context, id string) error {
	query := `DELETE FROM bidding WHERE id=$1`
	_, err := s.db.ExecContext(ctx, query, id)
	return err
}

func (s *Storage) CreateParticipation(ctx context.Context, p *models.Participation) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
        INSERT INTO participation (id, bidding_id, supplier_id, unit_price, quantity)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING submitted_at`
	return s.db.QueryRowContext(ctx, query,
		p.ID, p.BiddingID, p.SupplierID, p.UnitPrice, p.Quantity).
		Scan(&p.SubmittedAt)
}

func (s *Storage) GetParticipation(ctx context.Context, id string) (*models.Participation, error) {
	p := &models.Participation{}
	query := `SELECT id, bidding_id, supplier_id, unit_price, quantity, submitted_at, is_selected_bidder
        FROM participation WHERE id=$1`
	if err := s.db.GetContext(ctx, p, query, id); err != nil {
		return nil, err
	}
	eval, err := s.getEvaluation(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Evaluation = eval
	return p, nil
}

func (s *Storage) GetParticipationsForBidding(ctx context.Context, biddingID string) ([]models.Participation, error) {
	participations := []models.Participation{}
	query := `
        SELECT id, bidding_id, supplier_id, unit_price, quantity, submitted_at, is_selected_bidder
        FROM participation
        WHERE bidding_id = $1
        ORDER BY submitted_at ASC`
	if err := s.db.SelectContext(ctx, &participations, query, biddingID); err != nil {
		return nil, err
	}

	evaluations := []models.Evaluation{}
	evalQuery := `
        SELECT e.participation_id, e.price_grade, e.quality_grade, e.technical_grade,
               e.support_grade, e.total_points, e.evaluated_at
        FROM evaluation e
        JOIN participation p ON e.participation_id = p.id
        WHERE p.bidding_id = $1`
	if err := s.db.SelectContext(ctx, &evaluations, evalQuery, biddingID); err != nil {
		return nil, err
	}

	byParticipation := make(map[string]models.Evaluation, len(evaluations))
	for _, e := range evaluations {
		byParticipation[e.ParticipationID] = e
	}
	for i := range participations {
		if e, ok := byParticipation[participations[i].ID]; ok {
			eval := e
			participations[i].Evaluation = &eval
		}
	}
	return participations, nil
}

func (s *Storage) getEvaluation(ctx context.Context, participationID string) (*models.Evaluation, error) {
	e := &models.Evaluation{}
	query := `SELECT * FROM evaluation WHERE participation_id=$1`
	err := s.db.GetContext(ctx, e, query, participationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SaveEvaluation upserts: re-evaluating a participation overwrites the
// previous evaluation, it never appends a second one.
func (s *Storage) SaveEvaluation(ctx context.Context, e *models.Evaluation) error {
	query := `
        INSERT INTO evaluation
            (participation_id, price_grade, quality_grade, technical_grade, support_grade, total_points, evaluated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (participation_id) DO UPDATE SET
            price_grade = EXCLUDED.price_grade,
            quality_grade = EXCLUDED.quality_grade,
            technical_grade = EXCLUDED.technical_grade,
            support_grade = EXCLUDED.support_grade,
            total_points = EXCLUDED.total_points,
            evaluated_at = EXCLUDED.evaluated_at`
	_, err := s.db.ExecContext(ctx, query,
		e.ParticipationID, e.PriceGrade, e.QualityGrade, e.TechnicalGrade,
		e.SupportGrade, e.TotalPoints, e.EvaluatedAt)
	return err
}

// SelectWinner marks one participation as the selected bidder and records
// it on the bidding. Any previously selected participation is cleared.
func (s *Storage) SelectWinner(ctx context.Context, biddingID, participationID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE participation SET is_selected_bidder = false WHERE bidding_id = $1`, biddingID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE participation SET is_selected_bidder = true WHERE id = $1 AND bidding_id = $2`,
		participationID, biddingID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE bidding SET selected_participation_id = $1, version = version+1 WHERE id = $2`,
		participationID, biddingID); err != nil {
		return err
	}
	return tx.Commit()
}

// Contract links a concluded bidding to its contract record.
type Contract struct {
	ID        string    `db:"id" json:"id"`
	BiddingID string    `db:"bidding_id" json:"biddingId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateContract(ctx context.Context, c *Contract) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`INSERT INTO contract (id, bidding_id) VALUES ($1, $2) RETURNING created_at`,
		c.ID, c.BiddingID).Scan(&c.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE bidding SET has_contract = true, version = version+1 WHERE id = $1`, c.BiddingID); err != nil {
		return err
	}
	return tx.Commit()
}

// Order is the purchase order derived from a contracted bidding.
type Order struct {
	ID        string    `db:"id" json:"id"`
	BiddingID string    `db:"bidding_id" json:"biddingId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

func (s *Storage) CreateOrder(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`INSERT INTO purchase_order (id, bidding_id) VALUES ($1, $2) RETURNING created_at`,
		o.ID, o.BiddingID).Scan(&o.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE bidding SET has_order = true, version = version+1 WHERE id = $1`, o.BiddingID); err != nil {
		return err
	}
	return tx.Commit()
}
