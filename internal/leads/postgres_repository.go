package leads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// db is the subset of pgxpool.Pool the repository needs.
type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool   db
	tracer trace.Tracer
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool db) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{
		pool:   pool,
		tracer: otel.Tracer("leadgen.internal.leads.postgres"),
	}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	ctx, span := r.tracer.Start(ctx, "leads.create")
	defer span.End()

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("leads: marshal answers: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO leads (id, session_id, tier, name, email, company, phone, answers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.SessionID,
		req.Tier,
		req.Name,
		req.Email,
		req.Company,
		req.Phone,
		answers,
	).Scan(&createdAt); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		SessionID: req.SessionID,
		Tier:      req.Tier,
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Phone:     req.Phone,
		Answers:   req.Answers,
		CreatedAt: createdAt,
	}, nil
}

const selectLeadColumns = `SELECT id, session_id, tier, name, email, company, phone, answers, created_at FROM leads`

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	ctx, span := r.tracer.Start(ctx, "leads.get")
	defer span.End()

	lead, err := scanLead(r.pool.QueryRow(ctx, selectLeadColumns+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLeadNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return lead, nil
}

// List returns leads newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListLeadsFilter) ([]*Lead, error) {
	ctx, span := r.tracer.Start(ctx, "leads.list")
	defer span.End()

	query := selectLeadColumns
	args := []any{}
	var where []string
	if tier := strings.TrimSpace(filter.Tier); tier != "" {
		args = append(args, tier)
		where = append(where, fmt.Sprintf("lower(tier) = lower($%d)", len(args)))
	}
	if filter.SessionID != "" {
		args = append(args, filter.SessionID)
		where = append(where, fmt.Sprintf("session_id = $%d", len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, lead)
	}
	return out, rows.Err()
}

// DeleteBySession removes leads captured from one session.
func (r *PostgresRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "leads.delete_by_session")
	defer span.End()

	tag, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE session_id = $1`, sessionID)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("leads: delete failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanLead(row pgx.Row) (*Lead, error) {
	var (
		lead    Lead
		answers []byte
	)
	if err := row.Scan(
		&lead.ID,
		&lead.SessionID,
		&lead.Tier,
		&lead.Name,
		&lead.Email,
		&lead.Company,
		&lead.Phone,
		&answers,
		&lead.CreatedAt,
	); err != nil {
		return nil, err
	}
	lead.Answers = map[string]string{}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &lead.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
	}
	return &lead, nil
}
