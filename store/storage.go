package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sahayak/types"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DBStorer interface {
	UpsertProfile(context.Context, types.UserProfile) error
	GetProfile(context.Context, uuid.UUID) (*types.UserProfile, error)
	UpsertOnboarding(context.Context, uuid.UUID, map[string]any) error
	GetOnboarding(context.Context, uuid.UUID) (*types.OnboardingProgress, error)
	UpsertDownload(context.Context, types.DownloadItem) error
	ListDownloads(context.Context) ([]types.DownloadItem, error)
}

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool: pool,
	}, nil
}

func (p *PostgresStore) UpsertProfile(ctx context.Context, profile types.UserProfile) error {
	query := `INSERT INTO user_profiles (id, full_name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			updated_at = EXCLUDED.updated_at
		`
	now := time.Now()
	_, err := p.pool.Exec(
		ctx,
		query,
		profile.ID,
		profile.FullName,
		profile.Email,
		now,
		now,
	)

	return err
}

func (p *PostgresStore) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	row := p.pool.QueryRow(ctx,
		"SELECT id, full_name, email, created_at, updated_at FROM user_profiles WHERE id = $1", userID)

	profile := &types.UserProfile{}
	if err := row.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.CreatedAt,
		&profile.UpdatedAt); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpsertOnboarding writes only the columns present in fields, so a caller
// updating current_step never clobbers a previously chosen class or subjects.
func (p *PostgresStore) UpsertOnboarding(ctx context.Context, userID uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("no onboarding fields to update")
	}

	columns := []string{"user_id"}
	placeholders := []string{"$1"}
	updates := []string{}
	args := []any{userID}

	i := 2
	for column, value := range fields {
		columns = append(columns, column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", i))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		args = append(args, value)
		i++
	}

	columns = append(columns, "updated_at")
	placeholders = append(placeholders, fmt.Sprintf("$%d", i))
	updates = append(updates, "updated_at = EXCLUDED.updated_at")
	args = append(args, time.Now())

	query := fmt.Sprintf(`INSERT INTO onboarding_progress (%s)
		VALUES (%s)
		ON CONFLICT (user_id) DO UPDATE SET %s`,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err := p.pool.Exec(ctx, query, args...)
	return err
}

func (p *PostgresStore) GetOnboarding(ctx context.Context, userID uuid.UUID) (*types.OnboardingProgress, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT user_id, COALESCE(class_id, ''), COALESCE(subjects, '{}'), COALESCE(current_step, 0),
			COALESCE(mother_tongue, ''), COALESCE(school_type, ''), updated_at
		FROM onboarding_progress WHERE user_id = $1`, userID)

	progress := &types.OnboardingProgress{}
	if err := row.Scan(
		&progress.UserID,
		&progress.ClassID,
		&progress.Subjects,
		&progress.CurrentStep,
		&progress.MotherTongue,
		&progress.SchoolType,
		&progress.UpdatedAt); err != nil {
		return nil, err
	}
	return progress, nil
}

func (p *PostgresStore) UpsertDownload(ctx context.Context, item types.DownloadItem) error {
	query := `INSERT INTO pack_downloads (id, title, size_label, status, progress, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			size_label = EXCLUDED.size_label,
			status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			updated_at = EXCLUDED.updated_at
		`
	_, err := p.pool.Exec(
		ctx,
		query,
		item.ID,
		item.Title,
		item.SizeLabel,
		item.Status,
		item.Progress,
		time.Now(),
	)

	return err
}

func (p *PostgresStore) ListDownloads(ctx context.Context) ([]types.DownloadItem, error) {
	rows, err := p.pool.Query(ctx,
		"SELECT id, title, size_label, status, progress, updated_at FROM pack_downloads ORDER BY updated_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []types.DownloadItem
	for rows.Next() {
		var item types.DownloadItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.SizeLabel,
			&item.Status,
			&item.Progress,
			&item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (p *PostgresStore) createTables(ctx context.Context) error {

	query := `
	CREATE TABLE IF NOT EXISTS user_profiles (
		id UUID PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE,
		updated_at TIMESTAMP WITH TIME ZONE
	);

	CREATE TABLE IF NOT EXISTS onboarding_progress (
		user_id UUID PRIMARY KEY,
		class_id TEXT,
		subjects TEXT[],
		current_step INT,
		mother_tongue TEXT,
		school_type TEXT,
		updated_at TIMESTAMP WITH TIME ZONE
	);

	CREATE TABLE IF NOT EXISTS pack_downloads (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		size_label TEXT,
		status TEXT CHECK (status IN ('done','downloading','queued','failed')),
		progress DOUBLE PRECISION DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE
	);

	CREATE INDEX IF NOT EXISTS idx_pack_downloads_status ON pack_downloads(status);
    `
	_, err := p.pool.Exec(ctx, query)
	return err
}

func (p *PostgresStore) Init(ctx context.Context) error {
	return p.createTables(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
