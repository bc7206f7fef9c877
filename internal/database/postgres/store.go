// Package postgres is the PostgreSQL storage backend. Profile stats and quest
// progress are stored as JSONB and written wholesale.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BinhiHeritage_Go/internal/domain"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
	"github.com/osse101/BinhiHeritage_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store on a pgx pool
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new PostgreSQL store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(ErrMsgFailedToRollback, "error", err)
	}
}

// SeedCrops inserts catalog entries that are not stored yet. Existing rows keep
// their adoption flags.
func (s *Store) SeedCrops(ctx context.Context, crops []domain.Crop) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	const query = `
		INSERT INTO crops (id, name, type, rarity, conservation_status, preservation_value,
			description, location, province, traits, adopted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`

	inserted := int64(0)
	for _, c := range crops {
		traits, err := json.Marshal(c.Traits)
		if err != nil {
			return fmt.Errorf("%s traits: %w", ErrMsgEncodeColumn, err)
		}
		tag, err := tx.Exec(ctx, query, c.ID, c.Name, c.Type, string(c.Rarity), string(c.ConservationStatus),
			c.PreservationValue, c.Description, c.Location, c.Province, traits, c.Adopted)
		if err != nil {
			return fmt.Errorf("failed to seed crop %d: %w", c.ID, err)
		}
		inserted += tag.RowsAffected()
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgCropsSeeded, "inserted", inserted, "total", len(crops))
	return nil
}

// ---- Catalog ----

const cropColumns = `id, name, type, rarity, conservation_status, preservation_value,
	description, location, province, traits, adopted, COALESCE(adopted_by, '')`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var (
		c                    domain.Crop
		rarity, conservation string
		traits               []byte
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &rarity, &conservation, &c.PreservationValue,
		&c.Description, &c.Location, &c.Province, &traits, &c.Adopted, &c.AdoptedBy); err != nil {
		return nil, err
	}
	c.Rarity = domain.Rarity(rarity)
	c.ConservationStatus = domain.ConservationStatus(conservation)
	if err := json.Unmarshal(traits, &c.Traits); err != nil {
		return nil, fmt.Errorf("%s traits: %w", ErrMsgDecodeColumn, err)
	}
	return &c, nil
}

// ListCrops returns every crop ordered by id
func (s *Store) ListCrops(ctx context.Context) ([]domain.Crop, error) {
	rows, err := s.db.Query(ctx, `SELECT `+cropColumns+` FROM crops ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	defer rows.Close()

	var out []domain.Crop
	for rows.Next() {
		c, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// GetCrop returns a crop by id
func (s *Store) GetCrop(ctx context.Context, id int) (*domain.Crop, error) {
	c, err := scanCrop(s.db.QueryRow(ctx, `SELECT `+cropColumns+` FROM crops WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrCropNotFound, id)
	}
	return c, err
}

// MarkAdopted flags the crop in a single conditional update
func (s *Store) MarkAdopted(ctx context.Context, id int, userID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE crops SET adopted = TRUE, adopted_by = $2 WHERE id = $1 AND NOT adopted`, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM crops WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", domain.ErrCropNotFound, id)
	}
	return fmt.Errorf("%w: %d", domain.ErrCropAlreadyAdopted, id)
}

// ReleaseAdoption clears the adoption only while userID still holds it
func (s *Store) ReleaseAdoption(ctx context.Context, id int, userID string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE crops SET adopted = FALSE, adopted_by = NULL WHERE id = $1 AND adopted AND adopted_by = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return nil
}

// ---- Profiles ----

const profileColumns = `user_id, display_name, wallet_provider, wallet_address, stats,
	quest_progress, visited_sections, last_adopted_crop, created_at, updated_at`

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p                       domain.Profile
		stats, progress, visits []byte
	)
	if err := row.Scan(&p.UserID, &p.DisplayName, &p.WalletProvider, &p.WalletAddress, &stats,
		&progress, &visits, &p.LastAdoptedCrop, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stats, &p.Stats); err != nil {
		return nil, fmt.Errorf("%s stats: %w", ErrMsgDecodeColumn, err)
	}
	if err := json.Unmarshal(progress, &p.QuestProgress); err != nil {
		return nil, fmt.Errorf("%s quest_progress: %w", ErrMsgDecodeColumn, err)
	}
	if err := json.Unmarshal(visits, &p.VisitedSections); err != nil {
		return nil, fmt.Errorf("%s visited_sections: %w", ErrMsgDecodeColumn, err)
	}
	if p.QuestProgress == nil {
		p.QuestProgress = map[string]int{}
	}
	return &p, nil
}

// GetProfile returns a visitor profile
func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	p, err := scanProfile(s.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	return p, err
}

// SaveProfile upserts the whole profile
func (s *Store) SaveProfile(ctx context.Context, p *domain.Profile) error {
	stats, err := json.Marshal(p.Stats)
	if err != nil {
		return fmt.Errorf("%s stats: %w", ErrMsgEncodeColumn, err)
	}
	progress, err := json.Marshal(p.QuestProgress)
	if err != nil {
		return fmt.Errorf("%s quest_progress: %w", ErrMsgEncodeColumn, err)
	}
	visits := p.VisitedSections
	if visits == nil {
		visits = []string{}
	}
	visited, err := json.Marshal(visits)
	if err != nil {
		return fmt.Errorf("%s visited_sections: %w", ErrMsgEncodeColumn, err)
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			wallet_provider = EXCLUDED.wallet_provider,
			wallet_address = EXCLUDED.wallet_address,
			stats = EXCLUDED.stats,
			quest_progress = EXCLUDED.quest_progress,
			visited_sections = EXCLUDED.visited_sections,
			last_adopted_crop = EXCLUDED.last_adopted_crop,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.DisplayName, p.WalletProvider, p.WalletAddress, stats,
		progress, visited, p.LastAdoptedCrop, createdAt, updatedAt)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return nil
}

// ListProfiles returns every profile ordered by user id
func (s *Store) ListProfiles(ctx context.Context) ([]*domain.Profile, error) {
	rows, err := s.db.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---- Transactions ----

const transactionColumns = `tx_hash, user_id, crop_id, crop_name, amount, payment_method,
	wallet_address, created_at, block_number, gas_used, confirmations`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t      domain.Transaction
		method string
	)
	if err := row.Scan(&t.Hash, &t.UserID, &t.CropID, &t.CropName, &t.Amount, &method,
		&t.WalletAddress, &t.Timestamp, &t.BlockNumber, &t.GasUsed, &t.Confirmations); err != nil {
		return nil, err
	}
	t.PaymentMethod = domain.PaymentMethod(method)
	return &t, nil
}

// CreateTransaction stores a new transaction
func (s *Store) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	_, err := s.db.Exec(ctx, `INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		t.Hash, t.UserID, t.CropID, t.CropName, t.Amount, string(t.PaymentMethod),
		t.WalletAddress, t.Timestamp, t.BlockNumber, t.GasUsed, t.Confirmations)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return nil
}

// DeleteTransaction removes a transaction by hash
func (s *Store) DeleteTransaction(ctx context.Context, hash string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM transactions WHERE tx_hash = $1`, hash); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return nil
}

// GetTransaction returns a transaction by hash
func (s *Store) GetTransaction(ctx context.Context, hash string) (*domain.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE tx_hash = $1`, hash))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, hash)
	}
	return t, err
}

// ListTransactions returns transactions newest first, optionally for one user
func (s *Store) ListTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var args []interface{}
	if userID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, userID)
	}
	query += ` ORDER BY created_at DESC, tx_hash`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	defer rows.Close()

	out := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateConfirmations sets the confirmation count
func (s *Store) UpdateConfirmations(ctx context.Context, hash string, confirmations int) error {
	tag, err := s.db.Exec(ctx, `UPDATE transactions SET confirmations = $2 WHERE tx_hash = $1`, hash, confirmations)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, hash)
	}
	return nil
}

// ---- Activity ----

// LogActivity stores an entry and assigns its ID
func (s *Store) LogActivity(ctx context.Context, a *domain.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	var userID *string
	if a.UserID != "" {
		userID = &a.UserID
	}
	err := s.db.QueryRow(ctx,
		`INSERT INTO activity (type, user_id, message, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		a.Type, userID, a.Message, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return nil
}

// ListActivity returns the newest entries first. A non-positive limit returns everything.
func (s *Store) ListActivity(ctx context.Context, limit int) ([]domain.Activity, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, type, COALESCE(user_id, ''), message, created_at
		FROM activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, lim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	defer rows.Close()

	out := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.UserID, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CleanupActivity removes entries created before cutoff
func (s *Store) CleanupActivity(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM activity WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDatabase, err)
	}
	return tag.RowsAffected(), nil
}
