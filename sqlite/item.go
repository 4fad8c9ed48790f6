package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/kbharvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ kbharvest.ItemStore = (*ItemStore)(nil)

// ItemStore records one harvest and its items inside a single transaction.
// Nothing is visible to readers until Commit.
type ItemStore struct {
	db     *DB
	teamID string

	// Now returns the harvest timestamp. Defaults to time.Now.
	Now func() time.Time

	tx        *sql.Tx
	harvestID string
	count     int
	committed bool
}

// NewItemStore creates an ItemStore writing a harvest for teamID.
func NewItemStore(db *DB, teamID string) *ItemStore {
	return &ItemStore{db: db, teamID: teamID, Now: time.Now}
}

// HarvestID returns the ID of the harvest row, or "" before the first write.
func (s *ItemStore) HarvestID() string {
	return s.harvestID
}

// hashContent returns the xxHash of content as 16 hex digits.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func (s *ItemStore) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}

	// The transaction outlives the request that started it.
	tx, err := s.db.BeginTx(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("begin harvest: %w", err)
	}

	id := uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO harvests (id, team_id, item_count, harvested_at)
		VALUES (?, ?, 0, ?)
	`, id, s.teamID, s.Now().UTC().Format(time.RFC3339))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert harvest: %w", err)
	}

	s.tx = tx
	s.harvestID = id
	s.count = 0
	return nil
}

// Save stages an item as the next position of the harvest.
func (s *ItemStore) Save(ctx context.Context, item *kbharvest.Item) error {
	if s.committed {
		return kbharvest.Errorf(kbharvest.EINVALID, "harvest already committed")
	}
	if err := item.Validate(); err != nil {
		return err
	}
	if err := s.begin(ctx); err != nil {
		return err
	}

	_, err := s.tx.ExecContext(ctx, `
		INSERT INTO items (id, harvest_id, position, title, content, content_type, source_url, author, user_id, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.harvestID, s.count, item.Title, item.Content, string(item.ContentType),
		item.SourceURL, item.Author, item.UserID, hashContent(item.Content))
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.SourceURL, err)
	}

	s.count++
	return nil
}

// Commit records the item count and commits the harvest. A harvest with no
// items is still recorded.
func (s *ItemStore) Commit() error {
	if s.committed {
		return nil
	}
	ctx := context.Background()
	if err := s.begin(ctx); err != nil {
		return err
	}

	if _, err := s.tx.ExecContext(ctx, `UPDATE harvests SET item_count = ? WHERE id = ?`, s.count, s.harvestID); err != nil {
		_ = s.tx.Rollback()
		s.tx = nil
		return fmt.Errorf("update harvest: %w", err)
	}
	if err := s.tx.Commit(); err != nil {
		s.tx = nil
		return fmt.Errorf("commit harvest: %w", err)
	}

	s.tx = nil
	s.committed = true
	return nil
}

// Abort discards everything staged since the first Save.
func (s *ItemStore) Abort() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	s.harvestID = ""
	s.count = 0
	if err != nil {
		return fmt.Errorf("rollback harvest: %w", err)
	}
	return nil
}

// FindItems returns the items of a committed harvest in saved order.
func (s *ItemStore) FindItems(ctx context.Context, harvestID string) ([]*kbharvest.Item, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM harvests WHERE id = ?`, harvestID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, kbharvest.Errorf(kbharvest.ENOTFOUND, "harvest not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, content, content_type, source_url, author, user_id
		FROM items
		WHERE harvest_id = ?
		ORDER BY position ASC
	`, harvestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*kbharvest.Item{}
	for rows.Next() {
		var item kbharvest.Item
		var contentType string
		if err := rows.Scan(&item.Title, &item.Content, &contentType, &item.SourceURL, &item.Author, &item.UserID); err != nil {
			return nil, err
		}
		item.ContentType = kbharvest.ContentType(contentType)
		items = append(items, &item)
	}
	return items, rows.Err()
}
