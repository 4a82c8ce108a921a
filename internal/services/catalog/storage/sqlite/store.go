// Package sqlite provides a SQLite-backed domain-card catalog.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/sheetkeeper/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/storage"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/storage/sqlite/migrations"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	_ "modernc.org/sqlite"
)

const cardColumns = `id, name, domain, level, type, description, hope_cost, recall_cost, tags, source`

// Store persists domain cards in SQLite.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens the catalog at path and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(ctx, sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutDomainCard inserts card or replaces the card with the same id.
func (s *Store) PutDomainCard(ctx context.Context, card daggerheart.DomainCard) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	card.ID = strings.TrimSpace(card.ID)
	if card.ID == "" {
		return fmt.Errorf("card id is required")
	}
	if card.Source == "" {
		card.Source = daggerheart.SourceOfficial
	}
	tags := card.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags for %s: %w", card.ID, err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO domain_cards (`+cardColumns+`, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   domain = excluded.domain,
		   level = excluded.level,
		   type = excluded.type,
		   description = excluded.description,
		   hope_cost = excluded.hope_cost,
		   recall_cost = excluded.recall_cost,
		   tags = excluded.tags,
		   source = excluded.source,
		   updated_at = excluded.updated_at`,
		card.ID,
		card.Name,
		card.Domain,
		card.Level,
		card.Type,
		card.Description,
		nullableInt(card.HopeCost),
		nullableInt(card.RecallCost),
		string(tagsJSON),
		card.Source,
		s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("put domain card %s: %w", card.ID, err)
	}
	return nil
}

// GetDomainCard returns one card by id.
func (s *Store) GetDomainCard(ctx context.Context, id string) (daggerheart.DomainCard, error) {
	if err := s.ready(ctx); err != nil {
		return daggerheart.DomainCard{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return daggerheart.DomainCard{}, fmt.Errorf("card id is required")
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM domain_cards WHERE id = ?`, id)
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return daggerheart.DomainCard{}, storage.ErrNotFound
	}
	if err != nil {
		return daggerheart.DomainCard{}, fmt.Errorf("get domain card %s: %w", id, err)
	}
	return card, nil
}

// ListDomainCards returns one page of cards ordered by id.
func (s *Store) ListDomainCards(ctx context.Context, pageSize int, pageToken string) (storage.DomainCardPage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.DomainCardPage{}, err
	}
	if pageSize <= 0 {
		return storage.DomainCardPage{}, fmt.Errorf("page size must be greater than zero")
	}
	after, err := storage.DecodePageToken(pageToken)
	if err != nil {
		return storage.DomainCardPage{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+cardColumns+`
		   FROM domain_cards
		  WHERE id > ?
		  ORDER BY id ASC
		  LIMIT ?`,
		after, pageSize+1,
	)
	if err != nil {
		return storage.DomainCardPage{}, fmt.Errorf("list domain cards: %w", err)
	}
	cards, err := collect(rows, pageSize+1)
	if err != nil {
		return storage.DomainCardPage{}, fmt.Errorf("list domain cards: %w", err)
	}

	page := storage.DomainCardPage{Cards: cards}
	if len(cards) > pageSize {
		page.Cards = cards[:pageSize]
		page.NextPageToken = storage.EncodePageToken(cards[pageSize-1].ID)
	}
	return page, nil
}

// ListAllDomainCards returns every card ordered by id.
func (s *Store) ListAllDomainCards(ctx context.Context) ([]daggerheart.DomainCard, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+cardColumns+` FROM domain_cards ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list all domain cards: %w", err)
	}
	cards, err := collect(rows, 0)
	if err != nil {
		return nil, fmt.Errorf("list all domain cards: %w", err)
	}
	return cards, nil
}

// CountDomainCards returns the number of stored cards.
func (s *Store) CountDomainCards(ctx context.Context) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM domain_cards`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count domain cards: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCard(row scanner) (daggerheart.DomainCard, error) {
	var (
		card       daggerheart.DomainCard
		hopeCost   sql.NullInt64
		recallCost sql.NullInt64
		tags       string
	)
	if err := row.Scan(
		&card.ID,
		&card.Name,
		&card.Domain,
		&card.Level,
		&card.Type,
		&card.Description,
		&hopeCost,
		&recallCost,
		&tags,
		&card.Source,
	); err != nil {
		return daggerheart.DomainCard{}, err
	}
	card.HopeCost = intFromNull(hopeCost)
	card.RecallCost = intFromNull(recallCost)
	if err := json.Unmarshal([]byte(tags), &card.Tags); err != nil {
		return daggerheart.DomainCard{}, fmt.Errorf("decode tags for %s: %w", card.ID, err)
	}
	if len(card.Tags) == 0 {
		card.Tags = nil
	}
	return card, nil
}

func collect(rows *sql.Rows, capacity int) ([]daggerheart.DomainCard, error) {
	defer rows.Close()
	cards := make([]daggerheart.DomainCard, 0, capacity)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

var _ storage.DomainCardStore = (*Store)(nil)
