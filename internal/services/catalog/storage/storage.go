// Package storage defines persistence contracts for the domain-card catalog.
package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
)

var (
	// ErrNotFound indicates a requested card is missing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidPageToken indicates a page token that was not issued by the store.
	ErrInvalidPageToken = errors.New("invalid page token")
)

// DomainCardPage is one page of cards ordered by id.
type DomainCardPage struct {
	Cards         []daggerheart.DomainCard
	NextPageToken string
}

// DomainCardStore reads and writes catalog cards.
type DomainCardStore interface {
	PutDomainCard(ctx context.Context, card daggerheart.DomainCard) error
	GetDomainCard(ctx context.Context, id string) (daggerheart.DomainCard, error)
	ListDomainCards(ctx context.Context, pageSize int, pageToken string) (DomainCardPage, error)
	ListAllDomainCards(ctx context.Context) ([]daggerheart.DomainCard, error)
	CountDomainCards(ctx context.Context) (int, error)
}

// EncodePageToken makes an opaque token for the card id a page ended on.
func EncodePageToken(lastID string) string {
	if lastID == "" {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte(lastID))
}

// DecodePageToken returns the card id encoded in token. An empty token
// decodes to an empty id.
func DecodePageToken(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) == 0 {
		return "", ErrInvalidPageToken
	}
	return string(raw), nil
}
