// Package catalog answers domain-card queries against the stored catalog.
package catalog

import (
	"context"
	"errors"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/platform/filter"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/storage"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// CardFields are the identifiers accepted in a catalog filter expression.
var CardFields = filter.Fields{
	"id":          filter.FieldString,
	"name":        filter.FieldString,
	"domain":      filter.FieldString,
	"type":        filter.FieldString,
	"source":      filter.FieldString,
	"description": filter.FieldString,
	"level":       filter.FieldInt,
	"hope_cost":   filter.FieldInt,
	"recall_cost": filter.FieldInt,
	"tags":        filter.FieldStringList,
}

// Lister returns the full catalog.
type Lister interface {
	ListAllDomainCards(ctx context.Context) ([]daggerheart.DomainCard, error)
}

// Reader looks cards up by id as well as listing them.
type Reader interface {
	Lister
	GetDomainCard(ctx context.Context, id string) (daggerheart.DomainCard, error)
}

// Pager pages through the catalog in id order. Search uses it for queries
// that neither filter nor rank.
type Pager interface {
	ListDomainCards(ctx context.Context, pageSize int, pageToken string) (storage.DomainCardPage, error)
	CountDomainCards(ctx context.Context) (int, error)
}

// Get returns the card with id.
func Get(ctx context.Context, cards Reader, id string) (daggerheart.DomainCard, error) {
	card, err := cards.GetDomainCard(ctx, id)
	switch {
	case err == nil:
		return card, nil
	case errors.Is(err, storage.ErrNotFound):
		return daggerheart.DomainCard{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			"domain card "+id+" not found", map[string]string{"CardID": id})
	default:
		return daggerheart.DomainCard{}, apperrors.Wrap(apperrors.CodeCatalogUnavailable, "get domain card", err)
	}
}

// Query describes one catalog search.
type Query struct {
	Cards     daggerheart.CardFilter
	Filter    string
	PageSize  int
	PageToken string
}

// Page is one page of matching cards in relevance order.
type Page struct {
	Cards         []daggerheart.DomainCard `json:"cards"`
	NextPageToken string                   `json:"next_page_token,omitempty"`
	TotalSize     int                      `json:"total_size"`
}

// Search applies the structural filter and search ranking, then the AIP
// filter expression, and returns the requested page.
func Search(ctx context.Context, cards Lister, q Query) (Page, error) {
	expr, err := filter.Parse(q.Filter, CardFields)
	if err != nil {
		return Page{}, apperrors.WithMetadata(apperrors.CodeCatalogInvalidFilter, err.Error(),
			map[string]string{"Reason": err.Error()})
	}
	if pager, ok := cards.(Pager); ok && expr == nil && q.Cards.MatchesAll() {
		return browse(ctx, pager, q)
	}
	offset, err := decodeOffset(q.PageToken)
	if err != nil {
		return Page{}, err
	}

	all, err := cards.ListAllDomainCards(ctx)
	if err != nil {
		return Page{}, apperrors.Wrap(apperrors.CodeCatalogUnavailable, "list catalog", err)
	}

	matched := daggerheart.FilterDomainCards(all, q.Cards)
	if expr != nil {
		kept := matched[:0]
		for _, card := range matched {
			ok, err := filter.Evaluate(expr, cardResolver(card))
			if err != nil {
				return Page{}, apperrors.WithMetadata(apperrors.CodeCatalogInvalidFilter, err.Error(),
					map[string]string{"Reason": err.Error()})
			}
			if ok {
				kept = append(kept, card)
			}
		}
		matched = kept
	}

	size := clampPageSize(q.PageSize)
	page := Page{TotalSize: len(matched)}
	if offset >= len(matched) {
		page.Cards = []daggerheart.DomainCard{}
		return page, nil
	}
	end := min(offset+size, len(matched))
	page.Cards = matched[offset:end]
	if end < len(matched) {
		page.NextPageToken = storage.EncodePageToken(strconv.Itoa(end))
	}
	return page, nil
}

// browse pages through the whole catalog by id without loading it.
func browse(ctx context.Context, pager Pager, q Query) (Page, error) {
	stored, err := pager.ListDomainCards(ctx, clampPageSize(q.PageSize), q.PageToken)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidPageToken) {
			return Page{}, apperrors.Wrap(apperrors.CodeCatalogInvalidPageToken, "invalid page token", err)
		}
		return Page{}, apperrors.Wrap(apperrors.CodeCatalogUnavailable, "list catalog", err)
	}
	total, err := pager.CountDomainCards(ctx)
	if err != nil {
		return Page{}, apperrors.Wrap(apperrors.CodeCatalogUnavailable, "count catalog", err)
	}
	page := Page{Cards: stored.Cards, NextPageToken: stored.NextPageToken, TotalSize: total}
	if page.Cards == nil {
		page.Cards = []daggerheart.DomainCard{}
	}
	return page, nil
}

func clampPageSize(size int) int {
	switch {
	case size <= 0:
		return DefaultPageSize
	case size > MaxPageSize:
		return MaxPageSize
	default:
		return size
	}
}

func decodeOffset(token string) (int, error) {
	raw, err := storage.DecodePageToken(token)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeCatalogInvalidPageToken, "invalid page token", err)
	}
	if raw == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(raw)
	if err != nil || offset < 0 {
		return 0, apperrors.New(apperrors.CodeCatalogInvalidPageToken, "invalid page token")
	}
	return offset, nil
}

func cardResolver(card daggerheart.DomainCard) filter.Resolver {
	return func(name string) (any, bool) {
		switch name {
		case "id":
			return card.ID, true
		case "name":
			return card.Name, true
		case "domain":
			return card.Domain, true
		case "type":
			return card.Type, true
		case "source":
			return card.Source, true
		case "description":
			return card.Description, true
		case "level":
			return card.Level, true
		case "hope_cost":
			return costOrZero(card.HopeCost), true
		case "recall_cost":
			return costOrZero(card.RecallCost), true
		case "tags":
			return card.Tags, true
		default:
			return nil, false
		}
	}
}

func costOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// ParseLevel accepts "", "all" or a level number for the structural level
// filter and normalizes it.
func ParseLevel(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, daggerheart.FilterAll) {
		return value, nil
	}
	level, err := strconv.Atoi(value)
	if err != nil {
		return "", apperrors.WithMetadata(apperrors.CodeInvalidRequest, "level must be a number",
			map[string]string{"Reason": "level must be a number"})
	}
	if err := daggerheart.ValidateLevel(level); err != nil {
		return "", err
	}
	return strconv.Itoa(level), nil
}
