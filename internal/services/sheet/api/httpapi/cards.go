package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type domainCardsFilterRequest struct {
	Cards  []daggerheart.DomainCard `json:"cards"`
	Filter daggerheart.CardFilter   `json:"filter"`
}

type domainCardsResponse struct {
	Cards []daggerheart.DomainCard `json:"cards"`
}

func (h *Handler) domainCardsFilter(ctx context.Context, r *http.Request) (any, error) {
	var req domainCardsFilterRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	cards := daggerheart.FilterDomainCards(req.Cards, req.Filter)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("cards.input", len(req.Cards)),
		attribute.Int("cards.matched", len(cards)),
	)
	return domainCardsResponse{Cards: cards}, nil
}

var errCatalogUnavailable = apperrors.New(apperrors.CodeCatalogUnavailable, "card catalog is not configured")

func (h *Handler) cardSource() (catalog.Reader, error) {
	if h.cards == nil {
		return nil, errCatalogUnavailable
	}
	return h.cards, nil
}

// domainCardsList searches the stored catalog. allowed_domain may repeat or
// carry a comma-separated list.
func (h *Handler) domainCardsList(ctx context.Context, r *http.Request) (any, error) {
	cards, err := h.cardSource()
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	level, err := catalog.ParseLevel(q.Get("level"))
	if err != nil {
		return nil, err
	}
	pageSize := 0
	if raw := strings.TrimSpace(q.Get("page_size")); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize < 0 {
			return nil, invalidRequest("page_size must be a non-negative number")
		}
	}

	page, err := catalog.Search(ctx, cards, catalog.Query{
		Cards: daggerheart.CardFilter{
			AllowedDomains: splitList(q["allowed_domain"]),
			Domain:         q.Get("domain"),
			Level:          level,
			Type:           q.Get("type"),
			Search:         q.Get("search"),
		},
		Filter:    q.Get("filter"),
		PageSize:  pageSize,
		PageToken: q.Get("page_token"),
	})
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("cards.matched", page.TotalSize))
	return page, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// findCard looks a card up by id in the catalog.
func (h *Handler) findCard(ctx context.Context, id string) (daggerheart.DomainCard, error) {
	cards, err := h.cardSource()
	if err != nil {
		return daggerheart.DomainCard{}, err
	}
	return catalog.Get(ctx, cards, id)
}

type loadoutMoveRequest struct {
	Loadout daggerheart.Loadout `json:"loadout"`
	CardID  string              `json:"card_id"`
	To      string              `json:"to"`
}

func (h *Handler) loadoutMove(_ context.Context, r *http.Request) (any, error) {
	var req loadoutMoveRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	loadout, err := daggerheart.NewLoadout(req.Loadout.Active, req.Loadout.Vault)
	if err != nil {
		return nil, err
	}
	switch req.To {
	case "active":
		return loadout.MoveToActive(req.CardID)
	case "vault":
		return loadout.MoveToVault(req.CardID)
	default:
		return nil, invalidRequest(`to must be "active" or "vault"`)
	}
}

type loadoutRecallRequest struct {
	Loadout   daggerheart.Loadout `json:"loadout"`
	CardID    string              `json:"card_id"`
	Stress    int                 `json:"stress"`
	StressMax int                 `json:"stress_max"`
	HP        int                 `json:"hp"`
	InRest    bool                `json:"in_rest"`
}

// loadoutRecall pulls a vaulted card into the loadout, paying its recall
// cost from the catalog in stress.
func (h *Handler) loadoutRecall(ctx context.Context, r *http.Request) (any, error) {
	var req loadoutRecallRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	loadout, err := daggerheart.NewLoadout(req.Loadout.Active, req.Loadout.Vault)
	if err != nil {
		return nil, err
	}
	card, err := h.findCard(ctx, req.CardID)
	if err != nil {
		return nil, err
	}
	return loadout.RecallToActive(card, req.Stress, req.StressMax, req.HP, req.InRest)
}
