package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/services/catalog"
	"github.com/louisbranch/sheetkeeper/internal/services/catalog/storage"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// domainCardURIPrefix addresses a single catalog card: domain-card://{card_id}.
const domainCardURIPrefix = "domain-card://"

// CardStore reads the stored catalog.
type CardStore interface {
	catalog.Reader
}

// DomainCardsFilterInput represents the MCP tool input for filtering a card list.
type DomainCardsFilterInput struct {
	Cards  []daggerheart.DomainCard `json:"cards" jsonschema:"cards to filter, in display order"`
	Filter daggerheart.CardFilter   `json:"filter,omitempty" jsonschema:"structural filter and free-text search"`
}

// DomainCardsResult represents the MCP tool output for a card list.
type DomainCardsResult struct {
	Cards []daggerheart.DomainCard `json:"cards" jsonschema:"matching cards in display or relevance order"`
}

// DomainCardsSearchInput represents the MCP tool input for a catalog search.
type DomainCardsSearchInput struct {
	AllowedDomains []string `json:"allowed_domains,omitempty" jsonschema:"restrict results to these domains"`
	Domain         string   `json:"domain,omitempty" jsonschema:"domain name or all"`
	Level          string   `json:"level,omitempty" jsonschema:"level number or all"`
	Type           string   `json:"type,omitempty" jsonschema:"card type or all"`
	Search         string   `json:"search,omitempty" jsonschema:"free-text search ranked by relevance"`
	Filter         string   `json:"filter,omitempty" jsonschema:"AIP-160 filter expression, e.g. level >= 2 AND tags:\"fire\""`
	PageSize       int      `json:"page_size,omitempty" jsonschema:"maximum cards to return (default 50, max 200)"`
	PageToken      string   `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// DomainCardsSearchResult represents the MCP tool output for a catalog search.
type DomainCardsSearchResult struct {
	Cards         []daggerheart.DomainCard `json:"cards" jsonschema:"matching cards in relevance order"`
	NextPageToken string                   `json:"next_page_token,omitempty" jsonschema:"token for the next page, if any"`
	TotalSize     int                      `json:"total_size" jsonschema:"number of matching cards across all pages"`
}

// DomainCardsFilterTool defines the MCP tool schema for filtering a card list.
func DomainCardsFilterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "domain_cards_filter",
		Description: "Filters a list of domain cards by domain, level and type, ranking by search relevance",
	}
}

// DomainCardsSearchTool defines the MCP tool schema for catalog searches.
func DomainCardsSearchTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "domain_cards_search",
		Description: "Searches the stored domain card catalog with structural filters, ranking and an optional filter expression",
	}
}

// DomainCardResourceTemplate defines the MCP resource template for a catalog card.
func DomainCardResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "domain_card",
		Title:       "Domain card",
		Description: "Readable catalog card. URI format: domain-card://{card_id}",
		MIMEType:    "application/json",
		URITemplate: domainCardURIPrefix + "{card_id}",
	}
}

// DomainCardsFilterHandler filters the provided cards.
func DomainCardsFilterHandler() mcp.ToolHandlerFor[DomainCardsFilterInput, DomainCardsResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DomainCardsFilterInput) (*mcp.CallToolResult, DomainCardsResult, error) {
		cards := daggerheart.FilterDomainCards(input.Cards, input.Filter)
		if cards == nil {
			cards = []daggerheart.DomainCard{}
		}
		return nil, DomainCardsResult{Cards: cards}, nil
	}
}

// DomainCardsSearchHandler searches the stored catalog.
func DomainCardsSearchHandler(store CardStore) mcp.ToolHandlerFor[DomainCardsSearchInput, DomainCardsSearchResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DomainCardsSearchInput) (*mcp.CallToolResult, DomainCardsSearchResult, error) {
		if store == nil {
			return nil, DomainCardsSearchResult{}, fmt.Errorf("card catalog is not configured")
		}
		level, err := catalog.ParseLevel(input.Level)
		if err != nil {
			return nil, DomainCardsSearchResult{}, err
		}
		page, err := catalog.Search(ctx, store, catalog.Query{
			Cards: daggerheart.CardFilter{
				AllowedDomains: input.AllowedDomains,
				Domain:         input.Domain,
				Level:          level,
				Type:           input.Type,
				Search:         input.Search,
			},
			Filter:    input.Filter,
			PageSize:  input.PageSize,
			PageToken: input.PageToken,
		})
		if err != nil {
			return nil, DomainCardsSearchResult{}, fmt.Errorf("search catalog: %w", err)
		}
		cards := page.Cards
		if cards == nil {
			cards = []daggerheart.DomainCard{}
		}
		return nil, DomainCardsSearchResult{
			Cards:         cards,
			NextPageToken: page.NextPageToken,
			TotalSize:     page.TotalSize,
		}, nil
	}
}

// DomainCardResourceHandler returns a readable catalog card.
func DomainCardResourceHandler(store CardStore) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if store == nil {
			return nil, fmt.Errorf("card catalog is not configured")
		}
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("card ID is required; use URI format domain-card://{card_id}")
		}
		uri := req.Params.URI
		cardID, err := parseCardIDFromURI(uri)
		if err != nil {
			return nil, err
		}

		card, err := store.GetDomainCard(ctx, cardID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, fmt.Errorf("get domain card: %w", err)
		}

		data, err := json.MarshalIndent(card, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal domain card: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

func parseCardIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, domainCardURIPrefix) {
		return "", fmt.Errorf("invalid URI format: expected domain-card://{card_id}")
	}
	cardID := strings.TrimSpace(strings.TrimPrefix(uri, domainCardURIPrefix))
	if cardID == "" || strings.Contains(cardID, "/") {
		return "", fmt.Errorf("invalid URI format: expected domain-card://{card_id}")
	}
	return cardID, nil
}
