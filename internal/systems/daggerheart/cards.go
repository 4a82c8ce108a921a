package daggerheart

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Card sources.
const (
	SourceOfficial = "official"
	SourceHomebrew = "homebrew"
)

// FilterAll matches every value of a structural filter field.
const FilterAll = "all"

// DomainCard is a reference or homebrew domain card.
type DomainCard struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Domain      string   `json:"domain" yaml:"domain"`
	Level       int      `json:"level" yaml:"level"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	HopeCost    *int     `json:"hope_cost,omitempty" yaml:"hope_cost,omitempty"`
	RecallCost  *int     `json:"recall_cost,omitempty" yaml:"recall_cost,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
}

// CardFilter narrows a card list. Empty or "all" structural fields match
// everything; AllowedDomains restricts the pool when non-empty.
type CardFilter struct {
	AllowedDomains []string `json:"allowed_domains,omitempty"`
	Domain         string   `json:"domain,omitempty"`
	Level          string   `json:"level,omitempty"`
	Type           string   `json:"type,omitempty"`
	Search         string   `json:"search,omitempty"`
}

// MatchesAll reports whether f keeps every card in its original order.
func (f CardFilter) MatchesAll() bool {
	return len(f.AllowedDomains) == 0 && wildcard(f.Domain) && wildcard(f.Level) &&
		wildcard(f.Type) && strings.TrimSpace(f.Search) == ""
}

// matchRank orders how well a search term hits a value.
type matchRank int

const (
	rankNoMatch matchRank = iota
	rankContains
	rankWordStartsWith
	rankStartsWith
	rankEqual
	rankCaseSensitiveEqual
)

// searchKeys are ranked in priority order; a hit on an earlier key wins ties.
var searchKeys = []func(DomainCard) []string{
	func(c DomainCard) []string { return []string{c.Name} },
	func(c DomainCard) []string { return []string{c.Description} },
	func(c DomainCard) []string { return []string{c.Domain} },
	func(c DomainCard) []string { return []string{c.Type} },
	func(c DomainCard) []string { return c.Tags },
}

// FilterDomainCards applies the structural filters, then ranks the survivors
// by search relevance when a search term is present. Without a search term
// the original order is kept. The input slice is never modified.
func FilterDomainCards(cards []DomainCard, f CardFilter) []DomainCard {
	filtered := make([]DomainCard, 0, len(cards))
	for _, card := range cards {
		if matchesStructure(card, f) {
			filtered = append(filtered, card)
		}
	}
	search := strings.TrimSpace(f.Search)
	if search == "" {
		return filtered
	}
	return rankCards(filtered, search)
}

func matchesStructure(card DomainCard, f CardFilter) bool {
	if len(f.AllowedDomains) > 0 && !containsFold(f.AllowedDomains, card.Domain) {
		return false
	}
	if !wildcard(f.Domain) && !strings.EqualFold(strings.TrimSpace(f.Domain), card.Domain) {
		return false
	}
	if !wildcard(f.Level) && strings.TrimSpace(f.Level) != strconv.Itoa(card.Level) {
		return false
	}
	if !wildcard(f.Type) && !strings.EqualFold(strings.TrimSpace(f.Type), card.Type) {
		return false
	}
	return true
}

type rankedCard struct {
	card     DomainCard
	rank     matchRank
	keyIndex int
	value    string
	position int
}

// searchFolder normalizes values for matching: accents are stripped and
// case is folded. Not safe for concurrent use.
type searchFolder struct {
	accents transform.Transformer
	caser   cases.Caser
}

func newSearchFolder() *searchFolder {
	return &searchFolder{
		accents: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		caser:   cases.Fold(),
	}
}

func (f *searchFolder) String(value string) string {
	stripped, _, err := transform.String(f.accents, value)
	if err != nil {
		stripped = value
	}
	return f.caser.String(stripped)
}

func rankCards(cards []DomainCard, search string) []DomainCard {
	folder := newSearchFolder()
	term := folder.String(search)

	ranked := make([]rankedCard, 0, len(cards))
	for i, card := range cards {
		best := rankedCard{card: card, position: i}
		for keyIndex, key := range searchKeys {
			for _, value := range key(card) {
				rank := rankValue(value, folder.String(value), search, term)
				if rank > best.rank {
					best.rank = rank
					best.keyIndex = keyIndex
					best.value = value
				}
			}
		}
		if best.rank >= rankContains {
			ranked = append(ranked, best)
		}
	}

	collator := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.rank != b.rank {
			return a.rank > b.rank
		}
		if a.keyIndex != b.keyIndex {
			return a.keyIndex < b.keyIndex
		}
		if cmp := collator.CompareString(a.value, b.value); cmp != 0 {
			return cmp < 0
		}
		return a.position < b.position
	})

	out := make([]DomainCard, len(ranked))
	for i, entry := range ranked {
		out[i] = entry.card
	}
	return out
}

func rankValue(raw, folded, rawTerm, term string) matchRank {
	switch {
	case raw == rawTerm:
		return rankCaseSensitiveEqual
	case folded == term:
		return rankEqual
	case strings.HasPrefix(folded, term):
		return rankStartsWith
	case wordStartsWith(folded, term):
		return rankWordStartsWith
	case strings.Contains(folded, term):
		return rankContains
	default:
		return rankNoMatch
	}
}

// wordStartsWith reports whether term begins at any word boundary of value.
// The term may span several words.
func wordStartsWith(value, term string) bool {
	for i, r := range value {
		if !unicode.IsSpace(r) && r != '-' {
			continue
		}
		if strings.HasPrefix(value[i+utf8.RuneLen(r):], term) {
			return true
		}
	}
	return false
}

func wildcard(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || strings.EqualFold(value, FilterAll)
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), target) {
			return true
		}
	}
	return false
}
