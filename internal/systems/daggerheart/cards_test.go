package daggerheart

import (
	"reflect"
	"testing"
)

func sampleCards() []DomainCard {
	return []DomainCard{
		{ID: "fireball", Name: "Fireball", Domain: "Arcana", Level: 1, Type: "spell", Description: "Hurl a ball of flame.", Tags: []string{"fire", "ranged"}},
		{ID: "rune-ward", Name: "Rune Ward", Domain: "Arcana", Level: 1, Type: "spell", Description: "A protective rune.", Tags: []string{"ward"}},
		{ID: "get-back-up", Name: "Get Back Up", Domain: "Blade", Level: 1, Type: "ability", Description: "Shrug off a blow."},
		{ID: "wall-of-fire", Name: "Wall of Fire", Domain: "Arcana", Level: 2, Type: "spell", Description: "A blazing barrier."},
		{ID: "cinder-grasp", Name: "Cinder Grasp", Domain: "Arcana", Level: 1, Type: "spell", Description: "Set a target on fire.", Tags: []string{"fire"}},
		{ID: "chain-lightning", Name: "Chain Lightning", Domain: "Arcana", Level: 3, Type: "spell", Description: "Lightning arcs between foes."},
		{ID: "whirlwind", Name: "Whirlwind", Domain: "Blade", Level: 2, Type: "ability", Description: "Strike all nearby enemies, spreading fire."},
	}
}

func cardIDs(cards []DomainCard) []string {
	ids := make([]string, len(cards))
	for i, card := range cards {
		ids[i] = card.ID
	}
	return ids
}

func TestFilterDomainCardsStructural(t *testing.T) {
	tests := []struct {
		name   string
		filter CardFilter
		want   []string
	}{
		{"no filter", CardFilter{}, []string{"fireball", "rune-ward", "get-back-up", "wall-of-fire", "cinder-grasp", "chain-lightning", "whirlwind"}},
		{"domain", CardFilter{Domain: "Arcana"}, []string{"fireball", "rune-ward", "wall-of-fire", "cinder-grasp", "chain-lightning"}},
		{"domain case-insensitive", CardFilter{Domain: "blade"}, []string{"get-back-up", "whirlwind"}},
		{"all is wildcard", CardFilter{Domain: "all", Level: "ALL", Type: "all"}, []string{"fireball", "rune-ward", "get-back-up", "wall-of-fire", "cinder-grasp", "chain-lightning", "whirlwind"}},
		{"level as string", CardFilter{Level: "2"}, []string{"wall-of-fire", "whirlwind"}},
		{"level mismatch format", CardFilter{Level: "02"}, []string{}},
		{"type", CardFilter{Type: "ability"}, []string{"get-back-up", "whirlwind"}},
		{"allowed domains", CardFilter{AllowedDomains: []string{"Blade"}}, []string{"get-back-up", "whirlwind"}},
		{"allowed and domain", CardFilter{AllowedDomains: []string{"Blade"}, Domain: "Arcana"}, []string{}},
		{"combined", CardFilter{Domain: "Arcana", Level: "1", Type: "spell"}, []string{"fireball", "rune-ward", "cinder-grasp"}},
		{"blank search keeps order", CardFilter{Domain: "Arcana", Search: "   "}, []string{"fireball", "rune-ward", "wall-of-fire", "cinder-grasp", "chain-lightning"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cardIDs(FilterDomainCards(sampleCards(), tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterDomainCardsSearchRanksByRelevance(t *testing.T) {
	got := cardIDs(FilterDomainCards(sampleCards(), CardFilter{Domain: "Arcana", Search: "fire"}))
	want := []string{"fireball", "cinder-grasp", "wall-of-fire"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestFilterDomainCardsSearchPrefersName(t *testing.T) {
	cards := []DomainCard{
		{ID: "desc", Name: "Ember", Description: "chain of sparks"},
		{ID: "name", Name: "Chain Lightning"},
	}
	got := cardIDs(FilterDomainCards(cards, CardFilter{Search: "chain"}))
	want := []string{"name", "desc"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestFilterDomainCardsSearchTiesAlphabetical(t *testing.T) {
	cards := []DomainCard{
		{ID: "b", Name: "blazing strike"},
		{ID: "a", Name: "Blast"},
	}
	got := cardIDs(FilterDomainCards(cards, CardFilter{Search: "bl"}))
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestFilterDomainCardsSearchMatchesDomainAndType(t *testing.T) {
	got := cardIDs(FilterDomainCards(sampleCards(), CardFilter{Search: "abil"}))
	want := []string{"get-back-up", "whirlwind"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestFilterDomainCardsDoesNotMutateInput(t *testing.T) {
	cards := sampleCards()
	before := cardIDs(cards)
	_ = FilterDomainCards(cards, CardFilter{Search: "fire"})
	if !reflect.DeepEqual(cardIDs(cards), before) {
		t.Fatal("input slice was reordered")
	}
}

func TestFilterDomainCardsSearchMultiWordTerm(t *testing.T) {
	cards := []DomainCard{
		{ID: "roof", Name: "Roof fire"},
		{ID: "wall", Name: "Wall of Fire"},
	}
	got := cardIDs(FilterDomainCards(cards, CardFilter{Search: "of fire"}))
	want := []string{"wall", "roof"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
}

func TestFilterDomainCardsSearchIgnoresAccents(t *testing.T) {
	cards := []DomainCard{
		{ID: "fete", Name: "Fête of Blades"},
		{ID: "other", Name: "Rune Ward"},
	}
	tests := []struct {
		search string
		want   []string
	}{
		{"fete", []string{"fete"}},
		{"FÊTE", []string{"fete"}},
		{"blades", []string{"fete"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := cardIDs(FilterDomainCards(cards, CardFilter{Search: tt.search}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ids = %v, want %v", got, tt.want)
			}
		})
	}
}
