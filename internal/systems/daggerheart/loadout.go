package daggerheart

import (
	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
)

// LoadoutMaxCards is the number of domain cards a character may hold active.
const LoadoutMaxCards = 5

var (
	ErrLoadoutFull   = apperrors.New(apperrors.CodeLoadoutFull, "loadout is full")
	ErrCardNotFound  = apperrors.New(apperrors.CodeLoadoutCardNotFound, "card not found")
	ErrDuplicateCard = apperrors.New(apperrors.CodeLoadoutDuplicateCard, "card appears in both loadout and vault")
)

// Loadout tracks active and vaulted domain card ids.
type Loadout struct {
	Active []string `json:"active"`
	Vault  []string `json:"vault"`
}

// RecallResult reports the loadout and stress/HP changes of a recall.
type RecallResult struct {
	Loadout Loadout    `json:"loadout"`
	Stress  StressMark `json:"stress"`
	HPAfter int        `json:"hp_after"`
}

// NewLoadout validates and returns a loadout.
func NewLoadout(active, vault []string) (Loadout, error) {
	if len(active) > LoadoutMaxCards {
		return Loadout{}, ErrLoadoutFull
	}
	seen := make(map[string]struct{}, len(active)+len(vault))
	for _, id := range append(append([]string{}, active...), vault...) {
		if _, ok := seen[id]; ok {
			return Loadout{}, cardError(apperrors.CodeLoadoutDuplicateCard, ErrDuplicateCard.Message, id)
		}
		seen[id] = struct{}{}
	}
	return Loadout{Active: active, Vault: vault}, nil
}

// MoveToActive moves a card from vault to active.
func (l Loadout) MoveToActive(cardID string) (Loadout, error) {
	index := indexOf(l.Vault, cardID)
	if index == -1 {
		return Loadout{}, cardError(apperrors.CodeLoadoutCardNotFound, ErrCardNotFound.Message, cardID)
	}
	if len(l.Active) >= LoadoutMaxCards {
		return Loadout{}, ErrLoadoutFull
	}
	return Loadout{
		Active: append(append([]string{}, l.Active...), cardID),
		Vault:  without(l.Vault, index),
	}, nil
}

// MoveToVault moves a card from active to vault.
func (l Loadout) MoveToVault(cardID string) (Loadout, error) {
	index := indexOf(l.Active, cardID)
	if index == -1 {
		return Loadout{}, cardError(apperrors.CodeLoadoutCardNotFound, ErrCardNotFound.Message, cardID)
	}
	return Loadout{
		Active: without(l.Active, index),
		Vault:  append(append([]string{}, l.Vault...), cardID),
	}, nil
}

// RecallToActive moves a vaulted card into the loadout. Outside a rest the
// card's recall cost is marked as stress; stress past max spills into HP.
func (l Loadout) RecallToActive(card DomainCard, stress, stressMax, hp int, inRest bool) (RecallResult, error) {
	next, err := l.MoveToActive(card.ID)
	if err != nil {
		return RecallResult{}, err
	}
	cost := 0
	if !inRest && card.RecallCost != nil {
		cost = *card.RecallCost
	}
	mark := CalculateStressMark(stress, stressMax, cost)
	_, hpAfter := ApplyHPOverflow(hp, mark.HPOverflow)
	return RecallResult{Loadout: next, Stress: mark, HPAfter: hpAfter}, nil
}

func cardError(code apperrors.Code, message, cardID string) error {
	return apperrors.WithMetadata(code, message+": "+cardID, map[string]string{"CardID": cardID})
}

func indexOf(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func without(values []string, index int) []string {
	out := make([]string, 0, len(values)-1)
	out = append(out, values[:index]...)
	return append(out, values[index+1:]...)
}
