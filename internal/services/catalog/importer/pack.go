package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"gopkg.in/yaml.v3"
)

const (
	packSystemID      = "daggerheart"
	packSystemVersion = "v1"
)

// packFileNames are tried in order; the first one present is imported.
var packFileNames = []string{"domain_cards.json", "domain_cards.yaml", "domain_cards.yml"}

// cardPack is the on-disk shape of a domain card pack.
type cardPack struct {
	SystemID      string                   `json:"system_id" yaml:"system_id"`
	SystemVersion string                   `json:"system_version" yaml:"system_version"`
	Source        string                   `json:"source" yaml:"source"`
	Items         []daggerheart.DomainCard `json:"items" yaml:"items"`
}

func decodePack(name string, data []byte) (cardPack, error) {
	var pack cardPack
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &pack); err != nil {
			return cardPack{}, fmt.Errorf("decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return cardPack{}, fmt.Errorf("decode %s: %w", name, err)
		}
	default:
		return cardPack{}, fmt.Errorf("decode %s: unsupported extension", name)
	}
	return pack, nil
}

// validatePack checks the pack header and every card, reporting all
// problems at once. Cards without a source inherit the pack source.
func validatePack(pack *cardPack) error {
	var errs []error
	if pack.SystemID != packSystemID {
		errs = append(errs, fmt.Errorf("unsupported system id %q", pack.SystemID))
	}
	if pack.SystemVersion != packSystemVersion {
		errs = append(errs, fmt.Errorf("unsupported system version %q", pack.SystemVersion))
	}
	switch pack.Source {
	case daggerheart.SourceOfficial, daggerheart.SourceHomebrew:
	default:
		errs = append(errs, fmt.Errorf("source must be %q or %q, got %q",
			daggerheart.SourceOfficial, daggerheart.SourceHomebrew, pack.Source))
	}
	if len(pack.Items) == 0 {
		errs = append(errs, errors.New("pack has no items"))
	}

	seen := make(map[string]int, len(pack.Items))
	for i := range pack.Items {
		card := &pack.Items[i]
		card.ID = strings.TrimSpace(card.ID)
		if card.Source == "" {
			card.Source = pack.Source
		}
		if err := validateCard(*card); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		if first, dup := seen[card.ID]; dup {
			errs = append(errs, fmt.Errorf("item %d: duplicate id %s (first at item %d)", i, card.ID, first))
			continue
		}
		seen[card.ID] = i
	}
	return errors.Join(errs...)
}

func validateCard(card daggerheart.DomainCard) error {
	var errs []error
	if card.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if strings.TrimSpace(card.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if strings.TrimSpace(card.Domain) == "" {
		errs = append(errs, errors.New("domain is required"))
	}
	if err := daggerheart.ValidateLevel(card.Level); err != nil {
		errs = append(errs, fmt.Errorf("level %d out of range", card.Level))
	}
	if card.HopeCost != nil && *card.HopeCost < 0 {
		errs = append(errs, errors.New("hope_cost cannot be negative"))
	}
	if card.RecallCost != nil && *card.RecallCost < 0 {
		errs = append(errs, errors.New("recall_cost cannot be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		if card.ID != "" {
			return fmt.Errorf("%s: %w", card.ID, err)
		}
		return err
	}
	return nil
}
