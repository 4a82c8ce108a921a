package importer

import (
	"strings"
	"testing"

	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
)

const jsonPack = `{
  "system_id": "daggerheart",
  "system_version": "v1",
  "source": "official",
  "items": [
    {"id": "arcana-fireball", "name": "Fireball", "domain": "Arcana", "level": 3, "type": "spell", "recall_cost": 2, "tags": ["fire"]},
    {"id": "blade-strike", "name": "Strike", "domain": "Blade", "level": 1, "type": "ability", "source": "homebrew"}
  ]
}`

const yamlPack = `system_id: daggerheart
system_version: v1
source: homebrew
items:
  - id: grace-charm
    name: Charm
    domain: Grace
    level: 2
    type: spell
    hope_cost: 1
`

func TestDecodePack(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     string
		wantIDs  []string
		wantFrom string
	}{
		{name: "json", file: "domain_cards.json", data: jsonPack, wantIDs: []string{"arcana-fireball", "blade-strike"}, wantFrom: "official"},
		{name: "yaml", file: "domain_cards.yaml", data: yamlPack, wantIDs: []string{"grace-charm"}, wantFrom: "homebrew"},
		{name: "yml", file: "domain_cards.yml", data: yamlPack, wantIDs: []string{"grace-charm"}, wantFrom: "homebrew"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack, err := decodePack(tt.file, []byte(tt.data))
			if err != nil {
				t.Fatalf("decodePack: %v", err)
			}
			if pack.Source != tt.wantFrom {
				t.Fatalf("Source = %q, want %q", pack.Source, tt.wantFrom)
			}
			if len(pack.Items) != len(tt.wantIDs) {
				t.Fatalf("items = %d, want %d", len(pack.Items), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if pack.Items[i].ID != id {
					t.Fatalf("item %d id = %q, want %q", i, pack.Items[i].ID, id)
				}
			}
		})
	}
}

func TestDecodePackYAMLCosts(t *testing.T) {
	pack, err := decodePack("domain_cards.yaml", []byte(yamlPack))
	if err != nil {
		t.Fatalf("decodePack: %v", err)
	}
	card := pack.Items[0]
	if card.HopeCost == nil || *card.HopeCost != 1 {
		t.Fatalf("HopeCost = %v, want 1", card.HopeCost)
	}
	if card.RecallCost != nil {
		t.Fatalf("RecallCost = %v, want nil", *card.RecallCost)
	}
}

func TestDecodePackErrors(t *testing.T) {
	if _, err := decodePack("domain_cards.json", []byte("{")); err == nil || !strings.Contains(err.Error(), "decode domain_cards.json") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if _, err := decodePack("domain_cards.toml", []byte("")); err == nil {
		t.Fatal("expected unsupported extension error")
	}
}

func TestValidatePackInheritsSource(t *testing.T) {
	pack, err := decodePack("domain_cards.json", []byte(jsonPack))
	if err != nil {
		t.Fatalf("decodePack: %v", err)
	}
	if err := validatePack(&pack); err != nil {
		t.Fatalf("validatePack: %v", err)
	}
	if pack.Items[0].Source != daggerheart.SourceOfficial {
		t.Fatalf("item 0 source = %q, want inherited official", pack.Items[0].Source)
	}
	if pack.Items[1].Source != daggerheart.SourceHomebrew {
		t.Fatalf("item 1 source = %q, want explicit homebrew", pack.Items[1].Source)
	}
}

func TestValidatePackReportsEveryProblem(t *testing.T) {
	negative := -1
	pack := cardPack{
		SystemID:      "other",
		SystemVersion: "v2",
		Source:        "mystery",
		Items: []daggerheart.DomainCard{
			{ID: "a", Name: "A", Domain: "Arcana", Level: 1},
			{ID: "a", Name: "A again", Domain: "Arcana", Level: 1},
			{ID: "b", Domain: "Blade", Level: 11, HopeCost: &negative},
			{Name: "No ID", Level: 1, RecallCost: &negative},
		},
	}
	err := validatePack(&pack)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{
		`unsupported system id "other"`,
		`unsupported system version "v2"`,
		`got "mystery"`,
		"duplicate id a",
		"b: name is required",
		"level 11 out of range",
		"hope_cost cannot be negative",
		"id is required",
		"domain is required",
		"recall_cost cannot be negative",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error missing %q:\n%s", want, msg)
		}
	}
}

func TestValidatePackRejectsEmpty(t *testing.T) {
	pack := cardPack{SystemID: packSystemID, SystemVersion: packSystemVersion, Source: daggerheart.SourceOfficial}
	if err := validatePack(&pack); err == nil || !strings.Contains(err.Error(), "no items") {
		t.Fatalf("expected empty pack error, got %v", err)
	}
}
