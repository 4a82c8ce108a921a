package domain

import (
	"context"

	"github.com/louisbranch/sheetkeeper/internal/platform/errors/i18n"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResourceSnapshotInput represents the MCP tool input for a resource snapshot.
type ResourceSnapshotInput struct {
	Resources daggerheart.Resources `json:"resources,omitempty" jsonschema:"raw resources object from the character record"`
	Totals    *daggerheart.Totals   `json:"totals,omitempty" jsonschema:"computed stat totals; defaults to level 1 baseline"`
}

// ResourceSnapshotResult represents the MCP tool output for a resource snapshot.
type ResourceSnapshotResult = daggerheart.ResourceSnapshot

// StressMarkInput represents the MCP tool input for marking stress.
type StressMarkInput struct {
	Current   int  `json:"current,omitempty" jsonschema:"stress currently marked"`
	Max       int  `json:"max" jsonschema:"stress slots available"`
	Amount    int  `json:"amount" jsonschema:"stress to mark"`
	HPCurrent *int `json:"hp_current,omitempty" jsonschema:"optional current HP; overflow is applied when set"`
}

// StressMarkResult represents the MCP tool output for marking stress.
type StressMarkResult struct {
	StressMarked int  `json:"stress_marked" jsonschema:"stress actually marked"`
	HPOverflow   int  `json:"hp_overflow" jsonschema:"stress that did not fit and must be marked as HP"`
	StressAfter  int  `json:"stress_after" jsonschema:"stress after marking"`
	Vulnerable   bool `json:"vulnerable" jsonschema:"whether stress is now full"`
	HPBefore     *int `json:"hp_before,omitempty" jsonschema:"HP before overflow, when hp_current was given"`
	HPAfter      *int `json:"hp_after,omitempty" jsonschema:"HP after overflow, when hp_current was given"`
}

// StressSetInput represents the MCP tool input for setting stress.
type StressSetInput struct {
	Current   int  `json:"current,omitempty" jsonschema:"stress currently marked"`
	Max       int  `json:"max" jsonschema:"stress slots available"`
	Target    int  `json:"target" jsonschema:"requested stress value"`
	HPCurrent *int `json:"hp_current,omitempty" jsonschema:"optional current HP; overflow is applied when set"`
}

// StressSetResult represents the MCP tool output for setting stress.
type StressSetResult struct {
	StressBefore int  `json:"stress_before" jsonschema:"stress before the change"`
	StressAfter  int  `json:"stress_after" jsonschema:"stress after the change"`
	HPOverflow   int  `json:"hp_overflow" jsonschema:"stress that did not fit and must be marked as HP"`
	Vulnerable   bool `json:"vulnerable" jsonschema:"whether stress is now full"`
	HPBefore     *int `json:"hp_before,omitempty" jsonschema:"HP before overflow, when hp_current was given"`
	HPAfter      *int `json:"hp_after,omitempty" jsonschema:"HP after overflow, when hp_current was given"`
}

// GoldTotalInput represents the MCP tool input for a gold total.
type GoldTotalInput struct {
	Handfuls int    `json:"handfuls,omitempty" jsonschema:"handfuls of gold (10 coins each)"`
	Bags     int    `json:"bags,omitempty" jsonschema:"bags of gold (100 coins each)"`
	Chests   int    `json:"chests,omitempty" jsonschema:"chests of gold (1000 coins each)"`
	Coins    int    `json:"coins,omitempty" jsonschema:"loose coins"`
	Locale   string `json:"locale,omitempty" jsonschema:"optional BCP 47 tag for the formatted total"`
}

// GoldTotalResult represents the MCP tool output for a gold total.
type GoldTotalResult struct {
	Total      int              `json:"total" jsonschema:"total value in coins"`
	Formatted  string           `json:"formatted" jsonschema:"total formatted for the requested locale"`
	Normalized daggerheart.Gold `json:"normalized" jsonschema:"total broken into the largest denominations"`
}

// ResourceSnapshotTool defines the MCP tool schema for resource snapshots.
func ResourceSnapshotTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "resource_snapshot",
		Description: "Projects raw character resources onto display values, falling back to computed totals",
	}
}

// StressMarkTool defines the MCP tool schema for marking stress.
func StressMarkTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stress_mark",
		Description: "Marks stress, reporting any overflow that spills into HP",
	}
}

// StressSetTool defines the MCP tool schema for setting stress.
func StressSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "stress_set",
		Description: "Sets stress to an absolute value; raising it past max overflows into HP",
	}
}

// GoldTotalTool defines the MCP tool schema for gold totals.
func GoldTotalTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "gold_total",
		Description: "Converts handfuls, bags, chests and coins into a coin total",
	}
}

// ResourceSnapshotHandler builds a resource snapshot.
func ResourceSnapshotHandler() mcp.ToolHandlerFor[ResourceSnapshotInput, ResourceSnapshotResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ResourceSnapshotInput) (*mcp.CallToolResult, ResourceSnapshotResult, error) {
		totals := daggerheart.DefaultTotals()
		if input.Totals != nil {
			totals = *input.Totals
		}
		return nil, daggerheart.BuildResourceSnapshot(input.Resources, totals), nil
	}
}

// StressMarkHandler marks stress.
func StressMarkHandler() mcp.ToolHandlerFor[StressMarkInput, StressMarkResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input StressMarkInput) (*mcp.CallToolResult, StressMarkResult, error) {
		mark := daggerheart.CalculateStressMark(input.Current, input.Max, input.Amount)
		result := StressMarkResult{
			StressMarked: mark.StressMarked,
			HPOverflow:   mark.HPOverflow,
			StressAfter:  mark.StressAfter,
			Vulnerable:   mark.Vulnerable,
		}
		result.HPBefore, result.HPAfter = applyOverflow(input.HPCurrent, mark.HPOverflow)
		return nil, result, nil
	}
}

// StressSetHandler sets stress to an absolute value.
func StressSetHandler() mcp.ToolHandlerFor[StressSetInput, StressSetResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input StressSetInput) (*mcp.CallToolResult, StressSetResult, error) {
		change := daggerheart.ApplyStressWithOverflow(input.Current, input.Max, input.Target)
		result := StressSetResult{
			StressBefore: change.StressBefore,
			StressAfter:  change.StressAfter,
			HPOverflow:   change.HPOverflow,
			Vulnerable:   change.Vulnerable,
		}
		result.HPBefore, result.HPAfter = applyOverflow(input.HPCurrent, change.HPOverflow)
		return nil, result, nil
	}
}

// GoldTotalHandler totals a gold breakdown.
func GoldTotalHandler() mcp.ToolHandlerFor[GoldTotalInput, GoldTotalResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input GoldTotalInput) (*mcp.CallToolResult, GoldTotalResult, error) {
		total := daggerheart.TotalGold(&daggerheart.Gold{
			Handfuls: input.Handfuls,
			Bags:     input.Bags,
			Chests:   input.Chests,
			Coins:    input.Coins,
		})
		printer := message.NewPrinter(localeTag(input.Locale))
		return nil, GoldTotalResult{
			Total:      total,
			Formatted:  printer.Sprintf("%d", total),
			Normalized: daggerheart.NormalizeGold(total),
		}, nil
	}
}

func applyOverflow(hpCurrent *int, overflow int) (before, after *int) {
	if hpCurrent == nil {
		return nil, nil
	}
	b, a := daggerheart.ApplyHPOverflow(*hpCurrent, overflow)
	return &b, &a
}

func localeTag(locale string) language.Tag {
	return i18n.ParseAcceptLanguage(locale)
}
