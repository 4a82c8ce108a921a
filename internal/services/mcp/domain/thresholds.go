package domain

import (
	"context"
	"errors"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/platform/errors/i18n"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ThresholdsValidateInput represents the MCP tool input for manual threshold validation.
type ThresholdsValidateInput struct {
	Major      string `json:"major" jsonschema:"major threshold as entered"`
	Severe     string `json:"severe" jsonschema:"severe threshold as entered"`
	DSOverride bool   `json:"ds_override,omitempty" jsonschema:"whether the massive damage threshold is overridden"`
	DS         string `json:"ds,omitempty" jsonschema:"massive damage threshold as entered, when overridden"`
	Locale     string `json:"locale,omitempty" jsonschema:"optional BCP 47 tag for the message"`
}

// ThresholdsValidateResult represents the MCP tool output for manual threshold validation.
type ThresholdsValidateResult struct {
	Valid   bool   `json:"valid" jsonschema:"whether the thresholds can be saved"`
	Code    string `json:"code,omitempty" jsonschema:"stable code of the first failing rule"`
	Message string `json:"message,omitempty" jsonschema:"localized description of the first failing rule"`
}

// ThresholdsDSInput represents the MCP tool input for the massive damage threshold.
type ThresholdsDSInput struct {
	Severe   int    `json:"severe" jsonschema:"severe threshold"`
	Override bool   `json:"override,omitempty" jsonschema:"whether an override value is set"`
	DS       string `json:"ds,omitempty" jsonschema:"override value as entered"`
}

// ThresholdsDSResult represents the MCP tool output for the massive damage threshold.
type ThresholdsDSResult struct {
	DS int `json:"ds" jsonschema:"massive damage threshold"`
}

// ThresholdsResolveInput represents the MCP tool input for resolving thresholds.
type ThresholdsResolveInput struct {
	Auto        bool `json:"auto,omitempty" jsonschema:"derive thresholds from armor and level"`
	Major       int  `json:"major,omitempty" jsonschema:"manual major threshold"`
	Severe      int  `json:"severe,omitempty" jsonschema:"manual severe threshold"`
	DSOverride  bool `json:"ds_override,omitempty" jsonschema:"whether the manual massive damage threshold is overridden"`
	DS          int  `json:"ds,omitempty" jsonschema:"manual massive damage threshold"`
	ArmorMajor  int  `json:"armor_major,omitempty" jsonschema:"equipped armor base major threshold"`
	ArmorSevere int  `json:"armor_severe,omitempty" jsonschema:"equipped armor base severe threshold"`
	Level       int  `json:"level" jsonschema:"character level (1-10)"`
}

// ThresholdsResolveResult represents the MCP tool output for resolved thresholds.
type ThresholdsResolveResult = daggerheart.ThresholdValues

// DamageEvaluateInput represents the MCP tool input for damage evaluation.
type DamageEvaluateInput struct {
	Amount         int  `json:"amount" jsonschema:"incoming damage total"`
	Major          int  `json:"major" jsonschema:"major threshold"`
	Severe         int  `json:"severe" jsonschema:"severe threshold"`
	DS             int  `json:"ds,omitempty" jsonschema:"massive damage threshold; defaults to twice severe"`
	EnableCritical bool `json:"enable_critical,omitempty" jsonschema:"whether massive damage applies"`
	HPCurrent      int  `json:"hp_current,omitempty" jsonschema:"current HP"`
	ArmorSlots     int  `json:"armor_slots,omitempty" jsonschema:"armor slots available; one is spent to reduce severity"`
}

// DamageEvaluateResult represents the MCP tool output for damage evaluation.
type DamageEvaluateResult struct {
	Severity    string `json:"severity" jsonschema:"damage severity after armor"`
	Marks       int    `json:"marks" jsonschema:"HP to mark"`
	HPBefore    int    `json:"hp_before" jsonschema:"HP before damage"`
	HPAfter     int    `json:"hp_after" jsonschema:"HP after damage"`
	ArmorBefore int    `json:"armor_before" jsonschema:"armor slots before damage"`
	ArmorAfter  int    `json:"armor_after" jsonschema:"armor slots after damage"`
	ArmorSpent  int    `json:"armor_spent" jsonschema:"armor slots spent"`
}

// ThresholdsValidateTool defines the MCP tool schema for manual threshold validation.
func ThresholdsValidateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "thresholds_validate",
		Description: "Validates manually entered damage thresholds and reports the first failing rule",
	}
}

// ThresholdsDSTool defines the MCP tool schema for the massive damage threshold.
func ThresholdsDSTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "thresholds_ds",
		Description: "Computes the massive damage threshold from severe and an optional override",
	}
}

// ThresholdsResolveTool defines the MCP tool schema for resolving thresholds.
func ThresholdsResolveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "thresholds_resolve",
		Description: "Resolves the thresholds a sheet displays, derived from armor and level in auto mode",
	}
}

// DamageEvaluateTool defines the MCP tool schema for damage evaluation.
func DamageEvaluateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "damage_evaluate",
		Description: "Evaluates damage severity against thresholds, spending armor before marking HP",
	}
}

// ThresholdsValidateHandler validates manual thresholds. A failing rule is a
// normal result, not a tool error.
func ThresholdsValidateHandler() mcp.ToolHandlerFor[ThresholdsValidateInput, ThresholdsValidateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ThresholdsValidateInput) (*mcp.CallToolResult, ThresholdsValidateResult, error) {
		err := daggerheart.ValidateThresholdsManual(input.Major, input.Severe, input.DSOverride, input.DS)
		if err == nil {
			return nil, ThresholdsValidateResult{Valid: true}, nil
		}
		var appErr *apperrors.Error
		if !errors.As(err, &appErr) {
			return nil, ThresholdsValidateResult{}, err
		}
		message := appErr.Message
		if catalog := i18n.GetCatalog(localeTag(input.Locale)); catalog.Has(string(appErr.Code)) {
			message = catalog.Format(string(appErr.Code), appErr.Metadata)
		}
		return nil, ThresholdsValidateResult{Code: string(appErr.Code), Message: message}, nil
	}
}

// ThresholdsDSHandler computes the massive damage threshold.
func ThresholdsDSHandler() mcp.ToolHandlerFor[ThresholdsDSInput, ThresholdsDSResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ThresholdsDSInput) (*mcp.CallToolResult, ThresholdsDSResult, error) {
		return nil, ThresholdsDSResult{DS: daggerheart.ComputeDsValue(input.Severe, input.Override, input.DS)}, nil
	}
}

// ThresholdsResolveHandler resolves displayed thresholds.
func ThresholdsResolveHandler() mcp.ToolHandlerFor[ThresholdsResolveInput, ThresholdsResolveResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ThresholdsResolveInput) (*mcp.CallToolResult, ThresholdsResolveResult, error) {
		settings := daggerheart.ThresholdsSettings{
			Auto: input.Auto,
			Values: daggerheart.ThresholdValues{
				Major:      input.Major,
				Severe:     input.Severe,
				DSOverride: input.DSOverride,
				DS:         input.DS,
			},
		}
		values, err := daggerheart.ResolveThresholds(settings, input.ArmorMajor, input.ArmorSevere, input.Level)
		if err != nil {
			return nil, ThresholdsResolveResult{}, err
		}
		return nil, values, nil
	}
}

// DamageEvaluateHandler evaluates incoming damage.
func DamageEvaluateHandler() mcp.ToolHandlerFor[DamageEvaluateInput, DamageEvaluateResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DamageEvaluateInput) (*mcp.CallToolResult, DamageEvaluateResult, error) {
		result, err := daggerheart.EvaluateDamage(input.Amount, daggerheart.ThresholdValues{
			Major:  input.Major,
			Severe: input.Severe,
			DS:     input.DS,
		}, input.EnableCritical)
		if err != nil {
			return nil, DamageEvaluateResult{}, err
		}
		applied := daggerheart.ApplyDamageWithArmor(input.HPCurrent, input.ArmorSlots, result)
		return nil, DamageEvaluateResult{
			Severity:    applied.Result.Severity.String(),
			Marks:       applied.Result.Marks,
			HPBefore:    applied.HPBefore,
			HPAfter:     applied.HPAfter,
			ArmorBefore: applied.ArmorBefore,
			ArmorAfter:  applied.ArmorAfter,
			ArmorSpent:  applied.ArmorSpent,
		}, nil
	}
}
