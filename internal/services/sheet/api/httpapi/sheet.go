package httpapi

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/louisbranch/sheetkeeper/internal/platform/errors"
	"github.com/louisbranch/sheetkeeper/internal/platform/errors/i18n"
	"github.com/louisbranch/sheetkeeper/internal/systems/daggerheart"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/message"
)

type snapshotRequest struct {
	Resources daggerheart.Resources `json:"resources"`
	Totals    *daggerheart.Totals   `json:"totals,omitempty"`
}

func (h *Handler) resourceSnapshot(_ context.Context, r *http.Request) (any, error) {
	var req snapshotRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	totals := daggerheart.DefaultTotals()
	if req.Totals != nil {
		totals = *req.Totals
	}
	return daggerheart.BuildResourceSnapshot(req.Resources, totals), nil
}

// hpInput lets stress requests carry the character's HP so overflow can be
// applied in the same call. HPCurrent defaults to HPMax.
type hpInput struct {
	HPCurrent *int `json:"hp_current,omitempty"`
	HPMax     *int `json:"hp_max,omitempty"`
}

func (in hpInput) current() (int, bool) {
	switch {
	case in.HPCurrent != nil:
		return *in.HPCurrent, true
	case in.HPMax != nil:
		return *in.HPMax, true
	default:
		return 0, false
	}
}

type hpResult struct {
	HPBefore *int `json:"hp_before,omitempty"`
	HPAfter  *int `json:"hp_after,omitempty"`
}

func applyOverflow(in hpInput, overflow int) hpResult {
	hp, ok := in.current()
	if !ok {
		return hpResult{}
	}
	before, after := daggerheart.ApplyHPOverflow(hp, overflow)
	return hpResult{HPBefore: &before, HPAfter: &after}
}

type stressMarkRequest struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Amount  int `json:"amount"`
	hpInput
}

type stressMarkResponse struct {
	daggerheart.StressMark
	hpResult
}

func (h *Handler) stressMark(ctx context.Context, r *http.Request) (any, error) {
	var req stressMarkRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	mark := daggerheart.CalculateStressMark(req.Current, req.Max, req.Amount)
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("stress.marked", mark.StressMarked),
		attribute.Int("stress.hp_overflow", mark.HPOverflow),
	)
	return stressMarkResponse{StressMark: mark, hpResult: applyOverflow(req.hpInput, mark.HPOverflow)}, nil
}

type stressSetRequest struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Target  int `json:"target"`
	hpInput
}

type stressSetResponse struct {
	daggerheart.StressChange
	hpResult
}

func (h *Handler) stressSet(ctx context.Context, r *http.Request) (any, error) {
	var req stressSetRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	change := daggerheart.ApplyStressWithOverflow(req.Current, req.Max, req.Target)
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int("stress.hp_overflow", change.HPOverflow))
	return stressSetResponse{StressChange: change, hpResult: applyOverflow(req.hpInput, change.HPOverflow)}, nil
}

type thresholdsValidateRequest struct {
	Major      string `json:"major"`
	Severe     string `json:"severe"`
	DSOverride bool   `json:"ds_override"`
	DS         string `json:"ds"`
}

type thresholdsValidateResponse struct {
	Valid   bool           `json:"valid"`
	Code    apperrors.Code `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
}

// thresholdsValidate always answers 200; a failing rule is reported in the
// body with its localized message.
func (h *Handler) thresholdsValidate(_ context.Context, r *http.Request) (any, error) {
	var req thresholdsValidateRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	err := daggerheart.ValidateThresholdsManual(req.Major, req.Severe, req.DSOverride, req.DS)
	if err == nil {
		return thresholdsValidateResponse{Valid: true}, nil
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return nil, err
	}
	return thresholdsValidateResponse{
		Code:    appErr.Code,
		Message: localize(i18n.GetCatalog(requestLocale(r)), appErr),
	}, nil
}

type thresholdsDSRequest struct {
	Severe   int    `json:"severe"`
	Override bool   `json:"override"`
	DS       string `json:"ds"`
}

func (h *Handler) thresholdsDS(_ context.Context, r *http.Request) (any, error) {
	var req thresholdsDSRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return map[string]int{"ds": daggerheart.ComputeDsValue(req.Severe, req.Override, req.DS)}, nil
}

type thresholdsResolveRequest struct {
	Settings    daggerheart.ThresholdsSettings `json:"settings"`
	ArmorMajor  int                            `json:"armor_major"`
	ArmorSevere int                            `json:"armor_severe"`
	Level       int                            `json:"level"`
}

func (h *Handler) thresholdsResolve(_ context.Context, r *http.Request) (any, error) {
	var req thresholdsResolveRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return daggerheart.ResolveThresholds(req.Settings, req.ArmorMajor, req.ArmorSevere, req.Level)
}

type damageEvaluateRequest struct {
	Amount         int                         `json:"amount"`
	Thresholds     daggerheart.ThresholdValues `json:"thresholds"`
	EnableCritical bool                        `json:"enable_critical"`
	HPCurrent      int                         `json:"hp_current"`
	ArmorSlots     int                         `json:"armor_slots"`
}

type damageEvaluateResponse struct {
	Severity    string `json:"severity"`
	Marks       int    `json:"marks"`
	HPBefore    int    `json:"hp_before"`
	HPAfter     int    `json:"hp_after"`
	ArmorBefore int    `json:"armor_before"`
	ArmorAfter  int    `json:"armor_after"`
	ArmorSpent  int    `json:"armor_spent"`
}

func (h *Handler) damageEvaluate(ctx context.Context, r *http.Request) (any, error) {
	var req damageEvaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	result, err := daggerheart.EvaluateDamage(req.Amount, req.Thresholds, req.EnableCritical)
	if err != nil {
		return nil, err
	}
	applied := daggerheart.ApplyDamageWithArmor(req.HPCurrent, req.ArmorSlots, result)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("damage.severity", applied.Result.Severity.String()))
	return damageEvaluateResponse{
		Severity:    applied.Result.Severity.String(),
		Marks:       applied.Result.Marks,
		HPBefore:    applied.HPBefore,
		HPAfter:     applied.HPAfter,
		ArmorBefore: applied.ArmorBefore,
		ArmorAfter:  applied.ArmorAfter,
		ArmorSpent:  applied.ArmorSpent,
	}, nil
}

type goldTotalRequest struct {
	Gold *daggerheart.Gold `json:"gold"`
}

type goldTotalResponse struct {
	Total      int              `json:"total"`
	Formatted  string           `json:"formatted"`
	Normalized daggerheart.Gold `json:"normalized"`
}

func (h *Handler) goldTotal(_ context.Context, r *http.Request) (any, error) {
	var req goldTotalRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	total := daggerheart.TotalGold(req.Gold)
	printer := message.NewPrinter(i18n.Match(requestLocale(r)))
	return goldTotalResponse{
		Total:      total,
		Formatted:  printer.Sprintf("%d", total),
		Normalized: daggerheart.NormalizeGold(total),
	}, nil
}
