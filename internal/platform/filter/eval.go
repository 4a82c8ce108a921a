package filter

import (
	"cmp"
	"fmt"
	"strings"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Resolver returns the value of a field for the record being evaluated.
// Supported values are string, int, int64 and []string.
type Resolver func(name string) (any, bool)

// Evaluate reports whether the record behind resolve satisfies e.
func Evaluate(e *expr.Expr, resolve Resolver) (bool, error) {
	if e == nil {
		return true, nil
	}
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	if !ok {
		return false, fmt.Errorf("unsupported expression %T", e.GetExprKind())
	}
	return evalCall(call.CallExpr, resolve)
}

func evalCall(call *expr.Expr_Call, resolve Resolver) (bool, error) {
	args := call.GetArgs()
	switch call.GetFunction() {
	case filtering.FunctionAnd, filtering.FunctionFuzzyAnd:
		for _, arg := range args {
			ok, err := Evaluate(arg, resolve)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case filtering.FunctionOr:
		for _, arg := range args {
			ok, err := Evaluate(arg, resolve)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case filtering.FunctionNot:
		if len(args) != 1 {
			return false, fmt.Errorf("NOT takes 1 argument, got %d", len(args))
		}
		ok, err := Evaluate(args[0], resolve)
		return !ok, err
	case filtering.FunctionHas:
		return evalHas(args, resolve)
	case filtering.FunctionEquals, filtering.FunctionNotEquals,
		filtering.FunctionLessThan, filtering.FunctionLessEquals,
		filtering.FunctionGreaterThan, filtering.FunctionGreaterEquals:
		return evalCompare(call.GetFunction(), args, resolve)
	default:
		return false, fmt.Errorf("unsupported function %s", call.GetFunction())
	}
}

func operands(args []*expr.Expr, resolve Resolver) (any, any, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("expected 2 arguments, got %d", len(args))
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return nil, nil, fmt.Errorf("left operand must be a field, got %T", args[0].GetExprKind())
	}
	name := ident.IdentExpr.GetName()
	left, ok := resolve(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown field %s", name)
	}
	c, ok := args[1].GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return nil, nil, fmt.Errorf("right operand must be a literal, got %T", args[1].GetExprKind())
	}
	switch v := c.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return left, v.StringValue, nil
	case *expr.Constant_Int64Value:
		return left, v.Int64Value, nil
	default:
		return nil, nil, fmt.Errorf("unsupported literal %T", v)
	}
}

// evalHas implements ":" as a case-insensitive substring test on strings and
// a case-insensitive membership test on lists.
func evalHas(args []*expr.Expr, resolve Resolver) (bool, error) {
	left, right, err := operands(args, resolve)
	if err != nil {
		return false, err
	}
	needle, ok := right.(string)
	if !ok {
		return false, fmt.Errorf(": expects a string literal, got %T", right)
	}
	switch v := left.(type) {
	case string:
		if needle == "*" {
			return v != "", nil
		}
		return strings.Contains(strings.ToLower(v), strings.ToLower(needle)), nil
	case []string:
		for _, item := range v {
			if needle == "*" || strings.EqualFold(item, needle) {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, fmt.Errorf(": unsupported on %T", left)
	}
}

func evalCompare(op string, args []*expr.Expr, resolve Resolver) (bool, error) {
	left, right, err := operands(args, resolve)
	if err != nil {
		return false, err
	}

	var order int
	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		if !ok {
			return false, fmt.Errorf("cannot compare string with %T", right)
		}
		order = cmp.Compare(strings.ToLower(l), strings.ToLower(r))
	case int:
		r, ok := right.(int64)
		if !ok {
			return false, fmt.Errorf("cannot compare int with %T", right)
		}
		order = cmp.Compare(int64(l), r)
	case int64:
		r, ok := right.(int64)
		if !ok {
			return false, fmt.Errorf("cannot compare int with %T", right)
		}
		order = cmp.Compare(l, r)
	default:
		return false, fmt.Errorf("cannot compare %T", left)
	}

	switch op {
	case filtering.FunctionEquals:
		return order == 0, nil
	case filtering.FunctionNotEquals:
		return order != 0, nil
	case filtering.FunctionLessThan:
		return order < 0, nil
	case filtering.FunctionLessEquals:
		return order <= 0, nil
	case filtering.FunctionGreaterThan:
		return order > 0, nil
	default:
		return order >= 0, nil
	}
}
