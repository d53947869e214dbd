package keymap

import "strings"

// DefaultConditionEvaluator provides basic condition evaluation.
type DefaultConditionEvaluator struct{}

// Evaluate evaluates a condition expression.
// Supports: condition, !condition, a && b, a || b, name == value.
// The variables "zone" and "role" default to the lookup scope.
func (e *DefaultConditionEvaluator) Evaluate(condition string, ctx *LookupContext) bool {
	if condition == "" {
		return true
	}
	return e.evaluateExpr(condition, ctx)
}

func (e *DefaultConditionEvaluator) evaluateExpr(expr string, ctx *LookupContext) bool {
	if left, right, ok := strings.Cut(expr, "||"); ok {
		return e.evaluateExpr(left, ctx) || e.evaluateExpr(right, ctx)
	}
	if left, right, ok := strings.Cut(expr, "&&"); ok {
		return e.evaluateExpr(left, ctx) && e.evaluateExpr(right, ctx)
	}

	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "!") && !strings.HasPrefix(expr, "!=") {
		return !e.evaluateExpr(expr[1:], ctx)
	}

	if left, right, ok := strings.Cut(expr, "!="); ok {
		return variable(ctx, strings.TrimSpace(left)) != strings.TrimSpace(right)
	}
	if left, right, ok := strings.Cut(expr, "=="); ok {
		return variable(ctx, strings.TrimSpace(left)) == strings.TrimSpace(right)
	}

	if expr == "editing" {
		return ctx.Editing || ctx.Conditions[expr]
	}
	return ctx.Conditions[expr]
}

func variable(ctx *LookupContext, name string) string {
	if v, ok := ctx.Variables[name]; ok {
		return v
	}
	switch name {
	case "zone":
		return ctx.ZoneID
	case "role":
		return ctx.Role
	}
	return ""
}
