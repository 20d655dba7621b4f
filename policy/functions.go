package policy

import (
	"github.com/pkg/errors"
)

// Version is the only policy document version understood by EvaluatePolicy.
const Version = "2024-01-01"

// SummarizeConclusion folds conclusions in order. ALLOW and DENY decide
// immediately; otherwise OK and NG are merged and UNSET falls back to
// defaultAllow.
func SummarizeConclusion(conclusions []Conclusion, defaultAllow bool) bool {
	result := UNSET
	for _, c := range conclusions {
		switch c {
		case ALLOW:
			return true
		case DENY:
			return false
		default:
			result = result.Or(c)
		}
	}
	if result == UNSET {
		return defaultAllow
	}
	return result == OK
}

// EvaluatePolicy merges the conclusions of every statement of action whose
// condition holds. Statements that fail to evaluate are skipped.
func EvaluatePolicy(doc PolicyDocument, ctx RequestContext, action string) (Conclusion, error) {
	policy, ok := doc.Versions[Version]
	if !ok {
		return UNSET, errors.Errorf("policy %q: unsupported version", doc.Name)
	}

	conclusion := UNSET
	for _, stmt := range policy.Statements[action] {
		result, err := Eval(ctx, stmt.Condition)
		if err != nil {
			continue
		}
		if holds, _ := result.Result.(bool); holds {
			conclusion = conclusion.Or(stmt.Emit)
		}
	}
	return conclusion, nil
}

// Eval evaluates expr depth first and returns the full evaluation trace.
func Eval(ctx RequestContext, expr Expr) (EvalResult, error) {
	if expr.Const != nil {
		return EvalResult{Operator: "Const", Result: expr.Const}, nil
	}

	trace := EvalResult{Operator: expr.Operator}
	args := make([]any, 0, len(expr.Args))
	for _, arg := range expr.Args {
		result, err := Eval(ctx, arg)
		trace.Args = append(trace.Args, result)
		if err != nil {
			trace.Error = err.Error()
			return trace, err
		}
		args = append(args, result.Result)
	}

	op, ok := operators[expr.Operator]
	if !ok {
		err := errors.Errorf("unknown operator: %s", expr.Operator)
		trace.Error = err.Error()
		return trace, err
	}

	value, err := op(ctx, args)
	if err != nil {
		trace.Error = err.Error()
		return trace, err
	}
	trace.Result = value
	return trace, nil
}
