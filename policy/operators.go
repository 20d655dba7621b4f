package policy

import (
	"reflect"
	"slices"

	"github.com/pkg/errors"
)

// Operator computes the value of an expression from its evaluated arguments.
type Operator func(ctx RequestContext, args []any) (any, error)

var operators = map[string]Operator{
	"And":      opAnd,
	"Or":       opOr,
	"Not":      opNot,
	"Eq":       opEq,
	"Contains": opContains,
	"Load":     opLoad,
	"IsAuthor": opIsAuthor,
}

func arity(op string, args []any, n int) error {
	if len(args) != n {
		return errors.Errorf("%s expects %d argument(s), got %d", op, n, len(args))
	}
	return nil
}

func asBool(op string, i int, arg any) (bool, error) {
	b, ok := arg.(bool)
	if !ok {
		return false, errors.Errorf("%s argument %d: expected bool, got %s", op, i, reflect.TypeOf(arg))
	}
	return b, nil
}

func opAnd(ctx RequestContext, args []any) (any, error) {
	for i, arg := range args {
		b, err := asBool("And", i, arg)
		if err != nil {
			return nil, err
		}
		if !b {
			return false, nil
		}
	}
	return true, nil
}

func opOr(ctx RequestContext, args []any) (any, error) {
	for i, arg := range args {
		b, err := asBool("Or", i, arg)
		if err != nil {
			return nil, err
		}
		if b {
			return true, nil
		}
	}
	return false, nil
}

func opNot(ctx RequestContext, args []any) (any, error) {
	if err := arity("Not", args, 1); err != nil {
		return nil, err
	}
	b, err := asBool("Not", 0, args[0])
	if err != nil {
		return nil, err
	}
	return !b, nil
}

func opEq(ctx RequestContext, args []any) (any, error) {
	if err := arity("Eq", args, 2); err != nil {
		return nil, err
	}
	return normalize(args[0]) == normalize(args[1]), nil
}

func opContains(ctx RequestContext, args []any) (any, error) {
	if err := arity("Contains", args, 2); err != nil {
		return nil, err
	}
	list, ok := args[0].([]any)
	if !ok {
		return nil, errors.Errorf("Contains argument 0: expected list, got %s", reflect.TypeOf(args[0]))
	}
	needle := normalize(args[1])
	return slices.ContainsFunc(list, func(v any) bool {
		return normalize(v) == needle
	}), nil
}

func opLoad(ctx RequestContext, args []any) (any, error) {
	if err := arity("Load", args, 1); err != nil {
		return nil, err
	}
	path, ok := args[0].(string)
	if !ok {
		return nil, errors.Errorf("Load argument 0: expected string, got %s", reflect.TypeOf(args[0]))
	}
	value, ok := ctx.Load(path)
	if !ok {
		return nil, errors.Errorf("key not found: %s", path)
	}
	return value, nil
}

// opIsAuthor reports whether an authenticated requester owns the resource.
func opIsAuthor(ctx RequestContext, args []any) (any, error) {
	if err := arity("IsAuthor", args, 0); err != nil {
		return nil, err
	}
	if authenticated, _ := ctx.Requester["authenticated"].(bool); !authenticated {
		return false, nil
	}
	id, ok := ctx.Requester["id"]
	if !ok {
		return false, nil
	}
	author, ok := ctx.This["author_id"]
	if !ok {
		return nil, errors.New("IsAuthor: this.author_id is not set")
	}
	return normalize(id) == normalize(author), nil
}
