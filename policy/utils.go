package policy

import (
	"strings"
)

// Load resolves a dotted path such as "requester.id" or "this.author_id".
func (ctx RequestContext) Load(path string) (any, bool) {
	root, rest, found := strings.Cut(path, ".")
	if !found {
		return nil, false
	}

	var scope map[string]any
	switch root {
	case "requester":
		scope = ctx.Requester
	case "this":
		scope = ctx.This
	case "params":
		scope = ctx.Params
	default:
		return nil, false
	}

	keys := strings.Split(rest, ".")
	for _, k := range keys[:len(keys)-1] {
		next, ok := scope[k].(map[string]any)
		if !ok {
			return nil, false
		}
		scope = next
	}
	value, ok := scope[keys[len(keys)-1]]
	return value, ok
}

// normalize widens integer kinds to int64 so that values decoded from a
// policy document compare equal to ids loaded from the request context.
func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case float64:
		if n == float64(int64(n)) {
			return int64(n)
		}
	}
	return v
}
