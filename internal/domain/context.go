package domain

import "context"

// WithRequester stores the authenticated caller in ctx.
func WithRequester(ctx context.Context, r Requester) context.Context {
	return context.WithValue(ctx, RequesterCtxKey, r)
}

// RequesterFromContext returns the caller, or an anonymous Requester.
func RequesterFromContext(ctx context.Context) Requester {
	r, ok := ctx.Value(RequesterCtxKey).(Requester)
	if !ok {
		return Requester{}
	}
	return r
}

// WithToken stores the raw auth token presented by the caller.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenCtxKey, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(TokenCtxKey).(string)
	return token
}
