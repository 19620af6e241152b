package logging

import (
	"context"
)

type ctxKeyDetails struct{}

type ctxValue struct {
	Super   *ctxValue
	Details []Detail
}

// ContextWith returns a context that carries the details,
// in addition to the details already attached to ctx.
func ContextWith(ctx context.Context, ds ...Detail) context.Context {
	if len(ds) == 0 {
		return ctx
	}
	if ctx == nil {
		ctx = context.Background()
	}
	v := &ctxValue{Details: ds}
	if prev, ok := lookupValue(ctx); ok {
		v.Super = prev
	}
	return context.WithValue(ctx, ctxKeyDetails{}, v)
}

func getLoggingDetailsFromContext(ctx context.Context) []Detail {
	if ctx == nil {
		return nil
	}
	v, ok := lookupValue(ctx)
	if !ok {
		return nil
	}
	var details []Detail
	for ; v != nil; v = v.Super {
		details = append(append([]Detail{}, v.Details...), details...)
	}
	return details
}

func lookupValue(ctx context.Context) (*ctxValue, bool) {
	ptr, ok := ctx.Value(ctxKeyDetails{}).(*ctxValue)
	return ptr, ok
}
