package instrument

import "context"

type correlationIDKey struct{}

// SetCorrelationID stores a request correlation ID in the context.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in the context, if any.
func GetCorrelationID(ctx context.Context) string {
	cID, ok := ctx.Value(correlationIDKey{}).(string)
	if !ok {
		return ""
	}
	return cID
}
