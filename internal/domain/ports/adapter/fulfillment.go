package adapter

import (
	"context"
	"errors"
)

// FulfillmentClient submits an order to the upstream SMM provider and
// returns its external order identifier.
type FulfillmentClient interface {
	SubmitOrder(ctx context.Context, serviceCode, link string, quantity int) (string, error)
}

// DispatchFailure is implemented by dispatch errors carrying a
// classified failure reason.
type DispatchFailure interface {
	error
	DispatchReason() string
}

// DispatchReason extracts the classified reason from a dispatch error,
// or "unknown" for errors without one.
func DispatchReason(err error) string {
	var df DispatchFailure
	if errors.As(err, &df) {
		return df.DispatchReason()
	}
	return "unknown"
}
