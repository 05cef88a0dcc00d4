package domain

import "time"

// CardUsed reports whether a registered fingerprint is still inside its
// trial window. The tie belongs to "eligible": a card whose last use is
// exactly one window old may take a new trial.
func CardUsed(updatedAt, now time.Time, window time.Duration) bool {
	return now.Sub(updatedAt) < window
}

// CheckoutPlan is the resolved action for one checkout attempt. Exactly
// one of Reject or ChargeAmount>0 applies.
type CheckoutPlan struct {
	// Reject is set when the free tier was requested with a card that
	// already consumed its trial.
	Reject bool
	// ChargeAmount is the amount to charge in minor currency units. For
	// the free tier this is the small validation charge.
	ChargeAmount int64
	// RefundAfterCharge refunds the validation charge once it confirmed
	// the card is chargeable.
	RefundAfterCharge bool
	// RegisterCard marks the fingerprint as having consumed its trial.
	// Registration happens only after the charge confirmed.
	RegisterCard bool
	// CreateSubscription grants the trial subscription.
	CreateSubscription bool
}

// DecideCheckout resolves the checkout decision table over the two
// inputs: whether the card already consumed its trial and whether the
// requested tier is free (price == 0).
//
//	used=false price>0  -> charge full price, register, subscribe
//	used=false price==0 -> validation charge, refund, register, subscribe
//	used=true  price>0  -> charge full price only
//	used=true  price==0 -> reject
func DecideCheckout(cardUsed bool, price, validationAmount int64) CheckoutPlan {
	free := price == 0
	if cardUsed && free {
		return CheckoutPlan{Reject: true}
	}
	if cardUsed {
		return CheckoutPlan{ChargeAmount: price}
	}
	if free {
		return CheckoutPlan{
			ChargeAmount:       validationAmount,
			RefundAfterCharge:  true,
			RegisterCard:       true,
			CreateSubscription: true,
		}
	}
	return CheckoutPlan{
		ChargeAmount:       price,
		RegisterCard:       true,
		CreateSubscription: true,
	}
}
