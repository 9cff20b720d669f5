package services

import "github.com/DanielPopoola/checkout-tokenization/internal/domain"

// PlatformCapabilities describes what the host device can present.
type PlatformCapabilities struct {
	ApplePayAvailable  bool
	ApplePayMerchantID string
}

func (c PlatformCapabilities) CanPresentApplePay() bool {
	return c.ApplePayAvailable && c.ApplePayMerchantID != ""
}

// FilterPaymentOptions selects the options shown to the payer. It keeps input
// order and never returns an option absent from the input:
//  1. types outside allowed are dropped; both wallet generations count as one type
//  2. Apple Pay is dropped unless the platform can present it
//  3. the legacy wallet is dropped when the renamed wallet is also present
func FilterPaymentOptions(
	options []domain.PaymentOption,
	allowed []domain.PaymentMethodType,
	caps PlatformCapabilities,
) []domain.PaymentOption {
	allowedSet := make(map[domain.PaymentMethodType]struct{}, len(allowed))
	for _, t := range allowed {
		allowedSet[t.Canonical()] = struct{}{}
	}

	keep := func(o domain.PaymentOption) bool {
		if _, ok := allowedSet[o.Type.Canonical()]; !ok {
			return false
		}
		if o.Type == domain.MethodApplePay && !caps.CanPresentApplePay() {
			return false
		}
		return true
	}

	hasRenamedWallet := false
	for _, o := range options {
		if o.Type == domain.MethodYooMoney && keep(o) {
			hasRenamedWallet = true
			break
		}
	}

	filtered := make([]domain.PaymentOption, 0, len(options))
	for _, o := range options {
		if !keep(o) {
			continue
		}
		if o.Type == domain.MethodYandexMoney && hasRenamedWallet {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}
