package entities

import "strings"

// Provider identifies an external payment processor.
type Provider string

const (
	ProviderStripe      Provider = "STRIPE"
	ProviderRazorpay    Provider = "RAZORPAY"
	ProviderMercadoPago Provider = "MERCADOPAGO"
)

// ParseProvider resolves a route or config value ("stripe", "razorpay", "mercadopago")
// into a Provider. The boolean is false for unknown providers.
func ParseProvider(raw string) (Provider, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(ProviderStripe):
		return ProviderStripe, true
	case string(ProviderRazorpay):
		return ProviderRazorpay, true
	case string(ProviderMercadoPago), "MERCADO_PAGO":
		return ProviderMercadoPago, true
	}
	return "", false
}
