package usecase

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82/webhook"
)

// SignatureAlgorithm selects the MAC used by the generic verifier.
type SignatureAlgorithm string

const (
	HMACSHA256Hex SignatureAlgorithm = "hmac-sha256-hex"
	HMACSHA1Hex   SignatureAlgorithm = "hmac-sha1-hex"
)

// StripeSignatureTolerance is the accepted age of a Stripe-Signature timestamp.
const StripeSignatureTolerance = 5 * time.Minute

// ISignatureVerifier checks that a payload was signed with a shared secret.
//
// Implementations never panic and never return an error: anything that cannot be
// verified (missing header, malformed encoding, unknown algorithm) is false.
type ISignatureVerifier interface {
	Verify(payload []byte, signature, secret string, alg SignatureAlgorithm) bool
}

type HMACSignatureVerifier struct{}

var _ ISignatureVerifier = HMACSignatureVerifier{}

// Verify computes the HMAC of the exact payload bytes and compares it with the hex
// signature in constant time.
func (HMACSignatureVerifier) Verify(payload []byte, signature, secret string, alg SignatureAlgorithm) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" || secret == "" {
		return false
	}
	got, err := hex.DecodeString(strings.ToLower(signature))
	if err != nil {
		return false
	}

	var newHash func() hash.Hash
	switch alg {
	case HMACSHA256Hex:
		newHash = sha256.New
	case HMACSHA1Hex:
		newHash = sha1.New
	default:
		return false
	}

	mac := hmac.New(newHash, []byte(secret))
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), got)
}

// VerifyStripeSignature validates a Stripe-Signature header (t=<unix>,v1=<hex>) over the
// raw body.
func VerifyStripeSignature(payload []byte, header, secret string, tolerance time.Duration) bool {
	if strings.TrimSpace(header) == "" || secret == "" {
		return false
	}
	return webhook.ValidatePayloadWithTolerance(payload, header, secret, tolerance) == nil
}

// VerifyMercadoPagoSignature validates an x-signature header (ts=<ts>,v1=<hex>). The
// signed manifest is id:<data.id>;request-id:<x-request-id>;ts:<ts>; and data ids are
// lower-cased as Mercado Pago does for alphanumeric ids.
func VerifyMercadoPagoSignature(verifier ISignatureVerifier, header, requestID, dataID, secret string) bool {
	if verifier == nil || strings.TrimSpace(header) == "" || strings.TrimSpace(dataID) == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(v)
		case "v1":
			v1 = strings.TrimSpace(v)
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	var manifest strings.Builder
	manifest.WriteString("id:" + strings.ToLower(dataID) + ";")
	if requestID = strings.TrimSpace(requestID); requestID != "" {
		manifest.WriteString("request-id:" + requestID + ";")
	}
	manifest.WriteString("ts:" + ts + ";")

	return verifier.Verify([]byte(manifest.String()), v1, secret, HMACSHA256Hex)
}
