package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
)

// SignatureVerifier checks that an inbound webhook body really came from
// the named provider.
type SignatureVerifier interface {
	Verify(provider string, payload []byte, signature string) error
}

// HMACVerifier verifies hex-encoded HMAC-SHA512 signatures against a
// per-provider shared secret, the scheme Paystack-style providers use for
// their webhook headers.
type HMACVerifier struct {
	secrets map[string]string
}

// NewHMACVerifier creates a verifier over the configured provider secrets.
func NewHMACVerifier(secrets map[string]string) *HMACVerifier {
	if secrets == nil {
		secrets = map[string]string{}
	}
	return &HMACVerifier{secrets: secrets}
}

// Verify recomputes the payload MAC and compares in constant time.
func (v *HMACVerifier) Verify(provider string, payload []byte, signature string) error {
	secret, ok := v.secrets[strings.ToLower(provider)]
	if !ok || secret == "" {
		return fmt.Errorf("%w: no shared secret configured for provider %s", apperrors.ErrVerificationFailed, provider)
	}
	if signature == "" {
		return fmt.Errorf("%w: missing signature", apperrors.ErrVerificationFailed)
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return fmt.Errorf("%w: signature mismatch for provider %s", apperrors.ErrVerificationFailed, provider)
	}
	return nil
}
