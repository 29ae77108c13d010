package marvel

import (
	"crypto/md5" //nolint:gosec // the upstream authentication scheme mandates MD5
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrMissingCredentials is returned when either API key is empty.
var ErrMissingCredentials = errors.New("marvel: public and private keys are required")

// ErrDigestUnavailable is returned when the MD5 self-check fails.
var ErrDigestUnavailable = errors.New("marvel: md5 digest unavailable")

// Known vector from the upstream documentation: ts=1, private=abcd, public=1234.
const (
	selfCheckInput  = "1abcd1234"
	selfCheckDigest = "ffd275c5130566a2916217b101f26150"
)

// Signer computes request signatures for the upstream API.
type Signer struct {
	publicKey  string
	privateKey string
}

// NewSigner creates a Signer after verifying the digest implementation.
func NewSigner(publicKey, privateKey string) (*Signer, error) {
	if publicKey == "" || privateKey == "" {
		return nil, ErrMissingCredentials
	}
	if got := digest(selfCheckInput); got != selfCheckDigest {
		return nil, fmt.Errorf("%w: self-check produced %s", ErrDigestUnavailable, got)
	}
	return &Signer{publicKey: publicKey, privateKey: privateKey}, nil
}

// PublicKey returns the key sent as the apikey query parameter.
func (s *Signer) PublicKey() string {
	return s.publicKey
}

// Hash returns md5(ts + private + public) as 32 lowercase hex characters.
func (s *Signer) Hash(ts string) string {
	return digest(ts + s.privateKey + s.publicKey)
}

func digest(input string) string {
	sum := md5.Sum([]byte(input)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}
