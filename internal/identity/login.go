package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/rohits-web03/chainvault/internal/utils"
)

const NonceTTL = 5 * time.Minute

var (
	ErrBadSignature = errors.New("signature does not match address")
	ErrUnknownNonce = errors.New("login nonce is unknown or expired")
)

// Challenge is the message a wallet signs to prove control of its account.
func Challenge(nonce string) string {
	return "Sign in to Vault\nNonce: " + nonce
}

func textHash(message string) []byte {
	return accounts.TextHash([]byte(message))
}

// VerifySignature checks that sigHex is a personal_sign signature of message by address.
func VerifySignature(address common.Address, message, sigHex string) error {
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be %d bytes", crypto.SignatureLength)
	}
	// Wallets emit v as 27/28.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(textHash(message), sig)
	if err != nil {
		return fmt.Errorf("recover signer: %w", err)
	}
	if crypto.PubkeyToAddress(*pub) != address {
		return ErrBadSignature
	}
	return nil
}

type nonce struct {
	address   string
	expiresAt time.Time
}

// NonceStore hands out single-use login nonces. Nonces are keyed by value, so
// any number may be outstanding per address and only the holder of a nonce
// can spend it.
type NonceStore struct {
	entries cmap.ConcurrentMap[string, nonce]
	ttl     time.Duration
	now     func() time.Time
}

func NewNonceStore() *NonceStore {
	return &NonceStore{
		entries: cmap.New[nonce](),
		ttl:     NonceTTL,
		now:     time.Now,
	}
}

// Issue creates a nonce for address and prunes expired ones.
func (s *NonceStore) Issue(address common.Address) (string, error) {
	value, err := utils.GenerateSecureToken(16)
	if err != nil {
		return "", err
	}
	now := s.now()
	for item := range s.entries.IterBuffered() {
		if now.After(item.Val.expiresAt) {
			s.entries.Remove(item.Key)
		}
	}
	s.entries.Set(value, nonce{address: key(address), expiresAt: now.Add(s.ttl)})
	return value, nil
}

// Consume spends value if it is a live nonce issued to address. A value issued
// to another address is left in place.
func (s *NonceStore) Consume(address common.Address, value string) error {
	var n nonce
	removed := s.entries.RemoveCb(value, func(_ string, v nonce, exists bool) bool {
		n = v
		return exists && v.address == key(address)
	})
	if !removed || s.now().After(n.expiresAt) {
		return ErrUnknownNonce
	}
	return nil
}

func key(address common.Address) string {
	return strings.ToLower(address.Hex())
}
