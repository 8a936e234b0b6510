package identity

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keyed holds a single private key and signs ledger writes with it.
type Keyed struct {
	key     *ecdsa.PrivateKey
	account common.Address
	chainID *big.Int
}

// NewKeyed parses a hex private key (with or without 0x).
func NewKeyed(hexKey string, chainID int64) (*Keyed, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	if hexKey == "" {
		return nil, errors.New("empty signer key")
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("parse signer key: %w", err)
	}
	return &Keyed{
		key:     key,
		account: crypto.PubkeyToAddress(key.PublicKey),
		chainID: big.NewInt(chainID),
	}, nil
}

func (k *Keyed) Account() common.Address { return k.account }

func (k *Keyed) ChainID() *big.Int { return new(big.Int).Set(k.chainID) }

func (k *Keyed) Transactor(ctx context.Context) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(k.key, k.chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Sign produces a personal_sign signature over message, as a wallet would.
func (k *Keyed) Sign(message string) ([]byte, error) {
	sig, err := crypto.Sign(textHash(message), k.key)
	if err != nil {
		return nil, err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}
