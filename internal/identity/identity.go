// Package identity is the wallet side of the system: which account is
// connected, how addresses are validated and who may sign writes.
package identity

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/ledger"
)

// Validator decides whether a string is a well-formed account address.
type Validator interface {
	IsAddress(s string) bool
}

// Ethereum validates hex account addresses the way go-ethereum does.
type Ethereum struct{}

func (Ethereum) IsAddress(s string) bool {
	return common.IsHexAddress(s)
}

// Addresses is the validator used when none is injected.
var Addresses Validator = Ethereum{}

// ParseAddress validates input with v and converts it. Empty or malformed
// input yields an error wrapping ledger.ErrInvalidInput.
func ParseAddress(v Validator, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return common.Address{}, ledger.ErrInvalidInput
	}
	if !v.IsAddress(input) {
		return common.Address{}, ledger.ErrInvalidAddress
	}
	return common.HexToAddress(input), nil
}

type contextKey string

const accountKey contextKey = "account"

// WithAccount stores the connected account on ctx.
func WithAccount(ctx context.Context, account common.Address) context.Context {
	return context.WithValue(ctx, accountKey, account)
}

// AccountFrom returns the connected account, or false when there is no session.
func AccountFrom(ctx context.Context) (common.Address, bool) {
	account, ok := ctx.Value(accountKey).(common.Address)
	if !ok || account == (common.Address{}) {
		return common.Address{}, false
	}
	return account, true
}
