// Package share grants and revokes access to an owner's files, both blanket
// (general) and per file (selective).
package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/views"
)

// ErrNotConfirmed is returned when a revocation was not confirmed. No ledger call is made.
var ErrNotConfirmed = errors.New("revocation not confirmed")

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed approves every prompt; Declined rejects every prompt.
var (
	Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	Declined  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

const (
	PromptRevoke     = "Are you sure you want to revoke access for this user?"
	PromptRevokeFile = "Are you sure you want to revoke this user's access to the file?"
)

// ViewSource re-derives views after a successful write.
type ViewSource interface {
	Refresh(ctx context.Context, v models.View) views.Result
	Invalidate(account string)
}

// Admin validates input, issues the ledger write and re-fetches the affected
// view. On failure nothing is invalidated, so callers keep showing prior state.
type Admin struct {
	ledger ledger.Ledger
	addrs  identity.Validator
	views  ViewSource
}

func NewAdmin(l ledger.Ledger, addrs identity.Validator, src ViewSource) *Admin {
	if addrs == nil {
		addrs = identity.Addresses
	}
	return &Admin{ledger: l, addrs: addrs, views: src}
}

// GrantGeneral gives user blanket access to all of caller's files.
func (a *Admin) GrantGeneral(ctx context.Context, caller common.Address, user string) (views.Result, error) {
	target, err := identity.ParseAddress(a.addrs, user)
	if err != nil {
		return views.Result{}, err
	}
	if err := a.ledger.Allow(ctx, caller, target); err != nil {
		return views.Result{}, a.writeFailed("allow", caller, target, err)
	}
	zap.L().Info("Granted general access", zap.String("owner", caller.Hex()), zap.String("user", target.Hex()))
	return a.refetch(ctx, models.SharedGeneral(caller.Hex())), nil
}

// RevokeGeneral removes user's blanket access after confirm approves it.
// Revoking a user who was never granted succeeds without change.
func (a *Admin) RevokeGeneral(ctx context.Context, caller common.Address, user string, confirm Confirmer) (views.Result, error) {
	target, err := identity.ParseAddress(a.addrs, user)
	if err != nil {
		return views.Result{}, err
	}
	if confirm == nil || !confirm.Confirm(ctx, PromptRevoke) {
		return views.Result{}, ErrNotConfirmed
	}
	if err := a.ledger.Disallow(ctx, caller, target); err != nil {
		return views.Result{}, a.writeFailed("disallow", caller, target, err)
	}
	zap.L().Info("Revoked general access", zap.String("owner", caller.Hex()), zap.String("user", target.Hex()))
	return a.refetch(ctx, models.SharedGeneral(caller.Hex())), nil
}

// GrantFile gives user access to one of caller's files.
func (a *Admin) GrantFile(ctx context.Context, caller common.Address, fileID int, user string) (views.Result, error) {
	target, err := identity.ParseAddress(a.addrs, user)
	if err != nil {
		return views.Result{}, err
	}
	if fileID < 0 {
		return views.Result{}, fmt.Errorf("%w: file id must not be negative", ledger.ErrInvalidInput)
	}
	if err := a.ledger.AllowFile(ctx, caller, fileID, target); err != nil {
		return views.Result{}, a.writeFailed("allowFile", caller, target, err)
	}
	zap.L().Info("Granted file access",
		zap.String("owner", caller.Hex()), zap.Int("file_id", fileID), zap.String("user", target.Hex()))
	return a.refetch(ctx, models.SharedSelective(caller.Hex())), nil
}

// RevokeFile removes user's access to one file after confirm approves it.
func (a *Admin) RevokeFile(ctx context.Context, caller common.Address, fileID int, user string, confirm Confirmer) (views.Result, error) {
	target, err := identity.ParseAddress(a.addrs, user)
	if err != nil {
		return views.Result{}, err
	}
	if fileID < 0 {
		return views.Result{}, fmt.Errorf("%w: file id must not be negative", ledger.ErrInvalidInput)
	}
	if confirm == nil || !confirm.Confirm(ctx, PromptRevokeFile) {
		return views.Result{}, ErrNotConfirmed
	}
	if err := a.ledger.DisallowFile(ctx, caller, fileID, target); err != nil {
		return views.Result{}, a.writeFailed("disallowFile", caller, target, err)
	}
	zap.L().Info("Revoked file access",
		zap.String("owner", caller.Hex()), zap.Int("file_id", fileID), zap.String("user", target.Hex()))
	return a.refetch(ctx, models.SharedSelective(caller.Hex())), nil
}

func (a *Admin) refetch(ctx context.Context, v models.View) views.Result {
	a.views.Invalidate(v.Account)
	return a.views.Refresh(ctx, v)
}

func (a *Admin) writeFailed(op string, caller, target common.Address, err error) error {
	if ledger.Classify(err) == ledger.KindRemoteFailure {
		zap.L().Error("Ledger write failed",
			zap.String("op", op), zap.String("owner", caller.Hex()), zap.String("user", target.Hex()), zap.Error(err))
	}
	return err
}
