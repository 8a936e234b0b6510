// Package views derives the file projections a user can look at from ledger
// data: their own files, who they share with, and public files.
package views

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rohits-web03/chainvault/internal/blobstore"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
)

const (
	MsgAccessDenied = "Access denied: this user has not granted you permission to view their files"
	MsgLoadFailed   = "Failed to load files. Please try again."
	MsgNoSession    = "Connect your wallet to view files"
	MsgBadRequest   = "Invalid view request"
)

// Result is a resolved view. Reads never return errors: a failed resolution
// is an empty Result with Failure set and a user-facing Message.
type Result struct {
	View      models.View          `json:"-"`
	Files     []models.FileRecord  `json:"files"`
	Grants    []models.AccessGrant `json:"grants,omitempty"`
	Selective []UserFiles          `json:"selective,omitempty"`
	Failure   ledger.Kind          `json:"-"`
	Message   string               `json:"message,omitempty"`
}

func (r Result) Failed() bool {
	return r.Failure != ledger.KindNone
}

// Denied reports whether the owner refused access.
func (r Result) Denied() bool {
	return r.Failure == ledger.KindAccessDenied
}

type Resolver struct {
	ledger ledger.Ledger
	blobs  blobstore.Resolver
	cache  *Cache
}

// NewResolver builds a resolver. cache may be nil to always hit the ledger.
func NewResolver(l ledger.Ledger, blobs blobstore.Resolver, cache *Cache) *Resolver {
	return &Resolver{ledger: l, blobs: blobs, cache: cache}
}

// Resolve returns v, from cache when one is configured.
func (r *Resolver) Resolve(ctx context.Context, v models.View) Result {
	if r.cache == nil {
		return r.fetch(ctx, v)
	}
	return r.cache.load(ctx, v, r.fetch)
}

// Refresh re-derives v from the ledger and replaces any cached copy.
func (r *Resolver) Refresh(ctx context.Context, v models.View) Result {
	if r.cache == nil {
		return r.fetch(ctx, v)
	}
	return r.cache.refresh(ctx, v, r.fetch)
}

// Invalidate forgets cached views of account.
func (r *Resolver) Invalidate(account string) {
	if r.cache != nil {
		r.cache.Invalidate(account)
	}
}

// ResolveShared loads owner's files as seen by viewer. It is never cached:
// grants can change on the owner's side at any time.
func (r *Resolver) ResolveShared(ctx context.Context, viewer, owner common.Address) Result {
	v := models.View{Kind: models.ViewOwned, Account: owner.Hex()}
	files, err := r.ledger.GetUserFiles(ctx, owner, viewer)
	if err != nil {
		return r.failSoft(v, "getUserFiles", err)
	}
	if files == nil {
		files = []models.FileRecord{}
	}
	r.attachURLs(ctx, files)
	return Result{View: v, Files: files}
}

func (r *Resolver) fetch(ctx context.Context, v models.View) Result {
	account := common.Address{}
	if v.Account != "" {
		account = common.HexToAddress(v.Account)
	}

	res := Result{View: v}
	var err error
	switch v.Kind {
	case models.ViewOwned:
		res.Files, err = r.ledger.GetMyFiles(ctx, account)

	case models.ViewSharedGeneral:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			res.Files, err = r.ledger.GetMyFiles(gctx, account)
			return err
		})
		g.Go(func() (err error) {
			res.Grants, err = r.ledger.ShareAccess(gctx, account)
			return err
		})
		err = g.Wait()

	case models.ViewSharedSelective:
		var list []models.FileAccessGrant
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			res.Files, err = r.ledger.GetMyFiles(gctx, account)
			return err
		})
		g.Go(func() (err error) {
			list, err = r.ledger.GetFileAccessList(gctx, account)
			return err
		})
		if err = g.Wait(); err == nil {
			res.Selective = GroupByUser(list)
		}

	case models.ViewPublic:
		res.Files, err = r.ledger.GetPublicFiles(ctx)

	default:
		err = fmt.Errorf("%w: unknown view %s", ledger.ErrInvalidInput, v.Kind)
	}
	if err != nil {
		return r.failSoft(v, v.Kind.String(), err)
	}

	if res.Files == nil {
		res.Files = []models.FileRecord{}
	}
	r.attachURLs(ctx, res.Files)
	return res
}

// failSoft turns a read failure into an empty, displayable result.
func (r *Resolver) failSoft(v models.View, op string, err error) Result {
	kind := ledger.Classify(err)
	res := Result{View: v, Files: []models.FileRecord{}, Failure: kind}

	fields := []zap.Field{zap.String("op", op), zap.String("account", v.Account), zap.Error(err)}
	switch kind {
	case ledger.KindAccessDenied:
		res.Message = MsgAccessDenied
		zap.L().Info("Ledger denied read", fields...)
	case ledger.KindUnauthorized:
		res.Message = MsgNoSession
		zap.L().Debug("Read without session", fields...)
	case ledger.KindInvalidInput:
		res.Message = MsgBadRequest
		zap.L().Debug("Rejected view request", fields...)
	default:
		res.Message = MsgLoadFailed
		zap.L().Warn("Ledger read failed", fields...)
	}
	return res
}

func (r *Resolver) attachURLs(ctx context.Context, files []models.FileRecord) {
	if r.blobs == nil {
		return
	}
	for i := range files {
		url, err := r.blobs.URL(ctx, files[i].ContentHash)
		if err != nil {
			zap.L().Warn("Failed to resolve blob URL",
				zap.String("hash", files[i].ContentHash), zap.Error(err))
			continue
		}
		files[i].ResolvedURL = url
	}
}
