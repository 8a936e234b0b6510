package ledger

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/models"
)

// Observer is told about every ledger call once it resolves.
type Observer interface {
	ObserveLedgerCall(op string, kind Kind, elapsed time.Duration)
}

type instrumented struct {
	next Ledger
	obs  Observer
}

// Instrument reports each call on l to obs.
func Instrument(l Ledger, obs Observer) Ledger {
	return &instrumented{next: l, obs: obs}
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	i.obs.ObserveLedgerCall(op, Classify(err), time.Since(start))
}

func (i *instrumented) GetMyFiles(ctx context.Context, caller common.Address) (files []models.FileRecord, err error) {
	defer func(start time.Time) { i.observe("getMyFiles", start, err) }(time.Now())
	return i.next.GetMyFiles(ctx, caller)
}

func (i *instrumented) GetUserFiles(ctx context.Context, owner, caller common.Address) (files []models.FileRecord, err error) {
	defer func(start time.Time) { i.observe("getUserFiles", start, err) }(time.Now())
	return i.next.GetUserFiles(ctx, owner, caller)
}

func (i *instrumented) GetPublicFiles(ctx context.Context) (files []models.FileRecord, err error) {
	defer func(start time.Time) { i.observe("getPublicFiles", start, err) }(time.Now())
	return i.next.GetPublicFiles(ctx)
}

func (i *instrumented) ShareAccess(ctx context.Context, caller common.Address) (grants []models.AccessGrant, err error) {
	defer func(start time.Time) { i.observe("shareAccess", start, err) }(time.Now())
	return i.next.ShareAccess(ctx, caller)
}

func (i *instrumented) GetFileAccessList(ctx context.Context, caller common.Address) (grants []models.FileAccessGrant, err error) {
	defer func(start time.Time) { i.observe("getFileAccessList", start, err) }(time.Now())
	return i.next.GetFileAccessList(ctx, caller)
}

func (i *instrumented) Allow(ctx context.Context, caller, user common.Address) (err error) {
	defer func(start time.Time) { i.observe("allow", start, err) }(time.Now())
	return i.next.Allow(ctx, caller, user)
}

func (i *instrumented) Disallow(ctx context.Context, caller, user common.Address) (err error) {
	defer func(start time.Time) { i.observe("disallow", start, err) }(time.Now())
	return i.next.Disallow(ctx, caller, user)
}

func (i *instrumented) AllowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) (err error) {
	defer func(start time.Time) { i.observe("allowFile", start, err) }(time.Now())
	return i.next.AllowFile(ctx, caller, fileID, user)
}

func (i *instrumented) DisallowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) (err error) {
	defer func(start time.Time) { i.observe("disallowFile", start, err) }(time.Now())
	return i.next.DisallowFile(ctx, caller, fileID, user)
}
