// Package ledgertest provides an in-memory Ledger for tests.
package ledgertest

import (
	"context"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
)

// Fake is a Ledger backed by maps. Set Errs[op] to make an operation fail;
// op names match the contract's method names.
type Fake struct {
	mu        sync.Mutex
	files     map[common.Address][]models.FileRecord
	general   map[common.Address][]models.AccessGrant
	selective map[common.Address][]models.FileAccessGrant

	Errs  map[string]error
	Calls map[string]int
}

var _ ledger.Ledger = (*Fake)(nil)

func New() *Fake {
	return &Fake{
		files:     make(map[common.Address][]models.FileRecord),
		general:   make(map[common.Address][]models.AccessGrant),
		selective: make(map[common.Address][]models.FileAccessGrant),
		Errs:      make(map[string]error),
		Calls:     make(map[string]int),
	}
}

// AddFile appends rec to owner's files and returns its id.
func (f *Fake) AddFile(owner common.Address, rec models.FileRecord) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = len(f.files[owner])
	rec.Owner = owner.Hex()
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	f.files[owner] = append(f.files[owner], rec)
	return rec.ID
}

// Count returns how many times op was called.
func (f *Fake) Count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[op]
}

func (f *Fake) enter(op string, caller common.Address, needSession bool) error {
	f.Calls[op]++
	if err := f.Errs[op]; err != nil {
		return err
	}
	if needSession && ledger.NoSession(caller) {
		return ledger.ErrUnauthorized
	}
	return nil
}

func (f *Fake) GetMyFiles(_ context.Context, caller common.Address) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("getMyFiles", caller, true); err != nil {
		return nil, err
	}
	return slices.Clone(f.files[caller]), nil
}

func (f *Fake) GetUserFiles(_ context.Context, owner, caller common.Address) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("getUserFiles", caller, true); err != nil {
		return nil, err
	}
	all := f.files[owner]
	if owner == caller {
		return slices.Clone(all), nil
	}
	for _, g := range f.general[owner] {
		if g.Access && common.HexToAddress(g.User) == caller {
			return slices.Clone(all), nil
		}
	}
	var out []models.FileRecord
	for _, g := range f.selective[owner] {
		if g.HasAccess && common.HexToAddress(g.User) == caller && g.FileID < len(all) {
			out = append(out, all[g.FileID])
		}
	}
	if out == nil {
		return nil, ledger.ErrAccessDenied
	}
	return out, nil
}

func (f *Fake) GetPublicFiles(_ context.Context) ([]models.FileRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("getPublicFiles", common.Address{}, false); err != nil {
		return nil, err
	}
	var out []models.FileRecord
	for _, files := range f.files {
		for _, rec := range files {
			if rec.IsPublic {
				out = append(out, rec)
			}
		}
	}
	return out, nil
}

func (f *Fake) ShareAccess(_ context.Context, caller common.Address) ([]models.AccessGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("shareAccess", caller, true); err != nil {
		return nil, err
	}
	return slices.Clone(f.general[caller]), nil
}

func (f *Fake) GetFileAccessList(_ context.Context, caller common.Address) ([]models.FileAccessGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("getFileAccessList", caller, true); err != nil {
		return nil, err
	}
	return slices.Clone(f.selective[caller]), nil
}

func (f *Fake) Allow(_ context.Context, caller, user common.Address) error {
	return f.setGeneral("allow", caller, user, true)
}

func (f *Fake) Disallow(_ context.Context, caller, user common.Address) error {
	return f.setGeneral("disallow", caller, user, false)
}

func (f *Fake) setGeneral(op string, caller, user common.Address, access bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op, caller, true); err != nil {
		return err
	}
	grants := f.general[caller]
	for i := range grants {
		if grants[i].User == user.Hex() {
			grants[i].Access = access
			return nil
		}
	}
	if access {
		f.general[caller] = append(grants, models.AccessGrant{User: user.Hex(), Access: true})
	}
	return nil
}

func (f *Fake) AllowFile(_ context.Context, caller common.Address, fileID int, user common.Address) error {
	return f.setFile("allowFile", caller, fileID, user, true)
}

func (f *Fake) DisallowFile(_ context.Context, caller common.Address, fileID int, user common.Address) error {
	return f.setFile("disallowFile", caller, fileID, user, false)
}

func (f *Fake) setFile(op string, caller common.Address, fileID int, user common.Address, access bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter(op, caller, true); err != nil {
		return err
	}
	grants := f.selective[caller]
	for i := range grants {
		if grants[i].FileID == fileID && grants[i].User == user.Hex() {
			grants[i].HasAccess = access
			return nil
		}
	}
	if access {
		f.selective[caller] = append(grants, models.FileAccessGrant{FileID: fileID, User: user.Hex(), HasAccess: true})
	}
	return nil
}
