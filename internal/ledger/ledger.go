// Package ledger is the typed client for the file-vault contract: ownership,
// file metadata and the two permission lists.
package ledger

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/models"
)

// Ledger is the remote authority for files and grants. A zero caller means
// there is no session.
type Ledger interface {
	GetMyFiles(ctx context.Context, caller common.Address) ([]models.FileRecord, error)
	// GetUserFiles fails with ErrAccessDenied when caller holds neither general
	// nor any selective access to owner's files.
	GetUserFiles(ctx context.Context, owner, caller common.Address) ([]models.FileRecord, error)
	GetPublicFiles(ctx context.Context) ([]models.FileRecord, error)

	ShareAccess(ctx context.Context, caller common.Address) ([]models.AccessGrant, error)
	GetFileAccessList(ctx context.Context, caller common.Address) ([]models.FileAccessGrant, error)

	// Allow and Disallow are idempotent.
	Allow(ctx context.Context, caller, user common.Address) error
	Disallow(ctx context.Context, caller, user common.Address) error
	AllowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error
	DisallowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error
}

// NoSession reports whether caller is the zero address.
func NoSession(caller common.Address) bool {
	return caller == (common.Address{})
}
