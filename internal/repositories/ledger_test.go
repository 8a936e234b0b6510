package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol = common.HexToAddress("0x00000000000000000000000000000000000ca201")
)

func newTestLedger(t *testing.T) *LocalLedger {
	t.Helper()
	db, err := Open("sqlite:" + filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	return NewLocalLedger(db)
}

func upload(t *testing.T, l *LocalLedger, owner common.Address, name string, public bool, tags ...string) models.FileRecord {
	t.Helper()
	rec, err := l.Upload(context.Background(), owner, models.FileRecord{
		FileName:    name,
		FileType:    models.FileTypeDocument,
		FileSize:    1024,
		ContentHash: "Qm" + name,
		IsPublic:    public,
		Tags:        tags,
		UploadedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return rec
}

func names(files []models.FileRecord) []string {
	return lo.Map(files, func(f models.FileRecord, _ int) string { return f.FileName })
}

func TestUploadAssignsSequentialIDs(t *testing.T) {
	l := newTestLedger(t)

	assert.Equal(t, 0, upload(t, l, alice, "a", false).ID)
	assert.Equal(t, 1, upload(t, l, alice, "b", false).ID)
	assert.Equal(t, 0, upload(t, l, bob, "c", false).ID)

	_, err := l.Upload(context.Background(), alice, models.FileRecord{FileName: "x"})
	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	_, err = l.Upload(context.Background(), common.Address{}, models.FileRecord{FileName: "x", ContentHash: "h"})
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
}

func TestGetMyFiles(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	upload(t, l, alice, "a", false, "Work")
	upload(t, l, alice, "b", true)
	upload(t, l, bob, "c", false)

	files, err := l.GetMyFiles(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(files))
	assert.Equal(t, []string{"Work"}, files[0].Tags)
	assert.Equal(t, []string{}, files[1].Tags)
	assert.Empty(t, files[0].Owner)

	_, err = l.GetMyFiles(ctx, common.Address{})
	assert.ErrorIs(t, err, ledger.ErrUnauthorized)
}

func TestGetPublicFiles(t *testing.T) {
	l := newTestLedger(t)
	upload(t, l, alice, "a", false)
	upload(t, l, alice, "b", true)
	upload(t, l, bob, "c", true)

	files, err := l.GetPublicFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, names(files))
	assert.Equal(t, alice.Hex(), files[0].Owner)
}

func TestGetUserFilesVisibility(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	upload(t, l, alice, "a", false)
	upload(t, l, alice, "b", false)
	upload(t, l, alice, "c", false)

	_, err := l.GetUserFiles(ctx, alice, bob)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)

	require.NoError(t, l.AllowFile(ctx, alice, 2, bob))
	files, err := l.GetUserFiles(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, names(files))

	// General access shows everything regardless of per-file grants.
	require.NoError(t, l.Allow(ctx, alice, bob))
	files, err = l.GetUserFiles(ctx, alice, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(files))

	mine, err := l.GetUserFiles(ctx, alice, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	_, err = l.GetUserFiles(ctx, alice, carol)
	assert.ErrorIs(t, err, ledger.ErrAccessDenied)
}

func TestGeneralGrantsAreIdempotent(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()

	require.NoError(t, l.Allow(ctx, alice, bob))
	require.NoError(t, l.Allow(ctx, alice, bob))
	require.NoError(t, l.Allow(ctx, alice, carol))
	require.NoError(t, l.Disallow(ctx, alice, carol))
	require.NoError(t, l.Disallow(ctx, alice, common.HexToAddress("0x0000000000000000000000000000000000000d0d")))

	grants, err := l.ShareAccess(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []models.AccessGrant{
		{User: bob.Hex(), Access: true},
		{User: carol.Hex(), Access: false},
	}, grants)

	require.NoError(t, l.Allow(ctx, alice, carol))
	grants, err = l.ShareAccess(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, grants, 2)
	assert.True(t, grants[1].Access)

	assert.ErrorIs(t, l.Allow(ctx, alice, common.Address{}), ledger.ErrInvalidAddress)
}

func TestFileGrants(t *testing.T) {
	l := newTestLedger(t)
	ctx := context.Background()
	upload(t, l, alice, "a", false)
	upload(t, l, alice, "b", false)

	require.NoError(t, l.AllowFile(ctx, alice, 1, bob))
	require.NoError(t, l.AllowFile(ctx, alice, 0, carol))
	require.NoError(t, l.AllowFile(ctx, alice, 1, bob))
	require.NoError(t, l.DisallowFile(ctx, alice, 0, carol))
	require.NoError(t, l.DisallowFile(ctx, alice, 0, bob))

	list, err := l.GetFileAccessList(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []models.FileAccessGrant{
		{FileID: 1, User: bob.Hex(), HasAccess: true},
		{FileID: 0, User: carol.Hex(), HasAccess: false},
	}, list)

	err = l.AllowFile(ctx, alice, 7, bob)
	assert.Equal(t, ledger.KindRemoteFailure, ledger.Classify(err))
	assert.ErrorIs(t, l.AllowFile(ctx, alice, -1, bob), ledger.ErrInvalidInput)
	assert.ErrorIs(t, l.DisallowFile(ctx, alice, -1, bob), ledger.ErrInvalidInput)
}
