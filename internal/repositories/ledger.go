package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
)

var errNoSuchFile = errors.New("file does not exist")

// LocalLedger implements ledger.Ledger on a SQL database with the same
// visibility rules as the vault contract. It backs development setups and tests.
type LocalLedger struct {
	db *gorm.DB
}

func NewLocalLedger(db *gorm.DB) *LocalLedger {
	return &LocalLedger{db: db}
}

var _ ledger.Ledger = (*LocalLedger)(nil)

func (l *LocalLedger) ownerFiles(ctx context.Context, owner common.Address) ([]models.File, error) {
	var rows []models.File
	err := l.db.WithContext(ctx).
		Where("owner = ?", owner.Hex()).
		Order(`"index" asc`).
		Find(&rows).Error
	return rows, err
}

func records(rows []models.File, withOwner bool) []models.FileRecord {
	return lo.Map(rows, func(f models.File, i int) models.FileRecord {
		rec := f.Record(i)
		if !withOwner {
			rec.Owner = ""
		}
		return rec
	})
}

// Upload registers metadata for content already pinned in the blob store.
// The new file's id is the owner's current file count.
func (l *LocalLedger) Upload(ctx context.Context, owner common.Address, rec models.FileRecord) (models.FileRecord, error) {
	if ledger.NoSession(owner) {
		return models.FileRecord{}, ledger.ErrUnauthorized
	}
	if rec.FileName == "" || rec.ContentHash == "" {
		return models.FileRecord{}, fmt.Errorf("%w: file name and content hash are required", ledger.ErrInvalidInput)
	}
	if rec.FileSize < 0 {
		return models.FileRecord{}, fmt.Errorf("%w: negative file size", ledger.ErrInvalidInput)
	}

	row := models.File{
		Owner:       owner.Hex(),
		FileName:    rec.FileName,
		FileType:    string(models.ParseFileType(string(rec.FileType))),
		FileSize:    rec.FileSize,
		ContentHash: rec.ContentHash,
		IsPublic:    rec.IsPublic,
		Description: rec.Description,
		Tags:        rec.Tags,
		CreatedAt:   rec.UploadedAt,
	}
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.File{}).Where("owner = ?", row.Owner).Count(&count).Error; err != nil {
			return err
		}
		row.Index = int(count)
		return tx.Create(&row).Error
	})
	if err != nil {
		return models.FileRecord{}, ledger.Remote("upload", err)
	}
	return row.Record(row.Index), nil
}

func (l *LocalLedger) GetMyFiles(ctx context.Context, caller common.Address) ([]models.FileRecord, error) {
	if ledger.NoSession(caller) {
		return nil, ledger.ErrUnauthorized
	}
	rows, err := l.ownerFiles(ctx, caller)
	if err != nil {
		return nil, ledger.Remote("getMyFiles", err)
	}
	return records(rows, false), nil
}

func (l *LocalLedger) GetUserFiles(ctx context.Context, owner, caller common.Address) ([]models.FileRecord, error) {
	if ledger.NoSession(caller) {
		return nil, ledger.ErrUnauthorized
	}
	rows, err := l.ownerFiles(ctx, owner)
	if err != nil {
		return nil, ledger.Remote("getUserFiles", err)
	}
	if owner == caller {
		return records(rows, true), nil
	}

	var general models.Access
	err = l.db.WithContext(ctx).
		Where("owner = ? AND \"user\" = ? AND access = ?", owner.Hex(), caller.Hex(), true).
		Limit(1).
		Find(&general).Error
	if err != nil {
		return nil, ledger.Remote("getUserFiles", err)
	}
	if general.ID != 0 {
		return records(rows, true), nil
	}

	var selective []models.FileAccess
	err = l.db.WithContext(ctx).
		Where("owner = ? AND \"user\" = ? AND has_access = ?", owner.Hex(), caller.Hex(), true).
		Find(&selective).Error
	if err != nil {
		return nil, ledger.Remote("getUserFiles", err)
	}
	if len(selective) == 0 {
		return nil, fmt.Errorf("getUserFiles: %w", ledger.ErrAccessDenied)
	}

	granted := lo.SliceToMap(selective, func(fa models.FileAccess) (int, struct{}) {
		return fa.FileIndex, struct{}{}
	})
	visible := lo.Filter(rows, func(f models.File, _ int) bool {
		_, ok := granted[f.Index]
		return ok
	})
	return records(visible, true), nil
}

func (l *LocalLedger) GetPublicFiles(ctx context.Context) ([]models.FileRecord, error) {
	var rows []models.File
	err := l.db.WithContext(ctx).
		Where("is_public = ?", true).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, ledger.Remote("getPublicFiles", err)
	}
	return records(rows, true), nil
}

func (l *LocalLedger) ShareAccess(ctx context.Context, caller common.Address) ([]models.AccessGrant, error) {
	if ledger.NoSession(caller) {
		return nil, ledger.ErrUnauthorized
	}
	var rows []models.Access
	err := l.db.WithContext(ctx).
		Where("owner = ?", caller.Hex()).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, ledger.Remote("shareAccess", err)
	}
	return lo.Map(rows, func(a models.Access, _ int) models.AccessGrant {
		return models.AccessGrant{User: a.User, Access: a.Access}
	}), nil
}

func (l *LocalLedger) GetFileAccessList(ctx context.Context, caller common.Address) ([]models.FileAccessGrant, error) {
	if ledger.NoSession(caller) {
		return nil, ledger.ErrUnauthorized
	}
	var rows []models.FileAccess
	err := l.db.WithContext(ctx).
		Where("owner = ?", caller.Hex()).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, ledger.Remote("getFileAccessList", err)
	}
	return lo.Map(rows, func(fa models.FileAccess, _ int) models.FileAccessGrant {
		return models.FileAccessGrant{FileID: fa.FileIndex, User: fa.User, HasAccess: fa.HasAccess}
	}), nil
}

func (l *LocalLedger) Allow(ctx context.Context, caller, user common.Address) error {
	if ledger.NoSession(caller) {
		return ledger.ErrUnauthorized
	}
	if ledger.NoSession(user) {
		return ledger.ErrInvalidAddress
	}
	row := models.Access{Owner: caller.Hex(), User: user.Hex(), Access: true}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "user"}},
		DoUpdates: clause.AssignmentColumns([]string{"access", "updated_at"}),
	}).Create(&row).Error
	return ledger.Remote("allow", err)
}

// Disallow clears a general grant; a user never granted is left alone.
func (l *LocalLedger) Disallow(ctx context.Context, caller, user common.Address) error {
	if ledger.NoSession(caller) {
		return ledger.ErrUnauthorized
	}
	err := l.db.WithContext(ctx).Model(&models.Access{}).
		Where("owner = ? AND \"user\" = ?", caller.Hex(), user.Hex()).
		Update("access", false).Error
	return ledger.Remote("disallow", err)
}

func (l *LocalLedger) checkFile(ctx context.Context, owner common.Address, fileID int) error {
	if fileID < 0 {
		return fmt.Errorf("%w: negative file id", ledger.ErrInvalidInput)
	}
	var count int64
	err := l.db.WithContext(ctx).Model(&models.File{}).
		Where("owner = ? AND \"index\" = ?", owner.Hex(), fileID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errNoSuchFile
	}
	return nil
}

func (l *LocalLedger) AllowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error {
	if ledger.NoSession(caller) {
		return ledger.ErrUnauthorized
	}
	if ledger.NoSession(user) {
		return ledger.ErrInvalidAddress
	}
	if err := l.checkFile(ctx, caller, fileID); err != nil {
		return ledger.Remote("allowFile", err)
	}
	row := models.FileAccess{Owner: caller.Hex(), FileIndex: fileID, User: user.Hex(), HasAccess: true}
	err := l.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "file_index"}, {Name: "user"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_access", "updated_at"}),
	}).Create(&row).Error
	return ledger.Remote("allowFile", err)
}

func (l *LocalLedger) DisallowFile(ctx context.Context, caller common.Address, fileID int, user common.Address) error {
	if ledger.NoSession(caller) {
		return ledger.ErrUnauthorized
	}
	if fileID < 0 {
		return fmt.Errorf("%w: negative file id", ledger.ErrInvalidInput)
	}
	err := l.db.WithContext(ctx).Model(&models.FileAccess{}).
		Where("owner = ? AND file_index = ? AND \"user\" = ?", caller.Hex(), fileID, user.Hex()).
		Update("has_access", false).Error
	return ledger.Remote("disallowFile", err)
}
