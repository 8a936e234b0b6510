package models

import (
	"time"
)

type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeOther    FileType = "other"
)

var FileTypes = []FileType{FileTypeImage, FileTypeDocument, FileTypeVideo, FileTypeAudio, FileTypeOther}

// ParseFileType maps a stored type string onto the closed set; anything unknown is "other".
func ParseFileType(s string) FileType {
	for _, t := range FileTypes {
		if string(t) == s {
			return t
		}
	}
	return FileTypeOther
}

// FileRecord is one stored file's metadata as returned by the ledger.
// ID is the ordinal position inside a single fetch, not a global identifier.
type FileRecord struct {
	ID          int       `json:"id"`
	FileName    string    `json:"fileName"`
	FileType    FileType  `json:"fileType"`
	FileSize    int64     `json:"fileSize"` // bytes
	ContentHash string    `json:"contentHash"`
	UploadedAt  time.Time `json:"uploadTime"`
	IsPublic    bool      `json:"isPublic"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Owner       string    `json:"owner,omitempty"` // empty for the caller's own files
	ResolvedURL string    `json:"url,omitempty"`   // gateway URL, filled by the resolver
}

// File is the row backing a FileRecord in the local ledger.
type File struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	Owner       string    `json:"owner" gorm:"index:idx_owner_index,unique,priority:1;not null"`
	Index       int       `json:"index" gorm:"index:idx_owner_index,unique,priority:2;not null"` // per-owner file id (0,1,2…)
	FileName    string    `json:"fileName" gorm:"not null"`
	FileType    string    `json:"fileType" gorm:"not null"`
	FileSize    int64     `json:"fileSize" gorm:"not null"`
	ContentHash string    `json:"contentHash" gorm:"not null"`
	IsPublic    bool      `json:"isPublic" gorm:"default:false;index"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// Record converts the row into a FileRecord positioned at ordinal id.
func (f File) Record(id int) FileRecord {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	return FileRecord{
		ID:          id,
		FileName:    f.FileName,
		FileType:    ParseFileType(f.FileType),
		FileSize:    f.FileSize,
		ContentHash: f.ContentHash,
		UploadedAt:  f.CreatedAt,
		IsPublic:    f.IsPublic,
		Description: f.Description,
		Tags:        tags,
		Owner:       f.Owner,
	}
}
