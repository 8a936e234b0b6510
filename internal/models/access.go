package models

import (
	"time"
)

// AccessGrant is the current blanket-access state of one user over the owner's files.
type AccessGrant struct {
	User   string `json:"user"`
	Access bool   `json:"access"`
}

// FileAccessGrant is a per-file grant, independent of any AccessGrant.
type FileAccessGrant struct {
	FileID    int    `json:"fileId"`
	User      string `json:"user"`
	HasAccess bool   `json:"hasAccess"`
}

// Access backs AccessGrant in the local ledger. One row per (owner, user); regrants update it.
type Access struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Owner     string    `json:"owner" gorm:"uniqueIndex:idx_access_owner_user;not null"`
	User      string    `json:"user" gorm:"uniqueIndex:idx_access_owner_user;not null"`
	Access    bool      `json:"access" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// FileAccess backs FileAccessGrant in the local ledger.
type FileAccess struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Owner     string    `json:"owner" gorm:"uniqueIndex:idx_file_access;not null"`
	FileIndex int       `json:"fileIndex" gorm:"uniqueIndex:idx_file_access;not null"`
	User      string    `json:"user" gorm:"uniqueIndex:idx_file_access;index;not null"`
	HasAccess bool      `json:"hasAccess" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
