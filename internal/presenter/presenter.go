// Package presenter filters, sorts and decorates file lists for display.
// Everything here is a pure function of its inputs.
package presenter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rohits-web03/chainvault/internal/models"
)

type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
	SortSize   SortOrder = "size"
)

// TypeAll disables the type filter.
const TypeAll = "all"

// Query is the user's current search box, type dropdown and sort dropdown.
type Query struct {
	Search string
	Type   string
	Sort   SortOrder
}

// ParseQuery validates raw query values. Empty values take their defaults.
func ParseQuery(search, fileType, sort string) (Query, error) {
	q := Query{Search: search, Type: TypeAll, Sort: SortNewest}

	if fileType != "" && fileType != TypeAll {
		if !slices.Contains(models.FileTypes, models.FileType(fileType)) {
			return Query{}, fmt.Errorf("unknown file type %q", fileType)
		}
		q.Type = fileType
	}

	switch SortOrder(sort) {
	case "":
	case SortNewest, SortOldest, SortName, SortSize:
		q.Sort = SortOrder(sort)
	default:
		return Query{}, fmt.Errorf("unknown sort order %q", sort)
	}
	return q, nil
}

// Present filters files by search text and type, then stably sorts them.
// The input slice is not modified.
func Present(files []models.FileRecord, q Query) []models.FileRecord {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	out := lo.Filter(files, func(f models.FileRecord, _ int) bool {
		return matchesSearch(fold, f, needle) && matchesType(f, q.Type)
	})

	switch q.Sort {
	case SortOldest:
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return a.UploadedAt.Compare(b.UploadedAt)
		})
	case SortName:
		col := collate.New(language.English)
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return col.CompareString(a.FileName, b.FileName)
		})
	case SortSize:
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return compareInt64(b.FileSize, a.FileSize)
		})
	default:
		slices.SortStableFunc(out, func(a, b models.FileRecord) int {
			return b.UploadedAt.Compare(a.UploadedAt)
		})
	}
	return out
}

func matchesSearch(fold cases.Caser, f models.FileRecord, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(fold.String(f.FileName), needle) ||
		strings.Contains(fold.String(f.Description), needle) {
		return true
	}
	return lo.SomeBy(f.Tags, func(tag string) bool {
		return strings.Contains(fold.String(tag), needle)
	})
}

func matchesType(f models.FileRecord, fileType string) bool {
	return fileType == "" || fileType == TypeAll || string(f.FileType) == fileType
}

// FilterByTag keeps files having a tag that contains tag, case-insensitively.
// An empty or blank tag keeps everything.
func FilterByTag(files []models.FileRecord, tag string) []models.FileRecord {
	if strings.TrimSpace(tag) == "" {
		return slices.Clone(files)
	}
	fold := cases.Fold()
	needle := fold.String(tag)
	return lo.Filter(files, func(f models.FileRecord, _ int) bool {
		return lo.SomeBy(f.Tags, func(t string) bool {
			return strings.Contains(fold.String(t), needle)
		})
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
