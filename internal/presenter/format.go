package presenter

import (
	"math"
	"strconv"

	"github.com/samber/lo"

	"github.com/rohits-web03/chainvault/internal/models"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders bytes in the largest unit up to GB with base-1024
// scaling, rounded half-up to two decimals with trailing zeros dropped.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	v := float64(bytes)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// Icon is the glyph shown next to a file of the given type.
func Icon(t models.FileType) string {
	switch t {
	case models.FileTypeImage:
		return "🖼️"
	case models.FileTypeDocument:
		return "📄"
	case models.FileTypeVideo:
		return "🎥"
	case models.FileTypeAudio:
		return "🎵"
	default:
		return "📁"
	}
}

// TotalSize sums the sizes of files.
func TotalSize(files []models.FileRecord) int64 {
	return lo.SumBy(files, func(f models.FileRecord) int64 { return f.FileSize })
}

// ShortAddress abbreviates an address to its first head and last tail characters.
func ShortAddress(address string, head, tail int) string {
	if head < 0 || tail < 0 || len(address) <= head+tail {
		return address
	}
	return address[:head] + "..." + address[len(address)-tail:]
}

// Item is a FileRecord with its display-only fields.
type Item struct {
	models.FileRecord
	SizeLabel string `json:"sizeLabel"`
	Icon      string `json:"icon"`
}

func Decorate(files []models.FileRecord) []Item {
	return lo.Map(files, func(f models.FileRecord, _ int) Item {
		return Item{FileRecord: f, SizeLabel: FormatSize(f.FileSize), Icon: Icon(f.FileType)}
	})
}

// Listing is a presented file set plus its summary line.
type Listing struct {
	Files     []Item `json:"files"`
	Count     int    `json:"count"`
	TotalSize string `json:"totalSize"`
}

func NewListing(files []models.FileRecord) Listing {
	return Listing{
		Files:     Decorate(files),
		Count:     len(files),
		TotalSize: FormatSize(TotalSize(files)),
	}
}
