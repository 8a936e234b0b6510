package presenter

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/models"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sampleFiles() []models.FileRecord {
	return []models.FileRecord{
		{ID: 0, FileName: "beach.png", FileType: models.FileTypeImage, FileSize: 2048, UploadedAt: base, Tags: []string{"Holiday", "2025"}},
		{ID: 1, FileName: "Report.pdf", FileType: models.FileTypeDocument, FileSize: 1 << 20, UploadedAt: base.Add(time.Hour), Description: "quarterly numbers", Tags: []string{}},
		{ID: 2, FileName: "clip.mp4", FileType: models.FileTypeVideo, FileSize: 1 << 20, UploadedAt: base.Add(-time.Hour), Tags: []string{"work"}},
		{ID: 3, FileName: "apple.txt", FileType: models.FileTypeOther, FileSize: 10, UploadedAt: base.Add(time.Hour), Tags: []string{}},
	}
}

func ids(files []models.FileRecord) []int {
	return lo.Map(files, func(f models.FileRecord, _ int) int { return f.ID })
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("", "", "")
	require.NoError(t, err)
	assert.Equal(t, Query{Type: TypeAll, Sort: SortNewest}, q)

	q, err = ParseQuery("x", "video", "size")
	require.NoError(t, err)
	assert.Equal(t, Query{Search: "x", Type: "video", Sort: SortSize}, q)

	_, err = ParseQuery("", "spreadsheet", "")
	assert.Error(t, err)
	_, err = ParseQuery("", "", "random")
	assert.Error(t, err)
}

func TestPresentSorts(t *testing.T) {
	tests := []struct {
		name string
		sort SortOrder
		want []int
	}{
		// 1 and 3 share an upload time, so input order decides.
		{name: "newest", sort: SortNewest, want: []int{1, 3, 0, 2}},
		{name: "oldest", sort: SortOldest, want: []int{2, 0, 1, 3}},
		{name: "name", sort: SortName, want: []int{3, 0, 2, 1}},
		{name: "size", sort: SortSize, want: []int{1, 2, 0, 3}},
		{name: "empty sort is newest", sort: "", want: []int{1, 3, 0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Present(sampleFiles(), Query{Type: TypeAll, Sort: tt.sort})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestPresentFilters(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{name: "search name case-insensitive", query: Query{Search: "REPORT"}, want: []int{1}},
		{name: "search description", query: Query{Search: "Quarterly"}, want: []int{1}},
		{name: "search tag", query: Query{Search: "holi"}, want: []int{0}},
		{name: "type filter", query: Query{Type: "video"}, want: []int{2}},
		{name: "search and type", query: Query{Search: "p", Type: "document"}, want: []int{1}},
		{name: "no match", query: Query{Search: "nothing"}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.query.Sort = SortOldest
			got := Present(sampleFiles(), tt.query)
			assert.ElementsMatch(t, tt.want, ids(got))
		})
	}
}

func TestPresentDoesNotMutateInput(t *testing.T) {
	files := sampleFiles()
	before := ids(files)

	Present(files, Query{Sort: SortName})
	Present(files, Query{Sort: SortSize, Search: "a"})

	assert.Equal(t, before, ids(files))
}

func TestPresentIsIdempotent(t *testing.T) {
	q := Query{Search: "p", Type: TypeAll, Sort: SortSize}
	once := Present(sampleFiles(), q)
	assert.Equal(t, once, Present(once, q))
}

func TestFilterByTag(t *testing.T) {
	files := sampleFiles()

	assert.Equal(t, []int{0}, ids(FilterByTag(files, "holiday")))
	assert.Equal(t, []int{0}, ids(FilterByTag(files, "20")))
	assert.Equal(t, []int{2}, ids(FilterByTag(files, "WORK")))
	assert.Equal(t, ids(files), ids(FilterByTag(files, "  ")))
	assert.Empty(t, FilterByTag(files, "missing"))
}
