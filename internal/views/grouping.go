package views

import (
	"github.com/rohits-web03/chainvault/internal/models"
)

// UserFiles lists the file ids one grantee may currently see.
type UserFiles struct {
	User    string `json:"user"`
	FileIDs []int  `json:"fileIds"`
}

// GroupByUser keeps grants with HasAccess set and groups their file ids per
// user. Users appear in first-seen order of a retained grant; ids keep source
// order. Users with no retained grant are absent.
func GroupByUser(grants []models.FileAccessGrant) []UserFiles {
	groups := []UserFiles{}
	pos := make(map[string]int)
	for _, g := range grants {
		if !g.HasAccess {
			continue
		}
		i, ok := pos[g.User]
		if !ok {
			i = len(groups)
			pos[g.User] = i
			groups = append(groups, UserFiles{User: g.User})
		}
		groups[i].FileIDs = append(groups[i].FileIDs, g.FileID)
	}
	return groups
}
