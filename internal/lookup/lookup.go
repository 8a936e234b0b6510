// Package lookup drives the "files shared with me" flow: the viewer enters an
// owner's address, the owner's visible files load, and a tag filter narrows them.
package lookup

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/presenter"
	"github.com/rohits-web03/chainvault/internal/views"
)

type State string

const (
	StateIdle         State = "idle"
	StateLoading      State = "loading"
	StateLoaded       State = "loaded"
	StateAccessDenied State = "access_denied"
	StateFailed       State = "failed"
)

// Notice tells the client which empty state to show, if any.
type Notice string

const (
	NoticeNone         Notice = ""
	NoticeEnterAddress Notice = "enter_address"
	NoticeNoFiles      Notice = "no_files"
	NoticeNoMatches    Notice = "no_matches"
	NoticeDenied       Notice = "access_denied"
	NoticeFailed       Notice = "failed"
)

// Source loads owner's files as visible to viewer.
type Source interface {
	ResolveShared(ctx context.Context, viewer, owner common.Address) views.Result
}

// Session is one viewer's lookup panel. Overlapping queries are not
// serialised: whichever finishes last decides the displayed state.
type Session struct {
	src    Source
	addrs  identity.Validator
	viewer common.Address

	mu      sync.Mutex
	state   State
	owner   string
	files   []models.FileRecord
	tag     string
	message string
}

func NewSession(src Source, addrs identity.Validator, viewer common.Address) *Session {
	if addrs == nil {
		addrs = identity.Addresses
	}
	return &Session{src: src, addrs: addrs, viewer: viewer, state: StateIdle}
}

// Query loads the files of the owner named by input. Malformed input returns
// an error wrapping ledger.ErrInvalidInput and leaves the session untouched.
func (s *Session) Query(ctx context.Context, input string) error {
	owner, err := identity.ParseAddress(s.addrs, input)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = StateLoading
	s.message = ""
	s.mu.Unlock()

	res := s.src.ResolveShared(ctx, s.viewer, owner)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tag = ""
	s.message = res.Message
	switch res.Failure {
	case ledger.KindNone:
		s.state = StateLoaded
		s.owner = owner.Hex()
		s.files = res.Files
	case ledger.KindAccessDenied:
		s.state = StateAccessDenied
		s.owner = owner.Hex()
		s.files = nil
	default:
		s.state = StateFailed
		s.owner = owner.Hex()
		s.files = nil
	}
	return nil
}

// SetTagFilter narrows the loaded files to those with a matching tag.
func (s *Session) SetTagFilter(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tag = tag
}

// Clear returns to idle and forgets the owner, files and tag filter.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
	s.owner = ""
	s.files = nil
	s.tag = ""
	s.message = ""
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot is a consistent copy of the session for display.
type Snapshot struct {
	State   State               `json:"state"`
	Owner   string              `json:"owner,omitempty"`
	Tag     string              `json:"tag,omitempty"`
	Files   []models.FileRecord `json:"files"`
	Total   int                 `json:"total"`
	Notice  Notice              `json:"notice,omitempty"`
	Message string              `json:"message,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:   s.state,
		Owner:   s.owner,
		Tag:     s.tag,
		Files:   []models.FileRecord{},
		Total:   len(s.files),
		Message: s.message,
	}
	switch s.state {
	case StateIdle:
		snap.Notice = NoticeEnterAddress
	case StateLoaded:
		snap.Files = presenter.FilterByTag(s.files, s.tag)
		switch {
		case len(s.files) == 0:
			snap.Notice = NoticeNoFiles
		case len(snap.Files) == 0:
			snap.Notice = NoticeNoMatches
		}
	case StateAccessDenied:
		snap.Notice = NoticeDenied
	case StateFailed:
		snap.Notice = NoticeFailed
	}
	return snap
}

// Visible returns the loaded files after the tag filter.
func (s *Session) Visible() []models.FileRecord {
	return s.Snapshot().Files
}
