package models

import (
	"fmt"
	"strings"
)

// ViewKind is the closed set of derived projections over ledger data.
type ViewKind int

const (
	ViewOwned ViewKind = iota
	ViewSharedGeneral
	ViewSharedSelective
	ViewPublic
)

func (k ViewKind) String() string {
	switch k {
	case ViewOwned:
		return "owned"
	case ViewSharedGeneral:
		return "shared-general"
	case ViewSharedSelective:
		return "shared-selective"
	case ViewPublic:
		return "public"
	}
	return fmt.Sprintf("view(%d)", int(k))
}

// View names one projection. Account is ignored for ViewPublic.
type View struct {
	Kind    ViewKind
	Account string
}

func Owned(account string) View           { return View{Kind: ViewOwned, Account: account} }
func SharedGeneral(account string) View   { return View{Kind: ViewSharedGeneral, Account: account} }
func SharedSelective(account string) View { return View{Kind: ViewSharedSelective, Account: account} }
func Public() View                        { return View{Kind: ViewPublic} }

// Key identifies the view for caching.
func (v View) Key() string {
	if v.Kind == ViewPublic {
		return v.Kind.String()
	}
	return v.Kind.String() + ":" + strings.ToLower(v.Account)
}
