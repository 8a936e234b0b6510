package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/share"
	"github.com/rohits-web03/chainvault/internal/utils"
	"github.com/rohits-web03/chainvault/internal/views"
)

// Handler carries the services every endpoint needs.
type Handler struct {
	Views     *views.Resolver
	Shares    *share.Admin
	Addrs     identity.Validator
	Nonces    *identity.NonceStore
	ChainID   int64
	JWTSecret string
	Secure    bool // production cookies
}

func caller(r *http.Request) (common.Address, bool) {
	return identity.AccountFrom(r.Context())
}

// requireCaller writes 401 when the request carries no session.
func requireCaller(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	account, ok := caller(r)
	if !ok {
		utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
	}
	return account, ok
}

// writeFailure maps a write-path error onto a status and user-visible message.
// failMsg is used for remote failures.
func writeFailure(w http.ResponseWriter, err error, failMsg string) {
	if errors.Is(err, share.ErrNotConfirmed) {
		utils.Fail(w, http.StatusPreconditionRequired, "Confirmation required: repeat the request with confirm=true")
		return
	}

	switch ledger.Classify(err) {
	case ledger.KindInvalidInput:
		msg := "Please enter a valid address"
		if errors.Is(err, ledger.ErrInvalidAddress) {
			msg = "Please enter a valid Ethereum address"
		}
		utils.Fail(w, http.StatusBadRequest, msg)
	case ledger.KindUnauthorized:
		utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
	case ledger.KindAccessDenied:
		utils.Fail(w, http.StatusForbidden, views.MsgAccessDenied)
	default:
		utils.Fail(w, http.StatusBadGateway, failMsg)
	}
}

func confirmer(r *http.Request) share.Confirmer {
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); ok {
		return share.Confirmed
	}
	return share.Declined
}
