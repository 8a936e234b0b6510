package handlers

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/lookup"
	"github.com/rohits-web03/chainvault/internal/presenter"
	"github.com/rohits-web03/chainvault/internal/utils"
)

type sharedResponse struct {
	lookup.Snapshot
	Files     []presenter.Item `json:"files"`
	TotalSize string           `json:"totalSize"`
}

// GET /api/v1/shared/{owner}
// GetSharedFiles godoc
// @Summary View files another wallet shares with you
// @Description Loads the owner's files visible to the caller, optionally narrowed by tag.
// @Tags Share
// @Produce json
// @Param owner path string true "Owner wallet address"
// @Param tag query string false "Case-insensitive tag substring"
// @Success 200 {object} utils.Payload "Files retrieved (possibly empty)"
// @Failure 400 {object} utils.Payload "Malformed address"
// @Failure 403 {object} utils.Payload "Owner has not granted access"
// @Router /api/v1/shared/{owner} [get]
func (h *Handler) GetSharedFiles(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}

	session := lookup.NewSession(h.Views, h.Addrs, account)
	if err := session.Query(r.Context(), r.PathValue("owner")); err != nil {
		msg := "Please enter a valid address"
		if errors.Is(err, ledger.ErrInvalidAddress) {
			msg = "Please enter a valid Ethereum address"
		}
		utils.Fail(w, http.StatusBadRequest, msg)
		return
	}
	session.SetTagFilter(r.URL.Query().Get("tag"))

	snap := session.Snapshot()
	body := sharedResponse{
		Snapshot:  snap,
		Files:     presenter.Decorate(snap.Files),
		TotalSize: presenter.FormatSize(presenter.TotalSize(snap.Files)),
	}

	switch snap.State {
	case lookup.StateAccessDenied:
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Success: false,
			Message: snap.Message,
			Data:    body,
		})
	case lookup.StateFailed:
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: false,
			Message: "Failed to load shared files. Please check the address and try again.",
			Data:    body,
		})
	default:
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Shared files retrieved successfully",
			Data:    body,
		})
	}
}
