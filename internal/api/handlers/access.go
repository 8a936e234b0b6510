package handlers

import (
	"net/http"
	"strconv"

	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/presenter"
	"github.com/rohits-web03/chainvault/internal/utils"
	"github.com/rohits-web03/chainvault/internal/views"
)

func generalData(res views.Result) map[string]any {
	return map[string]any{"grants": grantsOrEmpty(res.Grants)}
}

func selectiveData(res views.Result) map[string]any {
	return map[string]any{
		"selective": selectiveOrEmpty(res.Selective),
		"files":     presenter.Decorate(res.Files),
	}
}

// GET /api/v1/access
// ListAccess godoc
// @Summary Wallets with access to all of your files
// @Tags Access
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/access [get]
func (h *Handler) ListAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	res := h.resolve(r.Context(), r, models.SharedGeneral(account.Hex()))
	msg := "Access list retrieved successfully"
	if res.Failed() {
		msg = res.Message
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: !res.Failed(),
		Message: msg,
		Data:    generalData(res),
	})
}

// POST /api/v1/access
// GrantAccess godoc
// @Summary Grant a wallet access to all of your files
// @Tags Access
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload "Malformed address"
// @Failure 502 {object} utils.Payload "Ledger write failed"
// @Router /api/v1/access [post]
func (h *Handler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var input struct {
		Address string `json:"address"`
	}
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.Shares.GrantGeneral(r.Context(), account, input.Address)
	if err != nil {
		writeFailure(w, err, "Failed to grant access. Please try again.")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Access granted successfully!",
		Data:    generalData(res),
	})
}

// DELETE /api/v1/access/{address}
// RevokeAccess godoc
// @Summary Revoke a wallet's access to all of your files
// @Tags Access
// @Produce json
// @Param address path string true "Wallet address"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 428 {object} utils.Payload "Confirmation missing"
// @Failure 502 {object} utils.Payload
// @Router /api/v1/access/{address} [delete]
func (h *Handler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	res, err := h.Shares.RevokeGeneral(r.Context(), account, r.PathValue("address"), confirmer(r))
	if err != nil {
		writeFailure(w, err, "Failed to revoke access. Please try again.")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Access revoked successfully!",
		Data:    generalData(res),
	})
}

// GET /api/v1/access/files
// ListFileAccess godoc
// @Summary Who can see which of your files
// @Tags Access
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/access/files [get]
func (h *Handler) ListFileAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	res := h.resolve(r.Context(), r, models.SharedSelective(account.Hex()))
	msg := "File access list retrieved successfully"
	if res.Failed() {
		msg = res.Message
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: !res.Failed(),
		Message: msg,
		Data:    selectiveData(res),
	})
}

// POST /api/v1/access/files
// GrantFileAccess godoc
// @Summary Grant a wallet access to one file
// @Tags Access
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/v1/access/files [post]
func (h *Handler) GrantFileAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	var input struct {
		FileID  *int   `json:"fileId"`
		Address string `json:"address"`
	}
	if err := utils.DecodeJSON(r, &input); err != nil || input.FileID == nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	res, err := h.Shares.GrantFile(r.Context(), account, *input.FileID, input.Address)
	if err != nil {
		writeFailure(w, err, "Failed to grant file access. Please try again.")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File access granted successfully!",
		Data:    selectiveData(res),
	})
}

// DELETE /api/v1/access/files/{fileId}/{address}
// RevokeFileAccess godoc
// @Summary Revoke a wallet's access to one file
// @Tags Access
// @Produce json
// @Param fileId path int true "File id"
// @Param address path string true "Wallet address"
// @Param confirm query bool true "Must be true"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 428 {object} utils.Payload
// @Failure 502 {object} utils.Payload
// @Router /api/v1/access/files/{fileId}/{address} [delete]
func (h *Handler) RevokeFileAccess(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	fileID, err := strconv.Atoi(r.PathValue("fileId"))
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid file id")
		return
	}

	res, err := h.Shares.RevokeFile(r.Context(), account, fileID, r.PathValue("address"), confirmer(r))
	if err != nil {
		writeFailure(w, err, "Failed to revoke file access. Please try again.")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "File access revoked successfully!",
		Data:    selectiveData(res),
	})
}
