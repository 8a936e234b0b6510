package handlers

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/presenter"
	"github.com/rohits-web03/chainvault/internal/utils"
	"github.com/rohits-web03/chainvault/internal/views"
)

func parseQuery(r *http.Request) (presenter.Query, error) {
	q := r.URL.Query()
	return presenter.ParseQuery(q.Get("search"), q.Get("type"), q.Get("sort"))
}

func (h *Handler) resolve(ctx context.Context, r *http.Request, v models.View) views.Result {
	if refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh")); refresh {
		return h.Views.Refresh(ctx, v)
	}
	return h.Views.Resolve(ctx, v)
}

// writeListing sends a resolved view through the presenter. Failed reads are
// still 200: the client shows an empty list with the message.
func writeListing(w http.ResponseWriter, res views.Result, q presenter.Query, okMsg string) {
	listing := presenter.NewListing(presenter.Present(res.Files, q))
	msg := okMsg
	if res.Failed() {
		msg = res.Message
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: !res.Failed(),
		Message: msg,
		Data:    listing,
	})
}

// GET /api/v1/files
// ListMyFiles godoc
// @Summary List the connected wallet's files
// @Description Files owned by the caller, filtered by search text and type and sorted.
// @Tags Files
// @Produce json
// @Param search query string false "Matches file name, description or any tag"
// @Param type query string false "all, image, document, video, audio or other"
// @Param sort query string false "newest, oldest, name or size"
// @Param refresh query bool false "Bypass the view cache"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/files [get]
func (h *Handler) ListMyFiles(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	res := h.resolve(r.Context(), r, models.Owned(account.Hex()))
	writeListing(w, res, q, "Files retrieved successfully")
}

// GET /api/v1/files/public
// ListPublicFiles godoc
// @Summary List public files
// @Tags Files
// @Produce json
// @Param search query string false "Matches file name, description or any tag"
// @Param type query string false "all, image, document, video, audio or other"
// @Param sort query string false "newest, oldest, name or size"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/files/public [get]
func (h *Handler) ListPublicFiles(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	res := h.resolve(r.Context(), r, models.Public())
	writeListing(w, res, q, "Public files retrieved successfully")
}

// GET /api/v1/dashboard
// Dashboard godoc
// @Summary Owned files with both sharing lists
// @Description Each section fails independently to an empty list with a message.
// @Tags Files
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/v1/dashboard [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	account, ok := requireCaller(w, r)
	if !ok {
		return
	}

	// Sections fail soft, so there is no error to propagate between them.
	ctx := r.Context()
	var owned, general, selective views.Result
	var wg sync.WaitGroup
	wg.Go(func() { owned = h.resolve(ctx, r, models.Owned(account.Hex())) })
	wg.Go(func() { general = h.resolve(ctx, r, models.SharedGeneral(account.Hex())) })
	wg.Go(func() { selective = h.resolve(ctx, r, models.SharedSelective(account.Hex())) })
	wg.Wait()

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Dashboard retrieved successfully",
		Data: map[string]any{
			"account":       account.Hex(),
			"files":         presenter.NewListing(presenter.Present(owned.Files, presenter.Query{Sort: presenter.SortNewest})),
			"filesNote":     owned.Message,
			"general":       grantsOrEmpty(general.Grants),
			"generalNote":   general.Message,
			"selective":     selectiveOrEmpty(selective.Selective),
			"selectiveNote": selective.Message,
		},
	})
}

func grantsOrEmpty(g []models.AccessGrant) []models.AccessGrant {
	if g == nil {
		return []models.AccessGrant{}
	}
	return g
}

func selectiveOrEmpty(s []views.UserFiles) []views.UserFiles {
	if s == nil {
		return []views.UserFiles{}
	}
	return s
}
