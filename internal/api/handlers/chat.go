package handlers

import (
	"net/http"
	"strings"

	"github.com/rohits-web03/chainvault/internal/chatbot"
	"github.com/rohits-web03/chainvault/internal/utils"
)

// POST /api/v1/chat
// Chat godoc
// @Summary Ask the help assistant
// @Tags Chat
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/chat [post]
func Chat(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Message string `json:"message"`
	}
	if err := utils.DecodeJSON(r, &input); err != nil || strings.TrimSpace(input.Message) == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "ok",
		Data:    map[string]string{"reply": chatbot.Reply(input.Message)},
	})
}
