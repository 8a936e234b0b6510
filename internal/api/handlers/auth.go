package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/api/middleware"
	"github.com/rohits-web03/chainvault/internal/config"
	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/utils"
)

// POST /api/v1/auth/nonce
// RequestNonce godoc
// @Summary Start a wallet login
// @Description Issues a single-use nonce and the message the wallet must sign.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/v1/auth/nonce [post]
func (h *Handler) RequestNonce(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Address string `json:"address"`
	}
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	address, err := identity.ParseAddress(h.Addrs, input.Address)
	if err != nil {
		utils.Fail(w, http.StatusBadRequest, "Please enter a valid Ethereum address")
		return
	}

	nonce, err := h.Nonces.Issue(address)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create login nonce")
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Sign the message with your wallet",
		Data: map[string]any{
			"nonce":     nonce,
			"message":   identity.Challenge(nonce),
			"expiresIn": identity.NonceTTL.String(),
		},
	})
}

// POST /api/v1/auth/connect
// Connect godoc
// @Summary Finish a wallet login
// @Description Verifies the signed nonce and the wallet network, then sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Failure 409 {object} utils.Payload "Wrong network"
// @Router /api/v1/auth/connect [post]
func (h *Handler) Connect(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Address   string `json:"address"`
		Nonce     string `json:"nonce"`
		Signature string `json:"signature"`
		ChainID   int64  `json:"chainId"`
	}
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	address, err := identity.ParseAddress(h.Addrs, input.Address)
	if err != nil || input.Nonce == "" || input.Signature == "" {
		utils.Fail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.ChainID != h.ChainID {
		utils.JSONResponse(w, http.StatusConflict, utils.Payload{
			Success: false,
			Message: "Wrong network: please switch your wallet to " + networkName(h.ChainID),
			Data:    map[string]any{"expectedChainId": h.ChainID},
		})
		return
	}

	if err := h.Nonces.Consume(address, input.Nonce); err != nil {
		utils.Fail(w, http.StatusUnauthorized, "Login expired, please try again")
		return
	}
	if err := identity.VerifySignature(address, identity.Challenge(input.Nonce), input.Signature); err != nil {
		zap.L().Debug("Rejected wallet signature", zap.String("address", address.Hex()), zap.Error(err))
		utils.Fail(w, http.StatusUnauthorized, "Invalid signature")
		return
	}

	tokenString, expiration, err := middleware.IssueToken(h.JWTSecret, address, time.Now())
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	// SameSite cookie policy
	sameSite := http.SameSiteLaxMode
	if h.Secure {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(time.Until(expiration).Seconds()),
		Secure:   h.Secure,
		HttpOnly: true,
		SameSite: sameSite,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Wallet connected",
		Data: map[string]any{
			"account": address.Hex(),
			"token":   tokenString,
		},
	})
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	// Delete the token cookie
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GET /api/v1/network
func (h *Handler) Network(w http.ResponseWriter, r *http.Request) {
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Network retrieved successfully",
		Data: map[string]any{
			"chainId": h.ChainID,
			"name":    networkName(h.ChainID),
		},
	})
}

func networkName(chainID int64) string {
	switch chainID {
	case config.SepoliaChainID:
		return "Sepolia"
	case 1:
		return "Ethereum Mainnet"
	case 31337:
		return "Localhost"
	}
	return "chain " + strconv.FormatInt(chainID, 10)
}
