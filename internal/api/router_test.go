package api

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohits-web03/chainvault/internal/api/handlers"
	"github.com/rohits-web03/chainvault/internal/blobstore"
	"github.com/rohits-web03/chainvault/internal/config"
	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/ledger/ledgertest"
	"github.com/rohits-web03/chainvault/internal/metrics"
	"github.com/rohits-web03/chainvault/internal/models"
	"github.com/rohits-web03/chainvault/internal/share"
	"github.com/rohits-web03/chainvault/internal/views"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	fake    *ledgertest.Fake
	handler http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	fake := ledgertest.New()
	resolver := views.NewResolver(fake, blobstore.NewGateway(""), views.NewCache(time.Minute))
	h := &handlers.Handler{
		Views:     resolver,
		Shares:    share.NewAdmin(fake, identity.Addresses, resolver),
		Addrs:     identity.Addresses,
		Nonces:    identity.NewNonceStore(),
		ChainID:   config.SepoliaChainID,
		JWTSecret: "test-secret",
	}
	return &testServer{
		t:       t,
		fake:    fake,
		handler: SetupRouter(h, metrics.New(), config.CorsConfig("http://localhost:5173")),
	}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" && rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

// login runs the nonce/sign/connect flow for a fresh wallet.
func (s *testServer) login() (*identity.Keyed, string) {
	s.t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(s.t, err)
	wallet, err := identity.NewKeyed(hex.EncodeToString(crypto.FromECDSA(key)), config.SepoliaChainID)
	require.NoError(s.t, err)

	code, env := s.do(http.MethodPost, "/api/v1/auth/nonce", "", map[string]string{"address": wallet.Account().Hex()})
	require.Equal(s.t, http.StatusOK, code)
	var challenge struct {
		Nonce   string `json:"nonce"`
		Message string `json:"message"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &challenge))

	sig, err := wallet.Sign(challenge.Message)
	require.NoError(s.t, err)
	code, env = s.do(http.MethodPost, "/api/v1/auth/connect", "", map[string]any{
		"address":   wallet.Account().Hex(),
		"nonce":     challenge.Nonce,
		"signature": hexutil.Encode(sig),
		"chainId":   config.SepoliaChainID,
	})
	require.Equal(s.t, http.StatusOK, code, env.Message)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &session))
	return wallet, session.Token
}

func TestHealthAndNetwork(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	code, env := s.do(http.MethodGet, "/api/v1/network", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"chainId":11155111,"name":"Sepolia"}`, string(env.Data))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(http.MethodGet, "/api/v1/files", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/api/v1/access", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestConnectRejectsWrongNetwork(t *testing.T) {
	s := newTestServer(t)
	wallet, _ := s.login()

	code, env := s.do(http.MethodPost, "/api/v1/auth/connect", "", map[string]any{
		"address":   wallet.Account().Hex(),
		"nonce":     "x",
		"signature": "0x00",
		"chainId":   1,
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, env.Message, "Sepolia")
}

func TestConnectRejectsReplayedNonce(t *testing.T) {
	s := newTestServer(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet, err := identity.NewKeyed(hex.EncodeToString(crypto.FromECDSA(key)), config.SepoliaChainID)
	require.NoError(t, err)

	_, env := s.do(http.MethodPost, "/api/v1/auth/nonce", "", map[string]string{"address": wallet.Account().Hex()})
	var challenge struct {
		Nonce   string `json:"nonce"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &challenge))
	sig, err := wallet.Sign(challenge.Message)
	require.NoError(t, err)
	body := map[string]any{
		"address":   wallet.Account().Hex(),
		"nonce":     challenge.Nonce,
		"signature": hexutil.Encode(sig),
		"chainId":   config.SepoliaChainID,
	}

	code, _ := s.do(http.MethodPost, "/api/v1/auth/connect", "", body)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, "/api/v1/auth/connect", "", body)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestNonceRequestDoesNotCancelPendingLogin(t *testing.T) {
	s := newTestServer(t)
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet, err := identity.NewKeyed(hex.EncodeToString(crypto.FromECDSA(key)), config.SepoliaChainID)
	require.NoError(t, err)
	nonceBody := map[string]string{"address": wallet.Account().Hex()}

	_, env := s.do(http.MethodPost, "/api/v1/auth/nonce", "", nonceBody)
	var challenge struct {
		Nonce   string `json:"nonce"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &challenge))

	// Someone else asks for a nonce for the same wallet in between.
	code, _ := s.do(http.MethodPost, "/api/v1/auth/nonce", "", nonceBody)
	require.Equal(t, http.StatusOK, code)

	sig, err := wallet.Sign(challenge.Message)
	require.NoError(t, err)
	code, env = s.do(http.MethodPost, "/api/v1/auth/connect", "", map[string]any{
		"address":   wallet.Account().Hex(),
		"nonce":     challenge.Nonce,
		"signature": hexutil.Encode(sig),
		"chainId":   config.SepoliaChainID,
	})
	assert.Equal(t, http.StatusOK, code, env.Message)
}

func TestSharingFlow(t *testing.T) {
	s := newTestServer(t)
	owner, ownerToken := s.login()
	viewer, viewerToken := s.login()

	s.fake.AddFile(owner.Account(), models.FileRecord{FileName: "trip.jpg", FileType: models.FileTypeImage, FileSize: 1536, ContentHash: "Qm1", Tags: []string{"holiday"}})
	s.fake.AddFile(owner.Account(), models.FileRecord{FileName: "tax.pdf", FileType: models.FileTypeDocument, FileSize: 2048, ContentHash: "Qm2", Tags: []string{"finance"}})

	// Owner sees their own files, decorated.
	code, env := s.do(http.MethodGet, "/api/v1/files?sort=name", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var listing struct {
		Files []struct {
			FileName  string `json:"fileName"`
			SizeLabel string `json:"sizeLabel"`
			URL       string `json:"url"`
		} `json:"files"`
		Count     int    `json:"count"`
		TotalSize string `json:"totalSize"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Equal(t, 2, listing.Count)
	assert.Equal(t, "tax.pdf", listing.Files[0].FileName)
	assert.Equal(t, "1.5 KB", listing.Files[1].SizeLabel)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/Qm1", listing.Files[1].URL)
	assert.Equal(t, "3.5 KB", listing.TotalSize)

	code, _ = s.do(http.MethodGet, "/api/v1/files?type=spreadsheet", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Viewer is refused before any grant.
	sharedPath := "/api/v1/shared/" + owner.Account().Hex()
	code, env = s.do(http.MethodGet, sharedPath, viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, views.MsgAccessDenied, env.Message)

	code, _ = s.do(http.MethodGet, "/api/v1/shared/nope", viewerToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// Grant one file.
	code, _ = s.do(http.MethodPost, "/api/v1/access/files", ownerToken, map[string]any{"fileId": 1, "address": viewer.Account().Hex()})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, sharedPath, viewerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var shared struct {
		State string `json:"state"`
		Files []struct {
			FileName string `json:"fileName"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &shared))
	assert.Equal(t, "loaded", shared.State)
	require.Len(t, shared.Files, 1)
	assert.Equal(t, "tax.pdf", shared.Files[0].FileName)

	// General access shows everything; the tag filter narrows it.
	code, env = s.do(http.MethodPost, "/api/v1/access", ownerToken, map[string]string{"address": viewer.Account().Hex()})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Access granted successfully!", env.Message)

	code, env = s.do(http.MethodGet, sharedPath+"?tag=HOLI", viewerToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &shared))
	require.Len(t, shared.Files, 1)
	assert.Equal(t, "trip.jpg", shared.Files[0].FileName)

	// Revocation needs confirmation.
	revokePath := "/api/v1/access/" + viewer.Account().Hex()
	code, _ = s.do(http.MethodDelete, revokePath, ownerToken, nil)
	assert.Equal(t, http.StatusPreconditionRequired, code)
	code, _ = s.do(http.MethodDelete, revokePath+"?confirm=true", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, "/api/v1/access/files/1/"+viewer.Account().Hex()+"?confirm=true", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodGet, sharedPath, viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// Dashboard reflects the revoked state.
	code, env = s.do(http.MethodGet, "/api/v1/dashboard", ownerToken, nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		General   []models.AccessGrant `json:"general"`
		Selective []views.UserFiles    `json:"selective"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Equal(t, []models.AccessGrant{{User: viewer.Account().Hex(), Access: false}}, dash.General)
	assert.Empty(t, dash.Selective)
}

func TestGrantRejectsBadAddress(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login()

	code, env := s.do(http.MethodPost, "/api/v1/access", token, map[string]string{"address": "0x123"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please enter a valid Ethereum address", env.Message)
	assert.Zero(t, s.fake.Count("allow"))
}

func TestListingFailsSoft(t *testing.T) {
	s := newTestServer(t)
	_, token := s.login()
	s.fake.Errs["getMyFiles"] = assert.AnError

	code, env := s.do(http.MethodGet, "/api/v1/files", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, env.Success)
	assert.Equal(t, views.MsgLoadFailed, env.Message)
}

func TestDashboardSectionsFailIndependently(t *testing.T) {
	s := newTestServer(t)
	wallet, token := s.login()
	s.fake.AddFile(wallet.Account(), models.FileRecord{FileName: "a.png", FileType: models.FileTypeImage, ContentHash: "QmA"})
	s.fake.Errs["shareAccess"] = assert.AnError

	code, env := s.do(http.MethodGet, "/api/v1/dashboard", token, nil)
	require.Equal(t, http.StatusOK, code)
	var dash struct {
		FilesNote     string               `json:"filesNote"`
		General       []models.AccessGrant `json:"general"`
		GeneralNote   string               `json:"generalNote"`
		SelectiveNote string               `json:"selectiveNote"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.Empty(t, dash.FilesNote)
	assert.Empty(t, dash.SelectiveNote)
	assert.Equal(t, views.MsgLoadFailed, dash.GeneralNote)
	assert.NotNil(t, dash.General)
	assert.Empty(t, dash.General)
	assert.Contains(t, string(env.Data), "a.png")
}

func TestChat(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/api/v1/chat", "", map[string]string{"message": "hello"})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "reply")

	code, _ = s.do(http.MethodPost, "/api/v1/chat", "", map[string]string{"message": " "})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/v1/network", "", nil)

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chainvault_http_requests_total")
}
