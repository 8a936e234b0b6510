package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/utils"
)

const (
	TokenCookie = "token"
	SessionTTL  = 24 * time.Hour
)

// Claims identify the connected wallet.
type Claims struct {
	Address string `json:"address"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for address.
func IssueToken(secret string, address common.Address, now time.Time) (string, time.Time, error) {
	expiration := now.Add(SessionTTL)
	claims := &Claims{
		Address: address.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   address.Hex(),
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	return token, expiration, err
}

// ParseToken validates tokenStr and returns the wallet it was issued to.
func ParseToken(secret, tokenStr string) (common.Address, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return common.Address{}, jwt.ErrTokenInvalidClaims
	}
	if !common.IsHexAddress(claims.Address) {
		return common.Address{}, errors.New("token carries no address")
	}
	return common.HexToAddress(claims.Address), nil
}

func bearer(r *http.Request) string {
	if c, err := r.Cookie(TokenCookie); err == nil {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// AuthMiddleware requires a session token and puts its wallet address on the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr := bearer(r)
			if tokenStr == "" {
				utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			account, err := ParseToken(secret, tokenStr)
			if err != nil {
				utils.Fail(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := identity.WithAccount(r.Context(), account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
