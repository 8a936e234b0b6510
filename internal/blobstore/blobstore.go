// Package blobstore resolves content hashes to URLs the browser can fetch.
package blobstore

import (
	"context"
	"errors"
	"strings"
)

const DefaultGatewayBase = "https://gateway.pinata.cloud/ipfs"

var ErrEmptyHash = errors.New("empty content hash")

// Resolver turns a content hash into a fetchable URL.
type Resolver interface {
	URL(ctx context.Context, contentHash string) (string, error)
}

// Gateway builds "<base>/<hash>" and never touches the network.
type Gateway struct {
	Base string
}

func NewGateway(base string) Gateway {
	if base == "" {
		base = DefaultGatewayBase
	}
	return Gateway{Base: strings.TrimRight(base, "/")}
}

func (g Gateway) URL(_ context.Context, contentHash string) (string, error) {
	if contentHash == "" {
		return "", ErrEmptyHash
	}
	return g.Base + "/" + contentHash, nil
}
