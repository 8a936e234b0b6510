// Package app assembles the ledger, blob store, views and share admin from config.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/blobstore"
	"github.com/rohits-web03/chainvault/internal/config"
	"github.com/rohits-web03/chainvault/internal/identity"
	"github.com/rohits-web03/chainvault/internal/ledger"
	"github.com/rohits-web03/chainvault/internal/metrics"
	"github.com/rohits-web03/chainvault/internal/repositories"
	"github.com/rohits-web03/chainvault/internal/share"
	"github.com/rohits-web03/chainvault/internal/views"
)

type App struct {
	Config  config.Config
	Ledger  ledger.Ledger
	Local   *repositories.LocalLedger // nil unless LEDGER_BACKEND=local
	Blobs   blobstore.Resolver
	R2      *repositories.R2Store // nil unless BLOB_BACKEND=r2
	Signer  *identity.Keyed       // nil when SIGNER_KEY is unset
	Views   *views.Resolver
	Shares  *share.Admin
	Metrics *metrics.Metrics
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Metrics: metrics.New()}

	if cfg.Ledger.SignerKey != "" {
		signer, err := identity.NewKeyed(cfg.Ledger.SignerKey, cfg.Ledger.ChainID)
		if err != nil {
			return nil, err
		}
		a.Signer = signer
		zap.L().Info("Loaded signer", zap.String("account", signer.Account().Hex()))
	}

	var base ledger.Ledger
	switch cfg.Ledger.Backend {
	case "contract":
		var signer ledger.Signer
		if a.Signer != nil {
			signer = a.Signer
		}
		c, err := ledger.Dial(ctx, cfg.Ledger.RPCURL, cfg.Ledger.ContractAddress, signer)
		if err != nil {
			return nil, err
		}
		base = c
	case "local":
		db, err := repositories.Open(cfg.DB_URL)
		if err != nil {
			return nil, err
		}
		a.Local = repositories.NewLocalLedger(db)
		base = a.Local
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
	a.Ledger = ledger.Instrument(base, a.Metrics)

	switch cfg.BlobBackend {
	case "r2":
		a.R2 = repositories.NewR2Store(cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey,
			cfg.R2.AccountID, cfg.R2.BucketName, cfg.R2.Region, cfg.R2.URLExpiry)
		a.Blobs = a.R2
	default:
		a.Blobs = blobstore.NewGateway(cfg.GatewayBase)
	}

	var cache *views.Cache
	if cfg.ViewCache {
		cache = views.NewCache(cfg.ViewCacheTTL)
	}
	a.Views = views.NewResolver(a.Ledger, a.Blobs, cache)
	a.Shares = share.NewAdmin(a.Ledger, identity.Addresses, a.Views)
	return a, nil
}
