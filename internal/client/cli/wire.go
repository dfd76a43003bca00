package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/ganfan/internal/client/config"
	"github.com/dmitrijs2005/ganfan/internal/client/imagestore"
	"github.com/dmitrijs2005/ganfan/internal/client/services"
	"github.com/dmitrijs2005/ganfan/internal/client/store"
	"github.com/dmitrijs2005/ganfan/internal/cryptox"
	"github.com/dmitrijs2005/ganfan/internal/dbx"
	"github.com/dmitrijs2005/ganfan/internal/imagex"
	"github.com/dmitrijs2005/ganfan/internal/logging"
	"github.com/dmitrijs2005/ganfan/internal/tokenx"
)

// NewFromConfig opens the store described by cfg and builds an App on it.
// The returned closer releases the store.
func NewFromConfig(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) (*App, io.Closer, error) {
	log, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}

	dialect, err := dbx.ParseDialect(cfg.StoreType)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ResolveStore(); err != nil {
		return nil, nil, err
	}

	st, err := store.Open(ctx, store.Options{Dialect: dialect, DSN: cfg.DatabaseDSN, StateDSN: cfg.StateDSN})
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "store opened", "dialect", dialect)

	images := imagestore.New(imagestore.S3Config{
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
	})
	compress := imagex.DefaultOptions()
	if cfg.ImageMaxKiB > 0 {
		compress.MaxBytes = cfg.ImageMaxBytes()
	}

	app := NewApp(Deps{
		Auth: services.NewAuthService(st.Users, cryptox.NewBcryptHasher(cryptox.DefaultCost),
			tokenx.New(cfg.TokenSecret), services.NewMetadataSessionStore(st.Metadata), log.With("component", "auth")),
		Users:                services.NewUserService(st.Users, log.With("component", "users")),
		Dishes:               services.NewDishService(st.Dishes, images, compress, log.With("component", "dishes")),
		Dinners:              services.NewDinnerService(st.DB(), st.Dialect, log.With("component", "dinners")),
		Log:                  log,
		In:                   in,
		Out:                  out,
		SessionCheckInterval: cfg.SessionCheckInterval,
	})
	return app, st, nil
}
