package commands

import (
	"context"
	"fmt"

	mongostore "github.com/rusafhasan/agencymanagement/internal/infrastructure/db/mongo"
)

// EnsureIndexesCmd creates the MongoDB indexes the repositories rely on.
type EnsureIndexesCmd struct{}

func (c *EnsureIndexesCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, log, err := setup(ctx, globals)
	if err != nil {
		return err
	}

	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}
