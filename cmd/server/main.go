// Command server runs the agency dashboard API.
//
// @title                       Agency Dashboard API
// @version                     1.0
// @description                 Role-scoped API for workspaces, projects, tasks, comments, payments and revenues.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/rusafhasan/agencymanagement/cmd/server/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Debug         bool                      `help:"Enable debug logging."`
		Version       kong.VersionFlag          `help:"Print the version and exit."`
		Serve         commands.ServeCmd         `cmd:"" default:"1" help:"Start the HTTP API."`
		EnsureIndexes commands.EnsureIndexesCmd `cmd:"" help:"Create the MongoDB indexes and exit."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("agency-dashboard"),
		kong.Description("Agency dashboard API server."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
