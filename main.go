package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/chpollin/depcha-aldersbach/cli"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""

	flags struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	cli.Version = Version
	cli.CommitSHA = CommitSHA

	ctx := kong.Parse(&flags,
		kong.Vars{
			"version": buildVersion(),
		},
		kong.Name("depcha"),
		kong.Description("Normalize and analyze the Aldersbach account book transcriptions."),
		kong.UsageOnError(),
		kong.Bind(&flags.Globals),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

func buildVersion() string {
	if Version == "" {
		Version = "dev"
	}
	if CommitSHA == "" {
		return Version
	}
	return fmt.Sprintf("%s (%s)", Version, CommitSHA)
}
