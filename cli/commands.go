package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Check   CheckCmd   `cmd:"" help:"Parse a transcription file and report what survived normalization."`
	Stats   StatsCmd   `cmd:"" help:"Summarize a transcription: totals, currencies, entities."`
	Export  ExportCmd  `cmd:"" help:"Export normalized transactions as CSV or JSON."`
	Related RelatedCmd `cmd:"" help:"Rank transactions by relatedness to a given one."`
	Dump    DumpCmd    `cmd:"" help:"Dump the decoded records for debugging."`
	Web     WebCmd     `cmd:"" help:"Start a web server over a transcription file."`
}
