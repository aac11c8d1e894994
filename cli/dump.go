package cli

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/chpollin/depcha-aldersbach/record"
)

// DumpCmd prints the decoded records before any normalization, for
// debugging transcriptions that do not load the way they should.
type DumpCmd struct {
	File FileOrStdin `help:"Transcription filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	data := cmd.File.Contents
	if data == nil {
		raw, err := os.ReadFile(cmd.File.Filename)
		if err != nil {
			return err
		}
		data = raw
	}

	records, err := record.DecodeBytes(data)
	if err != nil {
		return err
	}

	for _, rec := range records {
		repr.Println(rec)
	}

	return nil
}
