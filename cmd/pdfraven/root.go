package main

import (
	"errors"

	"github.com/spf13/cobra"
)

type options struct {
	file       string
	threads    int
	chunkSize  uint64
	timeoutSec int
	rate       int
	resume     bool
	sessionDir string
	dbPath     string
	eventsLog  string
	noCache    bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:   "pdfraven",
		Short: "Recover passwords of encrypted PDF, ZIP and RAR files",
		Long: "pdfraven enumerates candidate passwords from wordlists, numeric\n" +
			"ranges, dates, masks and hybrid patterns, and tests them against an\n" +
			"encrypted document with a resumable, parallel search.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&o.file, "file", "f", "", "path to the encrypted document")
	pf.IntVarP(&o.threads, "threads", "t", 0, "worker count (default: CPU count)")
	pf.Uint64Var(&o.chunkSize, "chunk-size", 0, "candidates per work chunk")
	pf.IntVar(&o.timeoutSec, "timeout", 0, "maximum attack time in seconds")
	pf.IntVar(&o.rate, "rate", 0, "maximum attempts per second (0 = unlimited)")
	pf.BoolVar(&o.resume, "resume", false, "resume the stored session for this attack")
	pf.StringVar(&o.sessionDir, "session-dir", ".pdfraven/sessions", "directory for session checkpoints")
	pf.StringVar(&o.dbPath, "db", ".pdfraven/found.db", "found-password database path")
	pf.StringVar(&o.eventsLog, "events-log", "", "append coordinator events to this NDJSON file")
	pf.BoolVar(&o.noCache, "no-cache", false, "skip the found-password database")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newWordlistCmd(o),
		newRangeCmd(o),
		newNumericCmd(o),
		newDateCmd(o),
		newQueryCmd(o),
		newMaskCmd(o),
		newHybridCmd(o),
		newBruteCmd(o),
		newSessionsCmd(o),
	)

	return root
}

func (o *options) requireFile() error {
	if o.file == "" {
		return errors.New("--file is required")
	}
	return nil
}
