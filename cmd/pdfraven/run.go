package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdfraven/pdfraven/internal/domain"
	"github.com/pdfraven/pdfraven/internal/events"
	"github.com/pdfraven/pdfraven/internal/gen"
	"github.com/pdfraven/pdfraven/internal/ndjson"
	"github.com/pdfraven/pdfraven/internal/oracle"
	"github.com/pdfraven/pdfraven/internal/search"
	"github.com/pdfraven/pdfraven/internal/store"
)

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runAttack(cmd *cobra.Command, o *options, spec *domain.AttackSpec) error {
	if err := o.requireFile(); err != nil {
		return err
	}
	logger := newLogger(o.verbose)

	try, err := oracle.Open(o.file)
	if errors.Is(err, oracle.ErrNotEncrypted) {
		color.Yellow("%s is not password protected; nothing to do.", o.file)
		return nil
	}
	if err != nil {
		return err
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Known password for this document? Verify before attacking.
	var cache *store.PasswordCache
	if !o.noCache {
		cache, err = store.OpenPasswordCache(o.dbPath)
		if err != nil {
			logger.Warn("password database unavailable", "path", o.dbPath, "err", err)
			cache = nil
		} else {
			defer cache.Close()
			if pw, ok, gerr := cache.Get(o.file); gerr == nil && ok {
				if hit, terr := try.Try(ctx, pw); terr == nil && hit {
					color.Green("Password found in database: %s", pw)
					return nil
				}
				color.Yellow("Cached password no longer opens the file; removing entry.")
				_ = cache.Delete(o.file)
			}
		}
	}

	words := &store.WordlistOpener{}
	defer words.Close()

	g, err := gen.Compile(spec, words)
	if err != nil {
		return err
	}

	sessions, err := store.NewSessionStore(o.sessionDir)
	if err != nil {
		return err
	}

	broker := events.NewBroker()
	engine := search.New(sessions, broker, logger)

	var eventLog *ndjson.Writer
	if o.eventsLog != "" {
		eventLog, err = ndjson.NewWriter(o.eventsLog)
		if err != nil {
			return err
		}
		defer eventLog.Close()
	}

	sub := broker.Subscribe()

	id, done := engine.Start(search.StartRequest{
		Document:   o.file,
		Spec:       spec,
		Generator:  g,
		Oracle:     try,
		Workers:    o.threads,
		ChunkSize:  o.chunkSize,
		Timeout:    time.Duration(o.timeoutSec) * time.Second,
		RatePerSec: o.rate,
		Resume:     o.resume,
	})

	// Ctrl-C saves the session and stops the run.
	quit := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			color.Yellow("\nInterrupted, saving session...")
			engine.Stop(id)
		case <-quit:
		}
	}()

	var grp errgroup.Group
	grp.Go(func() error {
		consumeEvents(sub, eventLog)
		return nil
	})

	res := <-done
	close(quit)
	broker.Unsubscribe(sub)
	_ = grp.Wait()

	return report(res, cache, o)
}

// consumeEvents drives the progress bar and the optional event log until
// the subscription closes.
func consumeEvents(sub chan events.Event, eventLog *ndjson.Writer) {
	var bar *pb.ProgressBar

	finishBar := func() {
		if bar != nil {
			bar.Finish()
			bar = nil
		}
	}

	for ev := range sub {
		if eventLog != nil {
			_ = eventLog.WriteEvent(ev.Name, ev.Payload)
		}

		switch msg := ev.Payload.(type) {
		case domain.SearchStartedMsg:
			fmt.Printf("Searching %d candidates (%s attack, %d workers)\n",
				msg.TotalCount, msg.Mode, msg.Workers)
			if msg.ResumedFrom > 0 {
				color.Cyan("Resuming at offset %d", msg.ResumedFrom)
			}
			bar = pb.New64(clampInt64(msg.TotalCount)).Start()
			bar.SetCurrent(clampInt64(msg.ResumedFrom))

		case domain.ProgressMsg:
			if bar != nil {
				bar.SetCurrent(clampInt64(msg.Checked))
			}

		case domain.FoundMsg:
			finishBar()

		case domain.SearchDoneMsg:
			finishBar()
		}
	}
	finishBar()
}

func report(res search.Result, cache *store.PasswordCache, o *options) error {
	if res.Err != nil {
		return res.Err
	}
	sess := res.Session

	switch sess.Status {
	case domain.StatusSucceeded:
		color.Green("Password found: %s (candidate #%d)", *sess.FoundPassword, *sess.FoundOffset)
		if cache != nil {
			if err := cache.Put(o.file, *sess.FoundPassword); err == nil {
				fmt.Println("Saved to password database.")
			}
		}
	case domain.StatusExhausted:
		color.Red("Password not found; candidate space exhausted (%d tried).", sess.CompletedOffset)
	case domain.StatusTimedOut:
		color.Yellow("Timed out at offset %d of %d; rerun with --resume to continue.",
			sess.CompletedOffset, sess.TotalCount)
	case domain.StatusStopped:
		color.Yellow("Stopped at offset %d of %d; rerun with --resume to continue.",
			sess.CompletedOffset, sess.TotalCount)
	default:
		fmt.Printf("Search ended with status %s at offset %d\n", sess.Status, sess.CompletedOffset)
	}
	return nil
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
