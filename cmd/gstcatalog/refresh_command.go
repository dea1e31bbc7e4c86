package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"gstcatalog/internal/catalog"
	"gstcatalog/internal/logging"
	"gstcatalog/internal/snapshot"
)

type refreshResult struct {
	SessionID       string        `json:"session_id"`
	ElementCount    int           `json:"element_count"`
	SnapshotID      int64         `json:"snapshot_id"`
	SnapshotCreated bool          `json:"snapshot_created"`
	SnapshotsPruned int64         `json:"snapshots_pruned"`
	ToolVersion     string        `json:"tool_version,omitempty"`
	Elapsed         time.Duration `json:"elapsed_ns"`
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Capture a fresh gst-inspect dump and store it as the latest snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			baseLogger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock, err := snapshot.AcquireRefreshLock(cfg.RefreshLockPath())
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			sessionID := uuid.NewString()
			runCtx := commandScope(cmd, sessionID)
			logger := logging.WithContext(runCtx, logging.NewComponentLogger(baseLogger, "refresh"))

			source, err := ctx.source(cmd)
			if err != nil {
				return err
			}
			capture := &capturingSource{Source: source}
			engine, err := ctx.newEngine(capture, catalog.WithObserver(progressObserver(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}

			started := time.Now()
			count, err := engine.Refresh(runCtx)
			if err != nil {
				return err
			}
			version := toolVersion(runCtx, source, logger)

			store, err := ctx.openSnapshots()
			if err != nil {
				return err
			}
			defer store.Close()

			saved, created, err := store.Save(runCtx, snapshot.Dump{
				SessionID:    sessionID,
				ToolVersion:  version,
				ElementCount: count,
				Content:      capture.dump,
			})
			if err != nil {
				return err
			}
			pruned, err := store.Prune(runCtx, cfg.Inspect.SnapshotRetention)
			if err != nil {
				logger.Warn("snapshot prune failed",
					logging.Error(err),
					logging.Alert("snapshot_prune"),
				)
			}
			logger.Info("snapshot stored",
				logging.Int64("snapshot_id", saved.ID),
				logging.Bool("created", created),
				logging.Int64("pruned", pruned),
				logging.String("path", store.Path()),
			)

			result := refreshResult{
				SessionID:       sessionID,
				ElementCount:    count,
				SnapshotID:      saved.ID,
				SnapshotCreated: created,
				SnapshotsPruned: pruned,
				ToolVersion:     version,
				Elapsed:         time.Since(started),
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d elements in %s\n", result.ElementCount, result.Elapsed.Round(time.Millisecond))
			state := "unchanged since last capture"
			if created {
				state = "new"
			}
			fmt.Fprintf(out, "Snapshot #%d (%s) in %s\n", saved.ID, state, store.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// toolVersion asks the source for its version when it knows one. A failure
// only costs the snapshot its version label.
func toolVersion(ctx context.Context, source catalog.Source, logger *slog.Logger) string {
	v, ok := source.(versioner)
	if !ok {
		return ""
	}
	version, err := v.Version(ctx)
	if err != nil {
		logger.Warn("gst-inspect version unavailable", logging.Error(err))
		return ""
	}
	return version
}

// progressObserver draws a single updating progress line on interactive
// terminals. It returns nil otherwise.
func progressObserver(w io.Writer) catalog.Observer {
	if !isTerminal(w) {
		return nil
	}
	return catalog.ObserverFuncs{
		OnProgress: func(current, total int) {
			if current == total || current%25 == 0 {
				fmt.Fprintf(w, "\rParsing elements %d/%d", current, total)
			}
		},
		OnFinished: func(int) {
			fmt.Fprint(w, "\r\x1b[K")
		},
	}
}
