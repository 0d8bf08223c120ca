package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/rohmanhakim/atcoder-cli/internal/atcoder"
	"github.com/rohmanhakim/atcoder-cli/internal/client"
	"github.com/rohmanhakim/atcoder-cli/internal/metadata"
	"github.com/rohmanhakim/atcoder-cli/internal/session"
	"github.com/spf13/cobra"
)

// rawClientOverride replaces the HTTP transport in tests.
var rawClientOverride client.Client

// app is what a command body works with.
type app struct {
	ctx     context.Context
	atcoder *atcoder.AtCoder
	sink    metadata.MetadataSink
	out     io.Writer
}

/*
runWithAtCoder owns the session lifecycle of one command.

- Load the session file before the first request (a missing file is an empty session)
- Run the command body against a facade built from the config
- Save the session afterwards, also when the body failed
*/
func runWithAtCoder(cmd *cobra.Command, body func(a app) error) error {
	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	recorder := metadata.NewRecorder(newLogger(cmd.ErrOrStderr()))
	path, err := sessionPath(cfg)
	if err != nil {
		return err
	}
	store := session.NewStore(path, recorder)
	sess, loadErr := store.Load()
	if loadErr != nil {
		return loadErr
	}

	opts := []atcoder.Option{atcoder.WithMetadataSink(recorder)}
	if rawClientOverride != nil {
		opts = append(opts, atcoder.WithRawClient(rawClientOverride))
	}
	facade, err := atcoder.New(sess, cfg, opts...)
	if err != nil {
		return err
	}

	runErr := body(app{
		ctx:     cmd.Context(),
		atcoder: facade,
		sink:    recorder,
		out:     cmd.OutOrStdout(),
	})
	closeErr := facade.Close()
	var saveErr error
	if err := store.Save(sess); err != nil {
		saveErr = err
	}
	return errors.Join(runErr, closeErr, saveErr)
}

// newLogger writes text records to w. Only errors are shown unless
// --verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func SetRawClientForTest(c client.Client) {
	rawClientOverride = c
}

func SetFormatForTest(format string) {
	outputFormat = format
}

func SetVerboseForTest(v bool) {
	verbose = v
}

// RunForTest executes the root command with args and returns what it
// printed to stdout.
func RunForTest(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	return out.String(), err
}
