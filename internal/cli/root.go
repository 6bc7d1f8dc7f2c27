// Package cli implements the memo command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/memo/internal/app"
	"github.com/rcliao/memo/internal/apperr"
	"github.com/rcliao/memo/internal/config"
	"github.com/rcliao/memo/internal/logging"
	"github.com/rcliao/memo/internal/prompt"
	"github.com/rcliao/memo/internal/store"
)

// terminal is the interactive side of the process: prompts, plus memo input
// when stdin is a terminal.
type terminal interface {
	app.Prompter
	app.Input
	Close() error
}

var newTerminal = func(in io.Reader, out io.Writer, interactive bool) terminal {
	if !interactive {
		return prompt.NewReaderTerminal(in, out)
	}
	if in == os.Stdin {
		// let the line editor own the tty
		in = nil
	}
	return prompt.NewTerminal(in, out)
}

type flags struct {
	list, read, del bool
	dbPath          string
	configPath      string
	verbose         bool
}

type streams struct {
	in       io.Reader
	out, err io.Writer
}

// Execute runs memo with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s := streams{in: stdin, out: stdout, err: stderr}
	cmd := newRootCmd(s)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return exitCode(cmd.ExecuteContext(ctx), stdout, stderr)
}

func newRootCmd(s streams) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "memo",
		Short: "Keep short notes in a local database",
		Long: `Keep short notes in a local SQLite database.

With no flags, memo reads a new note from stdin until end of input.
The first line of a note is its title.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args, s)
		},
	}

	cmd.Flags().BoolVarP(&f.list, "list", "l", false, "List memo titles, newest first")
	cmd.Flags().BoolVarP(&f.read, "read", "r", false, "Choose a memo and show it")
	cmd.Flags().BoolVarP(&f.del, "delete", "d", false, "Choose a memo and delete it")
	cmd.Flags().StringVar(&f.dbPath, "db", "", "Database path (default: $MEMO_DB or ~/.memo/memos.db)")
	cmd.Flags().StringVar(&f.configPath, "config", "", "Config file (default: $MEMO_CONFIG or ~/.memo/config.yaml)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperr.UnknownCommand(err.Error())
	})

	return cmd
}

func run(ctx context.Context, f flags, args []string, s streams) error {
	command := app.ParseCommand(f.list, f.read, f.del, args)
	if command == app.CommandUnknown {
		return apperr.UnknownCommand(describe(f, args))
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	if f.dbPath != "" {
		cfg.DBPath = f.dbPath
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	logger = logger.With(zap.String("run", logging.NewRunID()))
	defer logger.Sync()

	client, err := store.Open(cfg.DBPath)
	if err != nil {
		return apperr.Storage("open store", err)
	}
	defer client.Close()
	logger.Debug("store opened", zap.String("path", cfg.DBPath), zap.Stringer("command", command))

	interactive := isTerminal(s.in)
	term := newTerminal(s.in, s.out, interactive)
	defer term.Close()

	controller := app.New(store.NewMemoRepository(client, logger), term, app.Options{
		Input:       term,
		Out:         s.out,
		Interactive: interactive,
		Logger:      logger,
	})
	return controller.Run(ctx, command)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func describe(f flags, args []string) string {
	var parts []string
	if f.list {
		parts = append(parts, "-l")
	}
	if f.read {
		parts = append(parts, "-r")
	}
	if f.del {
		parts = append(parts, "-d")
	}
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

// Exit codes.
const (
	ExitOK             = 0
	ExitFailure        = 1
	ExitUnknownCommand = 2
	ExitInvalid        = 65
)

func exitCode(err error, stdout, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	switch apperr.KindOf(err) {
	case apperr.KindUnknownCommand:
		fmt.Fprintf(stderr, "Unknown command: %v\n", err)
		fmt.Fprintln(stderr, "Usage: memo [-l | -r | -d]")
		return ExitUnknownCommand
	case apperr.KindValidation:
		fmt.Fprintf(stderr, "error: invalid memo: %v\n", err)
		return ExitInvalid
	case apperr.KindCancelled:
		fmt.Fprintln(stdout, "\nOperation was canceled.")
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(stdout, "\nOperation was canceled.")
		return ExitOK
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	return ExitFailure
}
