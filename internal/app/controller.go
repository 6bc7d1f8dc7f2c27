// Package app implements the memo commands: add, list, read and delete.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/rcliao/memo/internal/apperr"
	"github.com/rcliao/memo/internal/model"
	"github.com/rcliao/memo/internal/store"
)

// Prompter resolves interactive choices. Both methods return an
// apperr.KindCancelled error when the user aborts.
type Prompter interface {
	Select(ctx context.Context, message string, options []string) (int, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

// Options configures a Controller.
type Options struct {
	Input Input
	Out   io.Writer
	// Interactive reports whether input comes from a terminal; it only
	// controls the add banner.
	Interactive bool
	Logger      *zap.Logger
	// Now is used for relative times in read output. Defaults to time.Now.
	Now func() time.Time
}

// Controller runs one command against a store.
type Controller struct {
	repo        store.Store
	prompt      Prompter
	input       Input
	out         io.Writer
	interactive bool
	logger      *zap.Logger
	now         func() time.Time
}

// New returns a Controller.
func New(repo store.Store, prompt Prompter, opts Options) *Controller {
	c := &Controller{
		repo:        repo,
		prompt:      prompt,
		input:       opts.Input,
		out:         opts.Out,
		interactive: opts.Interactive,
		logger:      opts.Logger,
		now:         opts.Now,
	}
	if c.out == nil {
		c.out = io.Discard
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// Run executes cmd. A user cancellation is reported on the output and ends
// the command with a nil error. Validation and storage failures are returned
// to the caller; nothing is retried.
func (c *Controller) Run(ctx context.Context, cmd Command) error {
	if cmd == CommandUnknown {
		return apperr.UnknownCommand("unrecognized command")
	}

	logger := c.logger.With(zap.Stringer("command", cmd))
	err := c.run(ctx, cmd)
	if apperr.Is(err, apperr.KindCancelled) {
		logger.Debug("command canceled", zap.Error(err))
		fmt.Fprintln(c.out, "\nOperation was canceled.")
		return nil
	}
	if err != nil {
		fields := []zap.Field{zap.Stringer("kind", apperr.KindOf(err)), zap.Error(err)}
		if field := apperr.FieldOf(err); field != "" {
			fields = append(fields, zap.String("field", field))
		}
		logger.Debug("command failed", fields...)
		return err
	}

	if ce := logger.Check(zap.DebugLevel, "command finished"); ce != nil {
		n, err := c.repo.Count(ctx)
		if err != nil {
			ce.Write(zap.Error(err))
		} else {
			ce.Write(zap.Int("memos", n))
		}
	}
	return nil
}

func (c *Controller) run(ctx context.Context, cmd Command) error {
	if err := c.repo.EnsureSchema(ctx); err != nil {
		return err
	}

	switch cmd {
	case CommandAdd:
		return c.add(ctx)
	case CommandList:
		return c.list(ctx)
	case CommandRead:
		return c.read(ctx)
	case CommandDelete:
		return c.delete(ctx)
	}
	return apperr.UnknownCommand(cmd.String())
}

func (c *Controller) add(ctx context.Context) error {
	if c.input == nil {
		return fmt.Errorf("add: no input configured")
	}
	if c.interactive {
		fmt.Fprintln(c.out, "Enter your memo (end with Ctrl+D):")
	}

	text, err := c.input.ReadText(ctx)
	if err != nil {
		return err
	}
	content := strings.TrimSpace(text)
	if content == "" {
		fmt.Fprintln(c.out, "Nothing to add.")
		return nil
	}

	memo, err := model.New(content)
	if err != nil {
		return err
	}
	id, err := c.repo.Add(ctx, memo)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Memo added (#%d).\n", id)
	return nil
}

func (c *Controller) list(ctx context.Context) error {
	memos, err := c.repo.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(memos) == 0 {
		fmt.Fprintln(c.out, "No memos found.")
		return nil
	}
	for _, m := range memos {
		fmt.Fprintln(c.out, m.FirstLine())
	}
	return nil
}

func (c *Controller) read(ctx context.Context) error {
	memo, ok, err := c.choose(ctx, "Choose a memo you want to see:")
	if err != nil || !ok {
		return err
	}

	created := memo.CreatedAt()
	fmt.Fprintf(c.out, "Title: %s\n", memo.FirstLine())
	fmt.Fprintf(c.out, "Created: %s (%s)\n", created.Local().Format("2006-01-02 15:04"), humanize.RelTime(created, c.now(), "ago", "from now"))
	fmt.Fprintf(c.out, "Content:\n%s\n", memo.Content())
	return nil
}

func (c *Controller) delete(ctx context.Context) error {
	memo, ok, err := c.choose(ctx, "Choose a memo you want to delete:")
	if err != nil || !ok {
		return err
	}

	if err := c.repo.Delete(ctx, memo); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Memo deleted: %s\n", memo.FirstLine())
	return nil
}

// choose fetches every memo and lets the user pick one. With no memos it
// offers to add one instead and reports ok=false.
func (c *Controller) choose(ctx context.Context, message string) (model.Memo, bool, error) {
	memos, err := c.repo.GetAll(ctx)
	if err != nil {
		return model.Memo{}, false, err
	}
	if len(memos) == 0 {
		return model.Memo{}, false, c.offerAdd(ctx)
	}

	titles := make([]string, len(memos))
	for i, m := range memos {
		titles[i] = m.FirstLine()
	}
	idx, err := c.prompt.Select(ctx, message, titles)
	if err != nil {
		return model.Memo{}, false, err
	}
	if idx < 0 || idx >= len(memos) {
		return model.Memo{}, false, fmt.Errorf("select memo: choice %d out of range", idx)
	}
	return memos[idx], true, nil
}

func (c *Controller) offerAdd(ctx context.Context) error {
	fmt.Fprintln(c.out, "No memos found.")
	yes, err := c.prompt.Confirm(ctx, "Would you like to add a new memo?", false)
	if err != nil {
		return err
	}
	if !yes {
		fmt.Fprintln(c.out, "No memos were added.")
		return nil
	}
	return c.add(ctx)
}
