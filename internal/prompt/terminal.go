// Package prompt implements the interactive choice and confirm prompts.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rcliao/memo/internal/apperr"
)

// LineReader reads one line after showing prompt. It returns io.EOF at end of
// input and readline.ErrInterrupt on Ctrl-C.
type LineReader func(ctx context.Context, prompt string) (string, error)

// Terminal asks questions on a line editor.
type Terminal struct {
	out      io.Writer
	readLine LineReader
	// readAll, when set, returns the rest of the input verbatim.
	readAll func(ctx context.Context) (string, error)
	close   func() error
}

// NewTerminal returns a Terminal reading from in and writing to out. A nil in
// reads the process stdin. One line editor is shared by every question so no
// input is lost between them; call Close when done.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	e := &editor{in: in, out: out}
	return &Terminal{out: out, readLine: e.readLine, close: e.Close}
}

// NewReaderTerminal returns a Terminal for input that is not a terminal, such
// as a pipe. Prompts are written to out since nothing echoes them, and
// answers and memo text are read from one buffer over in.
func NewReaderTerminal(in io.Reader, out io.Writer) *Terminal {
	r := &lineBuffer{r: bufio.NewReader(in), out: out}
	return &Terminal{out: out, readLine: r.readLine, readAll: r.readAll}
}

func newTerminalWithReader(out io.Writer, read LineReader) *Terminal {
	return &Terminal{out: out, readLine: read}
}

// Close releases the line editor.
func (t *Terminal) Close() error {
	if t.close == nil {
		return nil
	}
	return t.close()
}

// Select shows message and a numbered list of options and returns the index
// of the chosen one. It asks again until the answer is a valid number.
func (t *Terminal) Select(ctx context.Context, message string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("select: no options")
	}

	fmt.Fprintln(t.out, message)
	for i, opt := range options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}

	for {
		line, err := t.readLine(ctx, fmt.Sprintf("Enter a number [1-%d]: ", len(options)))
		if err != nil {
			return 0, classify(err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintf(t.out, "Please enter a number between 1 and %d.\n", len(options))
	}
}

// Confirm asks a yes/no question. An empty answer returns def.
func (t *Terminal) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	for {
		line, err := t.readLine(ctx, fmt.Sprintf("%s (%s) ", message, hint))
		if err != nil {
			return false, classify(err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Please answer y or n.")
	}
}

// ReadText reads lines until end of input (Ctrl-D) and returns them joined.
func (t *Terminal) ReadText(ctx context.Context) (string, error) {
	if t.readAll != nil {
		return t.readAll(ctx)
	}
	var b strings.Builder
	for {
		line, err := t.readLine(ctx, "")
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", classify(err)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// classify maps line editor errors to cancellations.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case apperr.Is(err, apperr.KindCancelled):
		return err
	case errors.Is(err, readline.ErrInterrupt), errors.Is(err, io.EOF):
		return apperr.Cancelled("prompt", err)
	}
	return fmt.Errorf("prompt: %w", err)
}

// editor owns a lazily opened readline instance.
type editor struct {
	in  io.Reader
	out io.Writer
	rl  *readline.Instance
}

func (e *editor) open() error {
	if e.rl != nil {
		return nil
	}
	cfg := &readline.Config{
		Stdout:          e.out,
		InterruptPrompt: "^C",
	}
	if e.in != nil {
		cfg.Stdin = io.NopCloser(e.in)
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("open prompt: %w", err)
	}
	e.rl = rl
	return nil
}

func (e *editor) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperr.Cancelled("prompt", err)
	}
	if err := e.open(); err != nil {
		return "", err
	}
	e.rl.SetPrompt(prompt)

	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	rl := e.rl
	go func() {
		line, err := rl.Readline()
		done <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		// Close waits for the pending read to unwind; do not block on it.
		e.rl = nil
		go rl.Close()
		return "", apperr.Cancelled("prompt", ctx.Err())
	case r := <-done:
		return r.line, r.err
	}
}

func (e *editor) Close() error {
	if e.rl == nil {
		return nil
	}
	err := e.rl.Close()
	e.rl = nil
	return err
}

// lineBuffer reads answers and memo text from a non-interactive reader.
type lineBuffer struct {
	r   *bufio.Reader
	out io.Writer
}

func (b *lineBuffer) readLine(ctx context.Context, prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(b.out, prompt)
		defer fmt.Fprintln(b.out)
	}
	return await(ctx, "prompt", func() (string, error) {
		line, err := b.r.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			err = nil
		}
		return strings.TrimRight(line, "\r\n"), err
	})
}

func (b *lineBuffer) readAll(ctx context.Context) (string, error) {
	text, err := await(ctx, "read input", func() (string, error) {
		data, err := io.ReadAll(b.r)
		return string(data), err
	})
	if err != nil && !apperr.Is(err, apperr.KindCancelled) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return text, err
}

// await runs read in the background until it returns or ctx is done. On
// cancellation the read is abandoned; the process is about to exit anyway.
func await(ctx context.Context, op string, read func() (string, error)) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperr.Cancelled(op, err)
	}
	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := read()
		done <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", apperr.Cancelled(op, ctx.Err())
	case r := <-done:
		return r.text, r.err
	}
}
