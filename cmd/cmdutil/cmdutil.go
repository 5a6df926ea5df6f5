// Package cmdutil holds what every clinic command shares: config loading,
// the runtime lifecycle, prompts and error reporting.
package cmdutil

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/internal/app"
	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/present"
	"github.com/Alijeyrad/clinic_console/internal/session"
	"github.com/Alijeyrad/clinic_console/pkg/logs"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

// ErrReported marks an error the user has already been told about, so it
// only sets the exit status.
var ErrReported = errors.New("reported")

type reportedError struct{ err error }

func (e *reportedError) Error() string   { return e.err.Error() }
func (e *reportedError) Unwrap() []error { return []error{e.err, ErrReported} }

// Reported wraps err as ErrReported.
func Reported(err error) error { return &reportedError{err: err} }

func IsReported(err error) bool { return errors.Is(err, ErrReported) }

// LoadConfig reads the file named by the root --config flag and installs
// the configured logger as the default.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logs.New(cfg))
	return cfg, nil
}

// Env is handed to a command body once the runtime is up.
type Env struct {
	*app.Runtime
	Printer *present.Printer
	in      *bufio.Reader
	prompt  io.Writer
}

// Run loads config, starts the runtime and calls fn with it. Session
// transitions during fn print a navigation hint.
func Run(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	output, err := cmd.Root().PersistentFlags().GetString("output")
	if err != nil {
		return err
	}
	format, err := present.ParseFormat(output)
	if err != nil {
		return err
	}

	ctx := reqctx.WithRequestMeta(cmd.Context(), reqctx.NewRequestMeta(cmd.CommandPath()))

	return app.Run(ctx, cfg, func(ctx context.Context, rt *app.Runtime) error {
		unsubscribe := rt.Session.Subscribe(func(e session.Event) {
			if hint := present.SessionHint(e); hint != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), hint)
			}
		})
		defer unsubscribe()

		env := &Env{
			Runtime: rt,
			Printer: present.NewPrinter(cmd.OutOrStdout(), format),
			in:      bufio.NewReader(cmd.InOrStdin()),
			prompt:  cmd.ErrOrStderr(),
		}
		return fn(ctx, env)
	})
}

// RunAuthed is Run for commands that need a session.
func RunAuthed(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	return Run(cmd, func(ctx context.Context, env *Env) error {
		if _, err := env.Session.RequireToken(); err != nil {
			return fmt.Errorf("%w: run `clinic auth login` first", err)
		}
		return fn(ctx, env)
	})
}

// ReadLine prompts on stderr and reads one line from stdin.
func (e *Env) ReadLine(prompt string) (string, error) {
	fmt.Fprint(e.prompt, prompt)
	line, err := e.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question; anything but y or yes is no.
func (e *Env) Confirm(prompt string) (bool, error) {
	answer, err := e.ReadLine(prompt + " [y/N]: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// SubmitError turns a form error into the command's error. Field errors
// are listed here; server errors were already notified by the form.
func (e *Env) SubmitError(err error) error {
	if verr, ok := forms.AsValidationError(err); ok {
		fmt.Fprintln(e.prompt, "Please fix the following:")
		present.NewPrinter(e.prompt, present.FormatTable).ValidationError(verr)
	}
	return Reported(err)
}

// ParseID reads a positive record id argument.
func ParseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
