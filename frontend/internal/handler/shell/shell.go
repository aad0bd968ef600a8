package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"netstream/frontend/internal/app"
	"netstream/frontend/internal/controller/details"
	"netstream/frontend/internal/view"
	"netstream/frontend/pkg/model"
	"netstream/pkg/logging"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrUnknownCommand is returned for input that matches no command.
var ErrUnknownCommand = errors.New("unknown command, type help for the list of commands")

const helpText = `Commands:
  open <path>          go to /, /movie/<id>, /profile or /recommendations
  home                 go to the home page
  profile              go to the profile page
  recommendations      go to the recommendations page
  back                 return to the previous page
  refresh              reload the current page
  rate                 open or close the rating form
  star <1-5>           select a rating
  submit               submit the selected rating
  cancel               close the rating form
  tab <name>           show hybrid, content or collaborative recommendations
  weight <0..1>        set the hybrid content weight
  scroll <offset>      scroll the page
  help                 show this text
  quit                 exit`

// Handler defines an interactive shell driving the App from line-based input.
type Handler struct {
	app    *app.App
	logger *zap.Logger
}

// New creates a new shell handler.
func New(a *app.App, logger *zap.Logger) *Handler {
	logger = logger.With(
		zap.String(logging.FieldComponent, "handler"),
		zap.String(logging.FieldType, "shell"),
	)
	return &Handler{app: a, logger: logger}
}

// Serve starts the App, then executes one command per input line and
// redraws the screen after each. It returns when in is exhausted, quit is
// entered or ctx is done.
func (h *Handler) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, view.Loading())
	h.app.Start(ctx)
	fmt.Fprintln(out, h.app.Render())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		quit, err := h.Execute(ctx, line, out)
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, view.Alert(view.AlertError, message(err)))
		}
	}
}

// Execute runs a single command line. It reports whether the shell should exit.
func (h *Handler) Execute(ctx context.Context, line string, out io.Writer) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, ErrUnknownCommand
	}
	cmd, args := fields[0], fields[1:]
	h.logger.Debug("Command", zap.String("command", cmd), zap.Strings("args", args))

	var err error
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(out, helpText)
		return false, nil
	case "open":
		if len(args) != 1 {
			return false, errors.New("usage: open <path>")
		}
		_, err = h.app.Navigate(ctx, args[0])
	case "home":
		_, err = h.app.Navigate(ctx, "/")
	case "profile", "recommendations":
		_, err = h.app.Navigate(ctx, "/"+cmd)
	case "back":
		_, err = h.app.Back(ctx)
	case "refresh":
		err = h.app.Refresh(ctx)
	case "rate":
		err = h.app.ToggleRating()
	case "cancel":
		err = h.app.CancelRating()
	case "star":
		var v int
		if v, err = intArg(args, "star <1-5>"); err == nil {
			err = h.app.SelectRating(model.RatingValue(v))
		}
	case "submit":
		err = h.app.SubmitRating(ctx)
	case "tab":
		if len(args) != 1 {
			return false, errors.New("usage: tab <hybrid|content|collaborative>")
		}
		err = h.app.SelectTab(args[0])
	case "weight":
		if len(args) != 1 {
			return false, errors.New("usage: weight <0..1>")
		}
		var w float64
		if w, err = strconv.ParseFloat(args[0], 64); err != nil {
			return false, errors.New("usage: weight <0..1>")
		}
		err = h.app.SetContentWeight(ctx, w)
	case "scroll":
		var offset int
		if offset, err = intArg(args, "scroll <offset>"); err == nil {
			h.app.Scroll(offset)
		}
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if err != nil {
		return false, err
	}
	fmt.Fprintln(out, h.app.Render())
	return false, nil
}

func intArg(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: " + usage)
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.New("usage: " + usage)
	}
	return v, nil
}

func message(err error) string {
	switch {
	case errors.Is(err, details.ErrUnauthenticated):
		return "You must be logged in to rate movies"
	case errors.Is(err, details.ErrSubmitFailed):
		return "Failed to submit rating. Please try again."
	}
	return err.Error()
}
