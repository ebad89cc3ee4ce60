package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	domainErrors "github.com/datasembly/ghch/internal/errors"
	"github.com/fatih/color"
)

var (
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Bold    = color.New(color.Bold)
)

// SmartSpinner wraps a terminal spinner that reports its outcome on stop.
type SmartSpinner struct {
	spinner *spinner.Spinner
	w       io.Writer
}

// NewSmartSpinner creates a spinner writing to w. Nothing is animated when w
// is not a terminal.
func NewSmartSpinner(w io.Writer, message string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithWriter(w),
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+message),
	)
	return &SmartSpinner{spinner: s, w: w}
}

func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

func (s *SmartSpinner) Error(msg string) {
	s.Stop()
	PrintError(s.w, msg)
}

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Success.Sprint("✔"), Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Error.Sprint("✘"), Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", Warning.Sprint("!"), Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s\n", msg)
}

// ErrorReason returns the user-facing part of err: the message of the
// AppError it wraps, or the plain error text.
func ErrorReason(err error) string {
	var appErr *domainErrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// PrintSuggestion prints the hint attached to an AppError, if any.
func PrintSuggestion(w io.Writer, err error) {
	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) || appErr.Suggestion == "" {
		return
	}

	lines := strings.Split(appErr.Suggestion, "\n")
	_, _ = fmt.Fprintf(w, "   %s %s\n", Info.Sprint("Try:"), lines[0])
	for _, line := range lines[1:] {
		_, _ = fmt.Fprintf(w, "        %s\n", line)
	}
}

// HandleAppError prints err on a single line, followed by the suggestion
// attached to an AppError when there is one.
func HandleAppError(w io.Writer, err error) {
	if err == nil {
		return
	}

	var appErr *domainErrors.AppError
	if !errors.As(err, &appErr) {
		PrintError(w, err.Error())
		return
	}

	PrintError(w, fmt.Sprintf("%s: %s", appErr.Type, appErr.Message))
	PrintSuggestion(w, err)
}
