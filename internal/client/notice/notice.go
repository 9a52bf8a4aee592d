// Package notice delivers one-shot user notices (success, error, info).
package notice

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/carrental/internal/logging"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notice struct {
	Level   Level
	Message string
}

func Success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }
func Error(msg string) Notice   { return Notice{Level: LevelError, Message: msg} }
func Info(msg string) Notice    { return Notice{Level: LevelInfo, Message: msg} }

// Notifier shows a notice to the user. Implementations must be safe for
// concurrent use; the session loop and catalog refresh both notify.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// TerminalNotifier prints notices as single styled lines.
type TerminalNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger logging.Logger
	styles map[Level]lipgloss.Style
}

func NewTerminalNotifier(out io.Writer, logger logging.Logger) *TerminalNotifier {
	r := lipgloss.NewRenderer(out)
	return &TerminalNotifier{
		out:    out,
		logger: logger.With("component", "notice"),
		styles: map[Level]lipgloss.Style{
			LevelInfo:    r.NewStyle().Foreground(lipgloss.Color("12")),
			LevelSuccess: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
			LevelError:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

func prefix(l Level) string {
	switch l {
	case LevelSuccess:
		return "✔ "
	case LevelError:
		return "✖ "
	default:
		return "• "
	}
}

func (t *TerminalNotifier) Notify(ctx context.Context, n Notice) {
	t.logger.Info(ctx, "notice", "level", n.Level.String(), "message", n.Message)

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, t.styles[n.Level].Render(prefix(n.Level)+n.Message))
}
