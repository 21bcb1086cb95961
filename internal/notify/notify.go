// Package notify delivers desktop notifications through notify-send.
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

// AppName identifies ferret to the notification daemon.
const AppName = "ferret-cli"

// ErrNoDaemon is returned when no known notification daemon is running.
var ErrNoDaemon = errors.New("no notification daemon running")

// Urgency is the freedesktop notification urgency level.
type Urgency string

// Urgency levels understood by notify-send.
const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// Message is a single notification.
type Message struct {
	Urgency Urgency
	Title   string
	Body    string
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Discard is a Notifier that drops every message.
type Discard struct{}

// Notify implements Notifier.
func (Discard) Notify(context.Context, Message) error { return nil }

// knownDaemons are notification servers looked for before shelling out.
var knownDaemons = []string{
	"dunst",
	"mako",
	"swaync",
	"fnott",
	"xfce4-notifyd",
	"notification-daemon",
	"notify-osd",
	"gnome-shell",
	"plasmashell",
}

// Sender sends notifications with notify-send.
type Sender struct {
	command   string
	timeout   time.Duration
	processes func() ([]ps.Process, error)
	logger    hclog.Logger
}

// NewSender creates a Sender that runs notify-send from PATH.
func NewSender() *Sender {
	return &Sender{
		command:   "notify-send",
		timeout:   5 * time.Second,
		processes: ps.Processes,
		logger:    hclog.NewNullLogger(),
	}
}

// WithLogger sets the logger.
func (s *Sender) WithLogger(logger hclog.Logger) *Sender {
	if logger != nil {
		s.logger = logger.Named("notify")
	}
	return s
}

// WithCommand overrides the notify-send executable.
func (s *Sender) WithCommand(command string) *Sender {
	s.command = command
	return s
}

// Notify implements Notifier. It fails fast with ErrNoDaemon when no
// notification server is running, rather than letting notify-send block.
func (s *Sender) Notify(ctx context.Context, msg Message) error {
	if !s.daemonRunning() {
		s.logger.Debug("skipping notification, no daemon found", "title", msg.Title)
		return ErrNoDaemon
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.command, buildArgs(msg)...) // #nosec G204 -- fixed command, message passed as arguments
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify-send failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	s.logger.Debug("sent notification", "title", msg.Title, "urgency", msg.Urgency)
	return nil
}

func buildArgs(msg Message) []string {
	urgency := msg.Urgency
	if urgency == "" {
		urgency = UrgencyNormal
	}
	args := []string{"-a", AppName, "-u", string(urgency), msg.Title}
	if msg.Body != "" {
		args = append(args, msg.Body)
	}
	return args
}

// daemonRunning reports whether a known notification daemon is running.
// If the process list cannot be read the daemon is assumed present.
func (s *Sender) daemonRunning() bool {
	pids, err := findProcessByName(s.processes, knownDaemons...)
	if err != nil {
		s.logger.Debug("failed to list processes", "error", err)
		return true
	}
	return len(pids) > 0
}

// findProcessByName finds all PIDs of processes whose executable matches
// one of names.
func findProcessByName(list func() ([]ps.Process, error), names ...string) ([]int, error) {
	processes, err := list()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if slices.Contains(names, p.Executable()) {
			pids = append(pids, p.Pid())
		}
	}

	return pids, nil
}
