package notify

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/mitchellh/go-ps"
)

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

func processList(names ...string) func() ([]ps.Process, error) {
	return func() ([]ps.Process, error) {
		out := make([]ps.Process, len(names))
		for i, n := range names {
			out[i] = fakeProcess{pid: 100 + i, name: n}
		}
		return out, nil
	}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want []string
	}{
		{
			name: "critical with body",
			msg:  Message{Urgency: UrgencyCritical, Title: "Unable to set scheme", Body: "bad"},
			want: []string{"-a", "ferret-cli", "-u", "critical", "Unable to set scheme", "bad"},
		},
		{
			name: "default urgency no body",
			msg:  Message{Title: "hello"},
			want: []string{"-a", "ferret-cli", "-u", "normal", "hello"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildArgs(tt.msg); !slices.Equal(got, tt.want) {
				t.Errorf("buildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindProcessByName(t *testing.T) {
	pids, err := findProcessByName(processList("bash", "mako", "kitty", "mako"), "mako", "dunst")
	if err != nil {
		t.Fatalf("findProcessByName() error = %v", err)
	}
	if !slices.Equal(pids, []int{101, 103}) {
		t.Errorf("pids = %v, want [101 103]", pids)
	}

	failing := func() ([]ps.Process, error) { return nil, errors.New("no /proc") }
	if _, err := findProcessByName(failing, "mako"); err == nil {
		t.Error("expected error from failing process list")
	}
}

func TestNotifyWithoutDaemon(t *testing.T) {
	s := NewSender()
	s.processes = processList("bash", "kitty")

	err := s.Notify(context.Background(), Message{Title: "x"})
	if !errors.Is(err, ErrNoDaemon) {
		t.Errorf("Notify() error = %v, want ErrNoDaemon", err)
	}
}

func TestNotifyCommandFailure(t *testing.T) {
	s := NewSender().WithCommand("/nonexistent/notify-send")
	s.processes = processList("dunst")

	if err := s.Notify(context.Background(), Message{Title: "x"}); err == nil {
		t.Error("Notify() expected error for missing command")
	}
}

func TestDiscard(t *testing.T) {
	var n Notifier = Discard{}
	if err := n.Notify(context.Background(), Message{Title: "x"}); err != nil {
		t.Errorf("Discard.Notify() = %v", err)
	}
}
