package player

import (
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
)

// DefaultStopGrace is how long Stop waits after SIGTERM before killing the process.
const DefaultStopGrace = 2 * time.Second

var (
	// ErrPlayerNotFound is returned when no candidate executable is installed.
	ErrPlayerNotFound = errors.New("no audio player found")
	// ErrNoAudioURL is returned when asked to play an empty URL.
	ErrNoAudioURL = errors.New("no audio URL found")
)

// installHint is shown to users when no player is installed.
const installHint = "Install mpv:\n  brew install mpv  (macOS)\n  sudo apt install mpv  (Ubuntu)"

// Launcher starts player processes using the first installed candidate.
type Launcher struct {
	candidates []Candidate
	stopGrace  time.Duration
	lookPath   func(file string) (string, error)
}

// NewLauncher creates a new launcher.
// A non-positive stopGrace uses DefaultStopGrace.
func NewLauncher(candidates []Candidate, stopGrace time.Duration) *Launcher {
	if len(candidates) == 0 {
		candidates = DefaultCandidates()
	}
	if stopGrace <= 0 {
		stopGrace = DefaultStopGrace
	}
	return &Launcher{
		candidates: candidates,
		stopGrace:  stopGrace,
		lookPath:   exec.LookPath,
	}
}

// Locate returns the first installed candidate and its resolved path.
func (l *Launcher) Locate() (Candidate, string, error) {
	for _, c := range l.candidates {
		path, err := l.lookPath(c.Executable)
		if err == nil {
			return c, path, nil
		}
		zlog.Debug().Msgf("player candidate unavailable: executable=%s error=%v", c.Executable, err)
	}
	return Candidate{}, "", errors.WithHint(ErrPlayerNotFound, installHint)
}

// Start launches a player for url. The child's standard streams are detached
// from the terminal.
func (l *Launcher) Start(url string) (*Process, error) {
	if url == "" {
		return nil, ErrNoAudioURL
	}

	c, path, err := l.Locate()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path, c.Args(url)...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start %s", c.Kind)
	}

	p := &Process{
		cmd:       cmd,
		kind:      c.Kind,
		done:      make(chan struct{}),
		stopGrace: l.stopGrace,
	}
	go p.watch()

	zlog.Debug().Msgf("player started: kind=%s pid=%d", c.Kind, cmd.Process.Pid)
	return p, nil
}

// Process is a running player child process.
type Process struct {
	cmd       *exec.Cmd
	kind      Kind
	stopGrace time.Duration

	done    chan struct{}
	waitErr error

	stopMu sync.Mutex
}

func (p *Process) watch() {
	p.waitErr = p.cmd.Wait()
	close(p.done)
}

// PID returns the operating-system process ID.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Kind returns the player kind running in this process.
func (p *Process) Kind() Kind {
	return p.kind
}

// Done returns a channel closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Alive reports whether the process is still running.
func (p *Process) Alive() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the process exits and returns its exit error.
func (p *Process) Wait() error {
	<-p.done
	return p.waitErr
}

// Stop terminates the process and waits for it to exit.
// It sends SIGTERM first and kills the process if it outlives the grace period.
// Stopping an exited process is a no-op.
func (p *Process) Stop() error {
	p.stopMu.Lock()
	defer p.stopMu.Unlock()

	if !p.Alive() {
		return nil
	}

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			// Exited after the Alive check; the watcher is closing done.
			<-p.done
			return nil
		}
		zlog.Debug().Msgf("SIGTERM failed, killing player: pid=%d error=%v", p.PID(), err)
		if err := p.kill(); err != nil {
			return err
		}
	}

	timer := time.NewTimer(p.stopGrace)
	defer timer.Stop()

	select {
	case <-p.done:
	case <-timer.C:
		zlog.Warn().Msgf("player ignored SIGTERM, killing: pid=%d", p.PID())
		if err := p.kill(); err != nil {
			return err
		}
		<-p.done
	}

	zlog.Debug().Msgf("player stopped: kind=%s pid=%d", p.kind, p.PID())
	return nil
}

// kill sends SIGKILL. A process that has already exited counts as killed.
func (p *Process) kill() error {
	err := p.cmd.Process.Kill()
	if err == nil || errors.Is(err, os.ErrProcessDone) || !p.Alive() {
		return nil
	}
	return errors.Wrap(err, "failed to kill player")
}
