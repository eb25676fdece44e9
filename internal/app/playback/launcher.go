package playback

import "github.com/osa030/radio/internal/infra/player"

// Handle is a running player process.
type Handle interface {
	// Done is closed when the process exits.
	Done() <-chan struct{}
	// Alive reports whether the process is still running.
	Alive() bool
	// Stop terminates the process and waits for it to exit. No-op once exited.
	Stop() error
	// Wait blocks until the process exits.
	Wait() error
}

// Launcher starts player processes.
type Launcher interface {
	Start(url string) (Handle, error)
}

type playerLauncher struct {
	launcher *player.Launcher
}

// NewPlayerLauncher adapts a player.Launcher to the Launcher interface.
func NewPlayerLauncher(l *player.Launcher) Launcher {
	return &playerLauncher{launcher: l}
}

func (p *playerLauncher) Start(url string) (Handle, error) {
	proc, err := p.launcher.Start(url)
	if err != nil {
		return nil, err
	}
	return proc, nil
}
