package player

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/radio/internal/infra/config"
)

// helperEnv switches the test binary into a fake player when set.
const helperEnv = "RADIO_TEST_HELPER_PLAYER"

// helperArgsEnv names a file the fake player writes its arguments to.
const helperArgsEnv = "RADIO_TEST_HELPER_ARGS"

func TestMain(m *testing.M) {
	if mode := os.Getenv(helperEnv); mode != "" {
		runHelperPlayer(mode)
		return
	}
	os.Exit(m.Run())
}

func runHelperPlayer(mode string) {
	if path := os.Getenv(helperArgsEnv); path != "" {
		_ = os.WriteFile(path, []byte(strings.Join(os.Args[1:], "\n")), 0o644)
	}
	switch mode {
	case "exit":
		os.Exit(0)
	case "play":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	}
	os.Exit(2)
}

func helperLauncher(t *testing.T, mode string) *Launcher {
	t.Helper()
	t.Setenv(helperEnv, mode)

	l := NewLauncher([]Candidate{{Kind: KindMPV, Executable: os.Args[0]}}, 500*time.Millisecond)
	return l
}

func TestCandidate_Args(t *testing.T) {
	url := "https://asset.radiooooo.com/a.mp3"

	mpv := Candidate{Kind: KindMPV, Executable: "mpv"}
	assert.Equal(t, []string{"--no-video", "--really-quiet", url}, mpv.Args(url))

	ffplay := Candidate{Kind: KindFFPlay, Executable: "ffplay"}
	assert.Equal(t, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", url}, ffplay.Args(url))

	withExtra := Candidate{Kind: KindMPV, Executable: "mpv", ExtraArgs: []string{"--volume=60"}}
	assert.Equal(t, []string{"--no-video", "--really-quiet", "--volume=60", url}, withExtra.Args(url))
}

func TestNewCandidate(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		settings map[string]any
		want     Candidate
		wantErr  bool
	}{
		{
			name: "defaults to executable named after kind",
			kind: "ffplay",
			want: Candidate{Kind: KindFFPlay, Executable: "ffplay"},
		},
		{
			name:     "explicit path and extra args",
			kind:     "mpv",
			settings: map[string]any{"path": "/opt/mpv/bin/mpv", "extra_args": []any{"--volume=50"}},
			want:     Candidate{Kind: KindMPV, Executable: "/opt/mpv/bin/mpv", ExtraArgs: []string{"--volume=50"}},
		},
		{
			name:    "unsupported kind",
			kind:    "vlc",
			wantErr: true,
		},
		{
			name:     "empty extra arg",
			kind:     "mpv",
			settings: map[string]any{"extra_args": []any{""}},
			wantErr:  true,
		},
		{
			name:     "wrong settings type",
			kind:     "mpv",
			settings: map[string]any{"extra_args": 42},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCandidate(tt.kind, tt.settings)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCandidatesFromConfig(t *testing.T) {
	candidates, err := NewCandidatesFromConfig(&config.Config{})
	require.NoError(t, err)
	assert.Equal(t, DefaultCandidates(), candidates)

	candidates, err = NewCandidatesFromConfig(&config.Config{
		Players: []config.PlayerConfig{
			{Type: "ffplay"},
			{Type: "mpv", Settings: map[string]any{"path": "/usr/local/bin/mpv"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, KindFFPlay, candidates[0].Kind)
	assert.Equal(t, "/usr/local/bin/mpv", candidates[1].Executable)

	_, err = NewCandidatesFromConfig(&config.Config{
		Players: []config.PlayerConfig{{Type: "winamp"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 0")
}

func TestLauncher_LocatePriority(t *testing.T) {
	l := NewLauncher(nil, 0)
	l.lookPath = func(file string) (string, error) {
		if file == "ffplay" {
			return "/usr/bin/ffplay", nil
		}
		return "", exec.ErrNotFound
	}

	c, path, err := l.Locate()
	require.NoError(t, err)
	assert.Equal(t, KindFFPlay, c.Kind)
	assert.Equal(t, "/usr/bin/ffplay", path)

	l.lookPath = func(file string) (string, error) {
		return "/usr/bin/" + file, nil
	}
	c, _, err = l.Locate()
	require.NoError(t, err)
	assert.Equal(t, KindMPV, c.Kind, "mpv is preferred when both are installed")
}

func TestLauncher_StartNoPlayer(t *testing.T) {
	l := NewLauncher(nil, 0)
	l.lookPath = func(file string) (string, error) {
		return "", exec.ErrNotFound
	}

	p, err := l.Start("https://asset.radiooooo.com/a.mp3")
	assert.Nil(t, p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlayerNotFound))
	assert.Contains(t, errors.FlattenHints(err), "brew install mpv")
}

func TestLauncher_StartNoURL(t *testing.T) {
	l := NewLauncher(nil, 0)

	p, err := l.Start("")
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, ErrNoAudioURL))
}

func TestProcess_ExitsNaturally(t *testing.T) {
	argsFile := filepath.Join(t.TempDir(), "args")
	t.Setenv(helperArgsEnv, argsFile)
	l := helperLauncher(t, "exit")

	p, err := l.Start("https://asset.radiooooo.com/a.mp3")
	require.NoError(t, err)

	select {
	case <-p.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("helper player did not exit")
	}
	assert.False(t, p.Alive())
	assert.NoError(t, p.Wait())

	// Stopping an exited process is a no-op.
	assert.NoError(t, p.Stop())

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "--no-video\n--really-quiet\nhttps://asset.radiooooo.com/a.mp3", string(data))
}

func TestProcess_Stop(t *testing.T) {
	l := helperLauncher(t, "play")

	p, err := l.Start("https://asset.radiooooo.com/a.mp3")
	require.NoError(t, err)
	assert.True(t, p.Alive())
	assert.Equal(t, KindMPV, p.Kind())
	assert.Greater(t, p.PID(), 0)

	start := time.Now()
	require.NoError(t, p.Stop())
	assert.False(t, p.Alive())
	assert.Less(t, time.Since(start), 5*time.Second)

	// Idempotent.
	assert.NoError(t, p.Stop())
}

func TestProcess_StopAfterExitBeforeWatcher(t *testing.T) {
	t.Setenv(helperEnv, "exit")

	cmd := exec.Command(os.Args[0])
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())

	// The process is reaped but done is not closed yet, as between the
	// watcher's Wait and close.
	p := &Process{cmd: cmd, kind: KindMPV, stopGrace: time.Second, done: make(chan struct{})}
	go func() {
		time.Sleep(50 * time.Millisecond)
		close(p.done)
	}()

	assert.True(t, p.Alive())
	assert.NoError(t, p.Stop())
	assert.False(t, p.Alive())
}
