package playback

import (
	"bufio"
	"io"
	"strings"

	zlog "github.com/rs/zerolog/log"
)

// quitCommands are the input lines that end an interactive session.
// Every other line, including an empty one, skips to the next track.
var quitCommands = map[string]bool{
	"q":    true,
	"quit": true,
	"exit": true,
}

// IsQuit reports whether an input line is a quit command.
func IsQuit(line string) bool {
	return quitCommands[strings.ToLower(strings.TrimSpace(line))]
}

// ReadLines forwards lines read from r to the returned channel.
// The channel is closed when r reaches EOF or fails.
func ReadLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			zlog.Debug().Msgf("input reader stopped: %v", err)
		}
	}()
	return lines
}
