// Package link talks to the board console: one command line out, one
// reply line back.
package link

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"picoboard/core"
)

var (
	ErrTimeout   = errors.New("timed out waiting for reply")
	ErrMultiline = errors.New("command must be a single line")
	ErrBadReply  = errors.New("malformed reply")
)

// DeviceError is an "err <code>" reply
type DeviceError struct {
	Code string
}

func (e *DeviceError) Error() string {
	return "device: " + e.Code
}

// ParseReply splits a reply line into its payload or a *DeviceError
func ParseReply(line string) (string, error) {
	line = strings.TrimRight(line, "\r\n")
	switch {
	case line == "ok":
		return "", nil
	case strings.HasPrefix(line, "ok "):
		return line[3:], nil
	case strings.HasPrefix(line, "err "):
		return "", &DeviceError{Code: line[4:]}
	}
	return "", fmt.Errorf("%w: %q", ErrBadReply, line)
}

// Link is a request/reply client over a console port. It is not safe for
// concurrent use.
type Link struct {
	w       io.Writer
	r       *bufio.Reader
	timeout time.Duration
	log     zerolog.Logger
}

// New creates a link over port. timeout bounds the wait for each reply;
// zero waits forever.
func New(port io.ReadWriter, timeout time.Duration, log zerolog.Logger) *Link {
	return &Link{
		w:       port,
		r:       bufio.NewReader(port),
		timeout: timeout,
		log:     log,
	}
}

// Call sends line and returns the reply payload
func (l *Link) Call(line string) (string, error) {
	line = strings.TrimSpace(line)
	if strings.ContainsAny(line, "\r\n") {
		return "", ErrMultiline
	}
	if _, err := core.SplitLine(line); err != nil {
		return "", fmt.Errorf("parse command: %w", err)
	}

	l.log.Debug().Str("cmd", line).Msg("send")
	if _, err := io.WriteString(l.w, line+"\n"); err != nil {
		return "", fmt.Errorf("write command: %w", err)
	}

	for {
		reply, err := l.readLine()
		if err != nil {
			return "", err
		}
		// Board debug output shares the console and is tagged "[SUBSYS]"
		if strings.HasPrefix(reply, "[") {
			l.log.Debug().Str("line", reply).Msg("board log")
			continue
		}
		l.log.Debug().Str("reply", reply).Msg("recv")
		return ParseReply(reply)
	}
}

// readLine reads up to LF. Ports opened with a read timeout report idle
// periods as io.EOF or no progress; with a reply timeout set those are
// retried until the deadline.
func (l *Link) readLine() (string, error) {
	var deadline time.Time
	if l.timeout > 0 {
		deadline = time.Now().Add(l.timeout)
	}

	var sb strings.Builder
	for {
		b, err := l.r.ReadByte()
		if err != nil {
			idle := errors.Is(err, io.EOF) || errors.Is(err, io.ErrNoProgress)
			if !idle || deadline.IsZero() {
				return "", fmt.Errorf("read reply: %w", err)
			}
			if time.Now().After(deadline) {
				return "", ErrTimeout
			}
			time.Sleep(time.Millisecond)
			continue
		}
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
		default:
			sb.WriteByte(b)
		}
	}
}
