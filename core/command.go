package core

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/shlex"
)

// CommandHandler handles one console command. args excludes the command
// name. The returned string is the reply payload.
type CommandHandler func(args []string) (string, error)

// Command represents a console command
type Command struct {
	Name    string // One or two words, e.g. "trace" or "nvm get"
	Usage   string // Argument synopsis for help, e.g. "<type> <key>"
	Handler CommandHandler
}

var (
	ErrEmptyCommand   = errors.New("empty_command")
	ErrUnknownCommand = errors.New("unknown_command")
)

// CommandRegistry holds all registered console commands
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]*Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command to the registry.
// Registering a name twice keeps the first handler.
func (r *CommandRegistry) Register(name, usage string, handler CommandHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return
	}
	r.commands[name] = &Command{
		Name:    name,
		Usage:   usage,
		Handler: handler,
	}
}

// GetCommand retrieves a command by name
func (r *CommandRegistry) GetCommand(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Dispatch tokenizes line and calls the matching handler. A two-word
// command ("nvm get") takes precedence over a one-word one ("nvm").
func (r *CommandRegistry) Dispatch(line string) (string, error) {
	tokens, err := SplitLine(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", ErrEmptyCommand
	}

	if len(tokens) >= 2 {
		if cmd, ok := r.GetCommand(tokens[0] + " " + tokens[1]); ok {
			return cmd.Handler(tokens[2:])
		}
	}
	if cmd, ok := r.GetCommand(tokens[0]); ok {
		return cmd.Handler(tokens[1:])
	}
	return "", ErrUnknownCommand
}

// Help returns one "name usage" line per command, sorted by name
func (r *CommandRegistry) Help() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines := make([]string, 0, len(r.commands))
	for _, cmd := range r.commands {
		if cmd.Usage != "" {
			lines = append(lines, cmd.Name+" "+cmd.Usage)
		} else {
			lines = append(lines, cmd.Name)
		}
	}
	sort.Strings(lines)
	return lines
}

// SplitLine tokenizes a console line the same way Dispatch does
func SplitLine(line string) ([]string, error) {
	return shlex.Split(strings.TrimSpace(line))
}
