package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"picoboard/host/config"
	"picoboard/host/link"
	"picoboard/host/serial"
)

var (
	configPath = flag.String("config", "", "YAML settings file")
	device     = flag.String("device", "", "Serial device path (overrides config)")
	baud       = flag.Int("baud", 0, "Console baud (overrides config)")
	command    = flag.String("c", "", "Run one command and exit")
	verbose    = flag.Bool("verbose", false, "Log every line sent and received")
)

func main() {
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *device != "" {
		cfg.Serial.Device = *device
	}
	if *baud != 0 {
		cfg.Serial.Baud = *baud
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Level()
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	port, err := serial.Open(cfg.SerialPort())
	if err != nil {
		log.Fatal().Err(err).Msg("open console")
	}
	defer port.Close()
	if err := port.Flush(); err != nil {
		log.Warn().Err(err).Msg("flush")
	}
	log.Info().Str("device", cfg.Serial.Device).Int("baud", cfg.Serial.Baud).Msg("connected")

	l := link.New(port, cfg.Timeout, log)

	if *command != "" {
		if !run(l, *command) {
			os.Exit(1)
		}
		return
	}
	repl(l, cfg, log)
}

// run sends one command and prints its reply. Returns false on any error.
func run(l *link.Link, line string) bool {
	payload, err := l.Call(line)
	var devErr *link.DeviceError
	switch {
	case errors.As(err, &devErr):
		fmt.Println("error:", devErr.Code)
		return false
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return false
	}
	if payload == "" {
		fmt.Println("ok")
		return true
	}
	// Multi-item replies are "; " separated
	for _, part := range strings.Split(payload, "; ") {
		fmt.Println(part)
	}
	return true
}

func repl(l *link.Link, cfg *config.Config, log zerolog.Logger) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "picoboard> ",
		HistoryFile:     cfg.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("nvm",
				readline.PcItem("get"),
				readline.PcItem("set"),
				readline.PcItem("gets"),
				readline.PcItem("sets"),
				readline.PcItem("defaults"),
				readline.PcItem("commit"),
				readline.PcItem("dump"),
				readline.PcItem("info"),
			),
			readline.PcItem("timer",
				readline.PcItem("claim"),
				readline.PcItem("unclaim"),
				readline.PcItem("blink"),
				readline.PcItem("cancel"),
			),
			readline.PcItem("timers"),
			readline.PcItem("trace"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return
			}
			continue
		} else if err == io.EOF {
			return
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case "exit", "quit", "q":
			return
		}
		run(l, line)
	}
}
