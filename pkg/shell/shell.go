// Package shell provides the interactive "switch" commands of the light
// switch: send On/Off or level commands to bound lights and print the
// binding table.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/levelcontrol"
	"github.com/mike-scofield/sdk-nrf/pkg/clusters/onoff"
	"github.com/mike-scofield/sdk-nrf/pkg/datamodel"
	"github.com/mike-scofield/sdk-nrf/pkg/lightswitch"
	"github.com/pion/logging"
)

// Shell errors.
var (
	ErrUnknownCommand = errors.New("shell: unknown command")
	ErrUsage          = errors.New("shell: invalid arguments")
	ErrInvalidLevel   = errors.New("shell: level must be 0-254")
	ErrNoGroupBinding = errors.New("shell: no group bindings")
)

// Switch accepts switch actions. Implemented by lightswitch.Handler.
type Switch interface {
	Post(ctx *lightswitch.ChangeContext) error
}

// TableInspector reads the binding table. Implemented by lightswitch.Inspector.
type TableInspector interface {
	HasAnyGroupBinding() bool
	DumpTable() []string
}

// Config configures a Shell.
type Config struct {
	Switch    Switch
	Inspector TableInspector

	// Endpoint is the local switch endpoint commands originate from.
	Endpoint datamodel.EndpointID

	// Out receives command output. Defaults to os.Stdout if nil.
	Out io.Writer

	// Prompt for interactive mode. Defaults to "switch> ".
	Prompt string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Shell parses and runs switch commands.
type Shell struct {
	sw        Switch
	inspector TableInspector
	endpoint  datamodel.EndpointID
	out       io.Writer
	prompt    string
	log       logging.LeveledLogger
}

// New creates a Shell.
func New(config Config) *Shell {
	s := &Shell{
		sw:        config.Switch,
		inspector: config.Inspector,
		endpoint:  config.Endpoint,
		out:       config.Out,
		prompt:    config.Prompt,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.prompt == "" {
		s.prompt = "switch> "
	}
	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("shell")
	}
	return s
}

// Run reads commands until exit, EOF or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	s.out = rl.Stdout()

	go func() {
		<-ctx.Done()
		rl.Close()
	}()

	s.printHelp()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return nil
		}

		exit, err := s.Execute(line)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		if exit {
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		}
	}
}

// Execute runs one command line. exit is true for "exit" and "quit".
func (s *Shell) Execute(line string) (exit bool, err error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "help", "?":
		s.printHelp()
		return false, nil
	case "exit", "quit", "q":
		return true, nil
	case "switch":
		return false, s.cmdSwitch(parts[1:])
	default:
		return false, fmt.Errorf("%w: %s (type 'help' for commands)", ErrUnknownCommand, parts[0])
	}
}

func (s *Shell) cmdSwitch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: switch <onoff|level|groups|table>", ErrUsage)
	}

	group := false
	if args[0] == "groups" {
		group = true
		args = args[1:]
		if len(args) == 0 {
			return fmt.Errorf("%w: switch groups <onoff|level>", ErrUsage)
		}
	}

	switch args[0] {
	case "onoff":
		return s.cmdOnOff(args[1:], group)
	case "level":
		return s.cmdLevel(args[1:], group)
	case "table":
		if group {
			return fmt.Errorf("%w: switch table", ErrUsage)
		}
		s.cmdTable()
		return nil
	default:
		return fmt.Errorf("%w: switch %s", ErrUnknownCommand, args[0])
	}
}

func (s *Shell) cmdOnOff(args []string, group bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: onoff <on|off|toggle>", ErrUsage)
	}

	var cmd datamodel.CommandID
	switch args[0] {
	case "on":
		cmd = onoff.CmdOn
	case "off":
		cmd = onoff.CmdOff
	case "toggle":
		cmd = onoff.CmdToggle
	default:
		return fmt.Errorf("%w: onoff <on|off|toggle>", ErrUsage)
	}

	if err := s.checkGroup(group); err != nil {
		return err
	}
	return s.post(lightswitch.NewOnOffContext(s.endpoint, cmd, group))
}

func (s *Shell) cmdLevel(args []string, group bool) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: level <0-254>", ErrUsage)
	}
	v, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil || v > uint64(levelcontrol.MaxLevel) {
		return fmt.Errorf("%w: %s", ErrInvalidLevel, args[0])
	}

	if err := s.checkGroup(group); err != nil {
		return err
	}
	return s.post(lightswitch.NewLevelContext(s.endpoint, uint8(v), group))
}

func (s *Shell) cmdTable() {
	lines := s.inspector.DumpTable()
	fmt.Fprintf(s.out, "Binding Table size: [%d]:\n", len(lines))
	for _, line := range lines {
		fmt.Fprintf(s.out, "  %s\n", line)
	}
}

// checkGroup refuses group commands while no group is bound.
func (s *Shell) checkGroup(group bool) error {
	if group && !s.inspector.HasAnyGroupBinding() {
		fmt.Fprintln(s.out, "No group bindings, command not sent")
		return ErrNoGroupBinding
	}
	return nil
}

func (s *Shell) post(ctx *lightswitch.ChangeContext) error {
	if s.log != nil {
		s.log.Debugf("posting %s", ctx)
	}
	if err := s.sw.Post(ctx); err != nil {
		return fmt.Errorf("post switch action: %w", err)
	}
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Light Switch Commands:
  switch onoff <on|off|toggle>         - Send to unicast bindings
  switch groups onoff <on|off|toggle>  - Send to group bindings
  switch level <0-254>                 - MoveToLevel on unicast bindings
  switch groups level <0-254>          - MoveToLevel on group bindings
  switch table                         - Print the binding table

  help                                 - Show this help
  exit                                 - Exit`)
}
