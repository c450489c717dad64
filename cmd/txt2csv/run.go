package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// commands lists the recognized subcommands. Anything else is treated as
// arguments to convert, so `txt2csv page.html` works without a command name.
var commands = map[string]bool{
	"convert":    true,
	"verify":     true,
	"config":     true,
	"completion": true,
	"version":    true,
	"help":       true,
}

// reportedError marks an error whose message was already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// run dispatches args (without the program name) and returns the exit code.
func run(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := splitCommand(args)

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "verify":
		err = runVerify(rest, env)
	case "config":
		err = runConfig(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "txt2csv %s\n", Version)
	case "help":
		err = runHelp(rest, env)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
	}
	return exitCodeFor(err)
}

// splitCommand separates the subcommand from its arguments.
// No arguments, or a first argument that is not a command, means convert.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "convert", nil
	}
	if commands[args[0]] {
		return args[0], args[1:]
	}
	if args[0] == "-h" || args[0] == "--help" {
		return "help", args[1:]
	}
	return "convert", args
}
