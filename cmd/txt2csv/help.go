package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2csv [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Convert text files to CSV (default)")
	fmt.Fprintln(w, "  verify       Check that CSV files parse back")
	fmt.Fprintln(w, "  config       Print the effective configuration")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, arguments are passed to convert;")
	fmt.Fprintln(w, "without arguments, dataset.html is converted to dataset.csv.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'txt2csv help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2csv convert [input...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert text files to single-column CSV, one row per non-blank line.")
	fmt.Fprintln(w, "Control characters are removed and each line is quoted.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Files or directories (default: input.path or dataset.html)")
	fmt.Fprintln(w, "           Directories are scanned for input.extensions (.html, .htm, .txt)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .csv file (single input) or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-file timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show row counts, sizes and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TXT2CSV_CONFIG, TXT2CSV_INPUT, TXT2CSV_OUTPUT, TXT2CSV_OUTPUT_DIR,")
	fmt.Fprintln(w, "  TXT2CSV_WORKERS, TXT2CSV_TIMEOUT (flags take precedence)")
}

// printVerifyUsage prints usage for the verify command.
func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2csv verify [file.csv...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Parse every row of each CSV file and report the row count.")
	fmt.Fprintln(w, "Without arguments, dataset.csv is checked.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show file sizes")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2csv config [-c name]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML, after TXT2CSV_* overrides.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printCompletionUsage prints usage for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: txt2csv completion <bash|zsh|fish>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script, e.g.:")
	fmt.Fprintln(w, "  txt2csv completion bash > /etc/bash_completion.d/txt2csv")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "verify":
		printVerifyUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: txt2csv version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: txt2csv help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
