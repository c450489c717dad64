package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values (completion shells)
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments (e.g., "*.csv")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	FileGlob string // file glob pattern
	IsDir    bool   // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config": {FileGlob: "*.yaml,*.yml"},
	"output": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets - single source of truth.
func getCommands() []commandDef {
	convertDefs := extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}, io.Discard))
	common := extractFlagsFromFlagSet(newCommonFlagSet("common", &commonFlags{}, io.Discard))

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert text files to CSV",
			Flags:       convertDefs,
			TakesFiles:  true,
			FilePattern: "*.html,*.htm,*.txt",
		},
		{
			Name:        "verify",
			Desc:        "Check that CSV files parse back",
			Flags:       common,
			TakesFiles:  true,
			FilePattern: "*.csv",
		},
		{
			Name:  "config",
			Desc:  "Print the effective configuration",
			Flags: common,
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion implements the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) != 1 {
		printCompletionUsage(env.Stderr)
		return fmt.Errorf("%w: completion takes exactly one shell name", ErrUsage)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// ---------------------------------------------------------------------------
// bash
// ---------------------------------------------------------------------------

func generateBash(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("# bash completion for txt2csv\n")
	b.WriteString("_txt2csv_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 && ${cur} != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\") $(compgen -f -- \"${cur}\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range cmds[0].Flags {
		switch f.Type {
		case flagFile:
			fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(f))
			b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
			b.WriteString("            return ;;\n")
		case flagDir:
			fmt.Fprintf(&b, "        %s)\n", bashFlagPattern(f))
			b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
			b.WriteString("            return ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		words := bashFlagWords(c.Flags)
		words = append(words, c.Args...)
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\")", strings.Join(words, " "))
		if c.TakesFiles {
			b.WriteString(" $(compgen -f -- \"${cur}\")")
		}
		b.WriteString(")\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("        *)\n")
	fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\") $(compgen -f -- \"${cur}\"))\n", strings.Join(bashFlagWords(cmds[0].Flags), " "))
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _txt2csv_completions txt2csv\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

func bashFlagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

// ---------------------------------------------------------------------------
// zsh
// ---------------------------------------------------------------------------

func generateZsh(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	b.WriteString("#compdef txt2csv\n\n")
	b.WriteString("_txt2csv() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, " \\\n                %s", zshFlagSpec(f))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n                '1:shell:(%s)'", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, " \\\n                '*:file:_files -g \"%s\"'", zshGlob(c.FilePattern))
		}
		b.WriteString("\n            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_txt2csv \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func zshFlagSpec(f flagDef) string {
	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", zshGlob(f.FileGlob))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}
	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

// zshGlob turns "*.a,*.b" into "*.(a|b)".
func zshGlob(pattern string) string {
	parts := strings.Split(pattern, ",")
	if len(parts) == 1 {
		return pattern
	}
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

// ---------------------------------------------------------------------------
// fish
// ---------------------------------------------------------------------------

func generateFish(w io.Writer) error {
	var b strings.Builder
	cmds := getCommands()

	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	b.WriteString("# fish completion for txt2csv\n")
	b.WriteString("function __fish_txt2csv_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_txt2csv_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c txt2csv -n __fish_txt2csv_needs_command -f -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := "__fish_txt2csv_using_command " + c.Name
		for _, f := range c.Flags {
			b.WriteString(fishFlagLine(cond, f))
		}
		for _, a := range c.Args {
			fmt.Fprintf(&b, "complete -c txt2csv -n '%s' -f -a %s\n", cond, a)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func fishFlagLine(cond string, f flagDef) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c txt2csv -n '%s' -l %s", cond, f.Long)
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	switch f.Type {
	case flagBool:
	case flagFile:
		b.WriteString(" -r -F")
	case flagDir:
		b.WriteString(" -r -a '(__fish_complete_directories)'")
	default:
		b.WriteString(" -r -f")
	}
	fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
