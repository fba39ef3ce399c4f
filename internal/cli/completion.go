package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsFormat  bool     // true if values come from the format registry (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Last Fibonacci position to emit", ValueName: "number"},
	{Long: "debug", Help: "Print F[i] ==> term ==> result lines"},
	{Long: "format", Help: "Record format", IsFormat: true, ValueName: "format"},
	{Long: "output", Short: "o", Help: "Also write records to a file", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Suppress banner and summary"},
	{Long: "summary", Short: "s", Help: "Print per-label counts on stderr"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"1s", "10s", "1m"}, ValueName: "duration"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "metrics-file", Help: "Write Prometheus metrics to a file", IsFile: true, ValueName: "file"},
	{Long: "tui", Help: "Browse records interactively"},
	{Long: "interactive", Short: "i", Help: "Start the interactive REPL"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
var zshHelpOverrides = map[string]string{
	"n": "Position bound N (0-92)",
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - formats: The record format names offered for --format.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, formats []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, formats)
	case "zsh":
		return generateZshCompletion(out, formats)
	case "fish":
		return generateFishCompletion(out, formats)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, formats)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// flagValues returns the suggested values of f, resolving dynamic format
// lists.
func flagValues(f FlagCompletion, formats []string) []string {
	if f.IsFormat {
		return formats
	}
	return f.Values
}

// flagPatterns returns "--long" and "-s" spellings of f.
func flagPatterns(f FlagCompletion) []string {
	var patterns []string
	if f.Long != "" {
		patterns = append(patterns, "--"+f.Long)
	}
	if f.Short != "" {
		patterns = append(patterns, "-"+f.Short)
	}
	return patterns
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, formats []string) error {
	var opts []string
	for _, f := range flagRegistry {
		opts = append(opts, flagPatterns(f)...)
	}

	var filePatterns []string
	var caseBody strings.Builder
	writeCase := func(patterns []string, body string) {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(patterns, "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	for _, f := range flagRegistry {
		switch {
		case f.IsFile:
			filePatterns = append(filePatterns, flagPatterns(f)...)
		case len(flagValues(f, formats)) > 0:
			writeCase(flagPatterns(f),
				fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(flagValues(f, formats), " ")))
		}
	}
	if len(filePatterns) > 0 {
		writeCase(filePatterns, `COMPREPLY=( $(compgen -f -- "${cur}") )`)
	}

	script := fmt.Sprintf(`# Bash completion script for fibfizz
# Add this to your ~/.bashrc or ~/.bash_completion

_fibfizz_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibfizz_completions fibfizz
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, formats []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f, formats))
	}

	script := fmt.Sprintf(`#compdef fibfizz

# Zsh completion script for fibfizz
# Add this to your ~/.zshrc or place in $fpath

_fibfizz() {
    _arguments -s \
%s \
        '1:position bound:'
}

_fibfizz "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshHelp returns the help text for a flag in zsh, using an override if available.
func zshHelp(f FlagCompletion) string {
	if override, ok := zshHelpOverrides[flagKey(f)]; ok {
		return override
	}
	return f.Help
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion, formats []string) string {
	help := zshHelp(f)

	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if values := flagValues(f, formats); len(values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., -n)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, formats []string) error {
	lines := []string{
		"# Fish completion script for fibfizz",
		"# Add this to ~/.config/fish/completions/fibfizz.fish",
		"",
		"# Disable file completion by default",
		"complete -c fibfizz -f",
		"",
	}

	type section struct {
		comment string
		flags   []FlagCompletion
	}
	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Main options", flags: filterFlags("n_short", "debug", "format", "timeout")},
		{comment: "# Output options", flags: filterFlags("output", "quiet", "summary", "no-color", "metrics-file")},
		{comment: "# Diagnostics", flags: filterFlags("log-level")},
		{comment: "# Interactive modes", flags: filterFlags("tui", "interactive")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, formats))
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given identifiers.
// An identifier is a Long name, or "X_short" to match a flag by Short name only.
func filterFlags(ids ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, id := range ids {
		short, shortOnly := strings.CutSuffix(id, "_short")
		for _, f := range flagRegistry {
			if (shortOnly && f.Short == short && f.Long == "") || (!shortOnly && f.Long == id) {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, formats []string) string {
	parts := []string{"complete -c fibfizz"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if values := flagValues(f, formats); len(values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(values, " ")))
	} else if f.ValueName != "" {
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, formats []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		for _, p := range flagPatterns(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", p, f.Help))
		}
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		values := flagValues(f, formats)
		if f.IsFile || len(values) == 0 {
			continue
		}
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for fibfizz
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'fibfizz' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
