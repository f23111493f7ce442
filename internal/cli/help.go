package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
)

// helpStyler renders cobra help and usage output through Lipgloss. The
// stock templates print plain text; replacing the help and usage functions
// keeps the same layout while tinting commands, headings, and flags when
// the terminal supports it.
type helpStyler struct {
	heading lipgloss.Style
	command lipgloss.Style
	sub     lipgloss.Style
	flag    lipgloss.Style
	example lipgloss.Style
	dim     lipgloss.Style
	text    lipgloss.Style
}

func newHelpStyler(colorMode string, w io.Writer) *helpStyler {
	plain := lipgloss.NewStyle()
	if !pretty.IsColorEnabled(colorMode, w) {
		return &helpStyler{
			heading: plain, command: plain, sub: plain,
			flag: plain, example: plain, dim: plain, text: plain,
		}
	}

	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &helpStyler{
		heading: fg("11").Bold(true),
		command: fg("14").Bold(true),
		sub:     fg("10"),
		flag:    fg("12"),
		example: fg("8"),
		dim:     fg("8"),
		text:    plain,
	}
}

// usageTemplate mirrors cobra's default usage layout with style hooks on
// every element.
const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ cmd .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ cmd .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ sub (pad .Name .NamePadding) }} {{ text .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flagUsages .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flagUsages .InheritedFlags }}
{{- end}}

{{- if .HasHelpSubCommands}}

{{ heading "Additional help topics:" }}{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{ sub (pad .CommandPath .CommandPathPadding) }} {{ text .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ cmd (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

// helpPrefix puts the command path and long description above the usage
// block when help is requested explicitly.
const helpPrefix = `{{if or .Runnable .HasSubCommands}}{{ cmd .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailing }}

{{end}}`

func (s *helpStyler) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":      s.heading.Render,
		"cmd":          s.command.Render,
		"sub":          s.sub.Render,
		"example":      s.example.Render,
		"dim":          s.dim.Render,
		"text":         s.text.Render,
		"flagUsages":   s.styledFlagUsages,
		"pad":          padRight,
		"join":         strings.Join,
		"trimTrailing": trimTrailingSpace,
	}
}

// installStyledHelp wires styled help rendering into cmd and every
// subcommand. The styler is built lazily so the --color flag has already
// been parsed by the time help renders.
func installStyledHelp(cmd *cobra.Command, colorMode *string) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		s := newHelpStyler(*colorMode, os.Stdout)
		return s.render(c.OutOrStdout(), usageTemplate, c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		s := newHelpStyler(*colorMode, os.Stdout)
		if err := s.render(c.OutOrStdout(), helpPrefix+usageTemplate, c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// render parses text with the styler's function map and executes it
// against c. Help prints at most once per process, so the parse is not
// cached.
func (s *helpStyler) render(w io.Writer, text string, c *cobra.Command) error {
	tmpl, err := template.New("help").Funcs(s.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(w, c)
}

// flagUsager is the part of pflag.FlagSet the usage template needs.
type flagUsager interface{ FlagUsages() string }

// styledFlagUsages re-renders a pflag usage block with the flag names
// tinted and value types dimmed.
func (s *helpStyler) styledFlagUsages(fs flagUsager) string {
	usages := strings.TrimSuffix(fs.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = s.styleUsageLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleUsageLine tints one "  -f, --flag type   description" line. Lines
// that do not follow that shape pass through untouched.
func (s *helpStyler) styleUsageLine(line string) string {
	body := strings.TrimLeft(line, " ")
	if body == "" {
		return line
	}
	indent := line[:len(line)-len(body)]

	flagPart, desc := splitUsageLine(body)
	if desc == "" {
		return line
	}
	return indent + s.styleFlagTokens(flagPart) + "   " + s.text.Render(desc)
}

// splitUsageLine separates the flag tokens of a pflag usage line from its
// description. The description begins after the first run of two or more
// spaces; lines without one come back with an empty description.
func splitUsageLine(body string) (flagPart, desc string) {
	gap := strings.Index(body, "  ")
	if gap < 0 {
		return body, ""
	}
	return strings.TrimRight(body[:gap], " "), strings.TrimLeft(body[gap:], " ")
}

// styleFlagTokens tints each dash token and dims everything else, which
// for pflag output means the value type.
func (s *helpStyler) styleFlagTokens(flagPart string) string {
	tokens := strings.Fields(flagPart)
	for i, tok := range tokens {
		bare := strings.TrimSuffix(tok, ",")
		if strings.HasPrefix(bare, "-") {
			tokens[i] = s.flag.Render(bare) + tok[len(bare):]
		} else {
			tokens[i] = s.dim.Render(tok)
		}
	}
	return strings.Join(tokens, " ")
}

// padRight pads name out to width so the description column lines up.
func padRight(name string, width int) string {
	if len(name) >= width {
		return name
	}
	return name + strings.Repeat(" ", width-len(name))
}

// trimTrailingSpace trims trailing spaces and tabs from every line.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
