// Package ui renders dotsmith's terminal output: device tables,
// conflict listings, per-item deployment results, and run summaries.
// Output degrades to plain text when stdout is not a terminal.
package ui

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/dotsmith-cli/dotsmith/pkg/backup"
	"github.com/dotsmith-cli/dotsmith/pkg/conflicts"
	"github.com/dotsmith-cli/dotsmith/pkg/deploy"
	"github.com/dotsmith-cli/dotsmith/pkg/device"
)

//go:embed embedded/next_steps.md
var nextStepsDoc string

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2)

// IsTerminal reports whether stdout is an interactive terminal
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Renderer writes human-facing output for one run
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a Renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Welcome prints the opening banner
func (r *Renderer) Welcome() {
	fmt.Fprintln(r.out, panelStyle.Render("dotsmith\nCross-platform configuration management"))
}

// DeviceInfo prints the detected device as a two-column table
func (r *Renderer) DeviceInfo(info *device.Info) {
	data := pterm.TableData{
		{"OS", info.OS},
		{"Architecture", info.Architecture},
		{"Distro", orNone(info.Distro)},
		{"Package Manager", orNone(info.PackageManager)},
		{"Hostname", orNone(info.Hostname)},
	}

	rendered, err := pterm.DefaultTable.WithData(data).Srender()
	if err != nil {
		fmt.Fprintf(r.out, "%+v\n", info)
		return
	}
	fmt.Fprintln(r.out, rendered)
}

// Conflicts prints the conflict listing, or a success line when clean
func (r *Renderer) Conflicts(found []conflicts.Conflict) {
	if len(found) == 0 {
		fmt.Fprintln(r.out, pterm.FgGreen.Sprint("✓ No conflicts found"))
		return
	}

	fmt.Fprintln(r.out, pterm.FgYellow.Sprintf("⚠ Found %d existing configurations:", len(found)))

	data := pterm.TableData{{"Config", "Path", "Type"}}
	for _, conflict := range found {
		data = append(data, []string{conflict.Name, conflict.Path, string(conflict.Kind)})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		for _, conflict := range found {
			fmt.Fprintf(r.out, "  %s: %s (%s)\n", conflict.Name, conflict.Path, conflict.Kind)
		}
		return
	}
	fmt.Fprintln(r.out, rendered)
}

// BackupResults prints per-item backup outcomes in the given order,
// followed by the session directory.
func (r *Renderer) BackupResults(session *backup.Session, order []string, results map[string]backup.Status) {
	backedUp := 0
	for _, name := range order {
		status, ok := results[name]
		if !ok {
			continue
		}
		switch status {
		case backup.StatusBackedUp:
			fmt.Fprintf(r.out, "%s Backed up: %s\n", pterm.FgGreen.Sprint("✓"), name)
			backedUp++
		case backup.StatusFailed:
			fmt.Fprintf(r.out, "%s Failed to back up: %s\n", pterm.FgRed.Sprint("✗"), name)
		case backup.StatusSkipped:
			// nothing existed at the target, nothing to report
		}
	}

	if backedUp > 0 {
		fmt.Fprintf(r.out, "Backup directory: %s\n", pterm.FgYellow.Sprint(session.Dir()))
	} else {
		fmt.Fprintln(r.out, "No configurations needed backup")
	}
}

// DeployResults prints one line per deployed config and a final count.
// The summary always reconciles with the attempts: succeeded plus
// failed equals the number of results.
func (r *Renderer) DeployResults(results deploy.Results) {
	for _, result := range results {
		if result.Success {
			fmt.Fprintf(r.out, "%s %s → %s\n", pterm.FgGreen.Sprint("✓"), result.Name, result.Target)
		} else {
			fmt.Fprintf(r.out, "%s %s (%s)\n", pterm.FgRed.Sprint("✗"), result.Name, result.Reason)
		}
	}

	fmt.Fprintf(r.out, "Deployed %d/%d configurations\n", results.Succeeded(), len(results))
}

// NextSteps renders the post-deployment guidance
func (r *Renderer) NextSteps() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)
	if err == nil {
		if rendered, err := renderer.Render(nextStepsDoc); err == nil {
			fmt.Fprint(r.out, rendered)
			return
		}
	}
	fmt.Fprint(r.out, nextStepsDoc)
}

// Successf prints a green success line
func (r *Renderer) Successf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, pterm.FgGreen.Sprint("✓ "+fmt.Sprintf(format, args...)))
}

// Warnf prints a yellow warning line
func (r *Renderer) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, pterm.FgYellow.Sprint("⚠ "+fmt.Sprintf(format, args...)))
}

// Errorf prints a red error line
func (r *Renderer) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, pterm.FgRed.Sprint("✗ "+fmt.Sprintf(format, args...)))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
