package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"loom/internal/macro"
	"loom/internal/macrolib"
)

var macrosCmd = &cobra.Command{
	Use:   "macros [name]",
	Short: "List built-in macros and their capabilities",
	Long: `Macros prints every built-in macro together with the capability matrix:
which declaration kinds it can serve in which expansion phases. With a name
argument only that macro is shown`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMacros,
}

func runMacros(cmd *cobra.Command, args []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	reg := macrolib.Builtins()
	names := reg.Names()

	if len(args) == 1 {
		name := strings.TrimSpace(args[0])
		if _, ok := reg.Lookup(name); !ok {
			return fmt.Errorf("unknown macro %q (available: %s)", name, strings.Join(names, ", "))
		}
		names = []string{name}
	}

	for _, name := range names {
		m, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		if err := writeStdoutf("%s\n", name); err != nil {
			return err
		}
		for _, line := range capabilityLines(m, useColor) {
			if err := writeStdoutf("  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// capabilityLines renders one line per phase a macro serves, kinds
// comma-joined in dispatch order.
func capabilityLines(m macro.Macro, colored bool) []string {
	byPhase := make(map[macro.Phase][]string)
	for _, c := range macro.Capabilities(m) {
		byPhase[c.Phase] = append(byPhase[c.Phase], c.Kind.String())
	}

	var lines []string
	for _, p := range macro.Phases() {
		kinds, ok := byPhase[p]
		if !ok {
			continue
		}
		label := p.String()
		if colored {
			c := color.New(color.FgCyan)
			c.EnableColor()
			label = c.Sprint(label)
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, strings.Join(kinds, ", ")))
	}
	if len(lines) == 0 {
		lines = append(lines, "(no capabilities)")
	}
	return lines
}

func writeStdoutf(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}
