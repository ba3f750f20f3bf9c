package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"loom/internal/config"
	"loom/internal/diagfmt"
	"loom/internal/macro"
	"loom/internal/macrolib"
	"loom/internal/program"
	"loom/internal/session"
	"loom/internal/trace"
)

var expandCmd = &cobra.Command{
	Use:   "expand [flags] <snapshot.json>",
	Short: "Run macro expansion over a program snapshot",
	Long: `Expand loads a program snapshot, runs every macro application through the
three expansion phases (types, declarations, definitions) and reports the
diagnostics and code the macros produced`,
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

// init registers CLI flags for the expand command used by runExpand.
func init() {
	expandCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	expandCmd.Flags().Int("jobs", 0, "max parallel executions within a phase (0=auto)")
	expandCmd.Flags().String("phases", "", "comma-separated phase subset (types,declarations,definitions)")
	expandCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	expandCmd.Flags().Bool("cache", false, "replay unchanged executions from the result cache")
	expandCmd.Flags().String("cache-dir", "", "result cache directory (defaults to the user cache dir)")
	expandCmd.Flags().Bool("artifacts", false, "include emitted code in the output")
	expandCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	expandCmd.Flags().Bool("suggest", false, "include correction suggestions in output")
	expandCmd.Flags().Bool("fail-on-warnings", false, "exit non-zero when warnings remain")
}

// runExpand executes the "expand" command: it loads the snapshot, runs a
// session over it with the built-in macro registry, renders the outcome in
// the chosen format, and exits non-zero when the outcome carries errors.
func runExpand(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	snapshotPath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	phasesStr, err := cmd.Flags().GetString("phases")
	if err != nil {
		return fmt.Errorf("failed to get phases flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}

	showArtifacts, err := cmd.Flags().GetBool("artifacts")
	if err != nil {
		return fmt.Errorf("failed to get artifacts flag: %w", err)
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}

	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}

	failOnWarnings, err := cmd.Flags().GetBool("fail-on-warnings")
	if err != nil {
		return fmt.Errorf("failed to get fail-on-warnings flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	// loom.toml fills in whatever the flags left at their defaults.
	cfg, _, err := config.Discover(".")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("jobs") {
		jobs = cfg.Expand.Jobs
	}
	if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && cfg.Expand.MaxDiagnostics > 0 {
		maxDiagnostics = cfg.Expand.MaxDiagnostics
	}
	if !cmd.Flags().Changed("cache") {
		useCache = cfg.Cache.Enabled
	}
	if cacheDir == "" {
		cacheDir = cfg.Cache.Dir
	}

	var phases []macro.Phase
	if phasesStr != "" {
		for _, name := range strings.Split(phasesStr, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			p, err := macro.ParsePhase(name)
			if err != nil {
				return err
			}
			phases = append(phases, p)
		}
	} else {
		phases, err = cfg.Expand.ParsedPhases()
		if err != nil {
			return err
		}
	}

	snap, err := program.LoadSnapshot(snapshotPath)
	if err != nil {
		return err
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	logger := zerolog.Nop()
	if !quiet {
		logger = newLogger(cmd.ErrOrStderr(), !useColor)
	}

	opts := session.Options{
		Registry:       macrolib.Builtins(),
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
		Phases:         phases,
		Digest:         snap.Digest,
		Logger:         logger,
		Tracer:         trace.FromContext(cmd.Context()),
	}
	if useCache {
		var cache *session.Cache
		if cacheDir != "" {
			cache, err = session.OpenCache(cacheDir)
		} else {
			cache, err = session.OpenDefaultCache("loom")
		}
		if err != nil {
			return fmt.Errorf("failed to open result cache: %w", err)
		}
		opts.Cache = cache
	}

	var outcome *session.Outcome
	if format == "pretty" && !quiet && shouldUseTUI(mode) {
		title := "expanding " + snap.Library
		outcome, err = runSessionWithUI(cmd.Context(), title, snap, opts)
	} else {
		outcome, err = session.Run(cmd.Context(), snap.Program, snap.Applications, opts)
	}
	if err != nil {
		return fmt.Errorf("expansion failed: %w", err)
	}

	outcome.Bag.Sort()

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:           useColor,
			ShowContexts:    withNotes,
			ShowCorrections: suggest,
		}
		diagfmt.Pretty(os.Stdout, outcome.Bag, prettyOpts)
		if showArtifacts {
			renderArtifacts(snap, outcome, prettyOpts)
		}
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "expanded %d application(s): %d cached, %d skipped, %d failed\n",
				outcome.Executed, outcome.CacheHits, outcome.Skipped, outcome.Failed)
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludeContexts:  withNotes,
			IncludeArtifacts: showArtifacts,
		}
		if err := diagfmt.JSON(os.Stdout, outcome, jsonOpts); err != nil {
			return fmt.Errorf("failed to encode outcome: %w", err)
		}
	}

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), outcome.Timings.Summary())
	}

	if outcome.Bag.HasErrors() || outcome.Failed > 0 || (failOnWarnings && outcome.Bag.HasWarnings()) {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // Silent error - diagnostics already printed
	}
	return nil
}

// renderArtifacts lists every execution's emitted code under a per-result
// header, application order preserved.
func renderArtifacts(snap *program.Snapshot, outcome *session.Outcome, opts diagfmt.PrettyOpts) {
	for _, exp := range outcome.Expansions {
		for _, res := range exp.Results {
			if res.ArtifactCount() == 0 {
				continue
			}
			target := session.TargetLabel(snap.Program, exp.Application.Target)
			fmt.Fprintf(os.Stdout, "== %s(%s) %s ==\n", exp.Application.MacroName, target, res.Phase)
			diagfmt.RenderResult(os.Stdout, res, opts)
		}
	}
}
