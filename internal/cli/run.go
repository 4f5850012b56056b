package cli

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/arbiter/internal/config"
	"github.com/dshills/arbiter/internal/debate"
	"github.com/dshills/arbiter/internal/output"
)

var (
	runFile         string
	runFocus        []string
	runJSON         bool
	runOut          string
	runNoCache      bool
	runNoHistory    bool
	runFailBelow    int
	runContextLines int
)

var runCmd = &cobra.Command{
	Use:   "run <request>",
	Short: "Run a two-perspective debate",
	Long: `Run a debate over a plan or code change. The request describes what to
review; --file points at the plan or source file the reviewers should read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDebate,
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "plan or source file to debate")
	runCmd.Flags().StringSliceVar(&runFocus, "focus", nil, "focus areas (inferred from the request when omitted)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "emit JSON lines instead of text")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "write output to file instead of stdout")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "skip the response cache")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "do not persist this debate")
	runCmd.Flags().IntVar(&runFailBelow, "fail-below", 0, "exit non-zero when consensus is below this score (0 disables)")
	runCmd.Flags().IntVar(&runContextLines, "context-lines", 0, "line budget for the file excerpt")
}

func runDebate(cmd *cobra.Command, args []string) error {
	overrides := map[string]string{}
	if runJSON {
		overrides["format"] = "json"
	}
	if runNoCache {
		overrides["noCache"] = "true"
	}
	if runNoHistory {
		overrides["noHistory"] = "true"
	}
	if runContextLines > 0 {
		overrides["maxContextLines"] = strconv.Itoa(runContextLines)
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	orch, _, err := buildOrchestrator(cfg)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}

	writer, err := output.GetWriter(cfg.Format)
	if err != nil {
		exitCode = ExitUsageError
		return err
	}
	target, err := output.Target(runOut)
	if err != nil {
		exitCode = ExitRuntimeError
		return err
	}
	defer target.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var terminal debate.Event
	for ev := range orch.Run(ctx, debate.Request{
		Request:         strings.Join(args, " "),
		FilePath:        runFile,
		FocusAreas:      runFocus,
		MaxContextLines: cfg.MaxContextLines,
	}) {
		if err := writer.Event(target, ev); err != nil {
			exitCode = ExitRuntimeError
			return err
		}
		if ev.Terminal() {
			terminal = ev
		}
	}

	switch terminal.Type {
	case debate.EventComplete:
		if score, ok := terminal.Data["consensus"].(int); ok {
			if runFailBelow > 0 && score < runFailBelow {
				exitCode = ExitReviewNeeded
			}
		}
	case debate.EventError:
		exitCode = ExitProviderError
	default:
		// Cancelled before a terminal event.
		exitCode = ExitRuntimeError
	}
	return nil
}
