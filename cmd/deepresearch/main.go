// Command deepresearch answers a broad research question by decomposing it,
// investigating each sub-question with web search, and synthesizing a cited
// report.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	"github.com/qmerge/deepresearch"
	"github.com/qmerge/deepresearch/agent"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "deepresearch:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		canned          bool
		model           string
		maxSubQuestions int
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "deepresearch \"question\"",
		Short: "Decompose, investigate and synthesize an answer to a research question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()

			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is not set")
			}
			backend := agent.NewOpenAIBackend(openai.NewClient(apiKey), model)

			search := deepresearch.CannedSearch()
			if !canned {
				tavilyKey := os.Getenv("TAVILY_API_KEY")
				if tavilyKey == "" {
					return fmt.Errorf("TAVILY_API_KEY is not set (use --canned for offline search)")
				}
				search = deepresearch.TavilySearch(tavilyKey)
			}

			coord := deepresearch.NewCoordinator(backend, search,
				deepresearch.WithMaxSubQuestions(maxSubQuestions),
				deepresearch.WithLogger(log),
			)

			report, err := coord.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&canned, "canned", false, "use the deterministic offline search backend")
	cmd.Flags().StringVar(&model, "model", openai.GPT4oMini, "chat model to use")
	cmd.Flags().IntVar(&maxSubQuestions, "max-subquestions", 5, "maximum sub-questions to investigate")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
