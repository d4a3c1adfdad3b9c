package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"haus-finance/domain"
	"haus-finance/service"
)

var (
	askTopic  string
	askStream bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the HAUS assistant a property question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		provider, err := buildProvider(ctx, cfg.Insight, logger)
		if err != nil {
			return err
		}
		insight := service.NewInsightService(provider, cfg.Insight.TypingDelay, logger)
		q := domain.Question{Text: strings.Join(args, " "), Topic: domain.Topic(askTopic)}
		out := cmd.OutOrStdout()

		if askStream && !jsonOutput {
			err := insight.Stream(ctx, q, func(c domain.AnswerChunk) error {
				if c.Done {
					_, err := fmt.Fprintln(out)
					return err
				}
				_, err := fmt.Fprint(out, c.Text)
				return err
			})
			return err
		}

		answer, err := insight.Ask(ctx, q)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(out, answer)
		}

		rendered, err := renderAnswer(answer)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

// renderAnswer formats an answer and its follow-up suggestions as markdown
// for the terminal.
func renderAnswer(a domain.Answer) (string, error) {
	var md strings.Builder
	fmt.Fprintf(&md, "## %s\n\n%s\n", titleCase(string(a.Topic)), a.Text)
	if len(a.Suggestions) > 0 {
		md.WriteString("\n**You could also ask:**\n\n")
		for _, s := range a.Suggestions {
			fmt.Fprintf(&md, "- %s\n", s)
		}
	}
	fmt.Fprintf(&md, "\n_answered by %s_\n", a.Provider)

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(md.String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func init() {
	askCmd.Flags().StringVar(&askTopic, "topic", "", "hub tab the question comes from: market, suburbs, investment or finance")
	askCmd.Flags().BoolVar(&askStream, "stream", false, "print the answer word by word as it is typed")
}
