package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/louisslnn/ODOO-Project/pkg/services/advisor"
	"github.com/louisslnn/ODOO-Project/pkg/services/audit"
	"github.com/louisslnn/ODOO-Project/pkg/services/report"
)

type AskCmd struct {
	profilePath string
	output      io.Writer
	input       io.Reader
}

// NewAskCmd starts an interactive loop: each question triggers a fresh audit
// run plus a revenue computation, and both are handed to the advisor as
// context for a single prompt/response call.
func NewAskCmd(output io.Writer, input io.Reader) *cobra.Command {
	ak := &AskCmd{output: output, input: input}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask the finance advisor questions about the ledger",
		RunE:  ak.run,
	}

	cmd.Flags().StringVar(&ak.profilePath, "profile", "", "Path to the Odoo connection profile")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ak *AskCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not set")
	}

	client, cfg, err := connect(ctx, ak.profilePath)
	if err != nil {
		return err
	}

	engine := audit.NewEngine(client, nil, audit.DefaultSettings())
	analyst := report.NewAnalyst(client)
	adv := advisor.New(apiKey)

	fmt.Fprintln(ak.output, "Ask your questions in natural language. Type 'exit' to quit.")

	scanner := bufio.NewScanner(ak.input)
	for {
		fmt.Fprint(ak.output, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "exit", "quit", "bye":
			fmt.Fprintln(ak.output, "Goodbye!")
			return nil
		}

		revenue, err := analyst.MonthlyRevenue(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("failed to compute revenue, continuing with zero")
		}

		issues := engine.RunAllChecks(ctx)
		financialContext := advisor.BuildContext(cfg.Database, revenue.Total, len(issues),
			audit.GenerateReport(issues))

		answer, err := adv.Ask(ctx, question, financialContext)
		if err != nil {
			logger.Error().Err(err).Msg("advisor request failed")
			fmt.Fprintln(ak.output, "Sorry, I am unable to process this request at the moment.")
			continue
		}

		fmt.Fprintf(ak.output, "\n%s\n\n", answer)
	}
}
