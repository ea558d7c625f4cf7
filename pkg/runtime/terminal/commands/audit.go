package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/louisslnn/ODOO-Project/pkg/models/domain"
	"github.com/louisslnn/ODOO-Project/pkg/services/audit"
	"github.com/louisslnn/ODOO-Project/pkg/services/ledger"
)

type AuditCmd struct {
	profilePath string
	createTasks bool
	output      io.Writer
}

func NewAuditCmd(output io.Writer) *cobra.Command {
	ac := &AuditCmd{output: output}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run all control checks and print the finance to-do list",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profilePath, "profile", "", "Path to the Odoo connection profile")
	cmd.Flags().BoolVar(&ac.createTasks, "create-tasks", false,
		"Create a follow-up activity in Odoo for each actionable issue")

	_ = cmd.MarkFlagRequired("profile")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, _, err := connect(ctx, ac.profilePath)
	if err != nil {
		return err
	}

	var tasks ledger.TaskCreator
	if ac.createTasks {
		tasks = client
	}

	engine := audit.NewEngine(client, tasks, audit.DefaultSettings())
	issues := engine.RunAllChecks(ctx)

	fmt.Fprintln(ac.output, audit.GenerateReport(issues))

	errorCount := 0
	for _, issue := range issues {
		if issue.Severity == domain.SeverityError {
			errorCount++
		}
	}
	if errorCount > 0 {
		return fmt.Errorf("audit found %d error-severity issue(s)", errorCount)
	}
	return nil
}
