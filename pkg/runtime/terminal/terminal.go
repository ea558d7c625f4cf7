package terminal

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/louisslnn/ODOO-Project/pkg/runtime/terminal/commands"
)

// CLI represents the command-line interface
type CLI struct {
	logger  zerolog.Logger
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Logs   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		logger: zerolog.New(opts.Logs).With().Timestamp().Logger(),
	}

	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	ctx := cli.logger.WithContext(context.Background())
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) newRootCmd(output io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "odoo-audit",
		Short: "Ledger audit agent for Odoo",
	}

	cmd.AddCommand(commands.NewAuditCmd(output))
	cmd.AddCommand(commands.NewRevenueCmd(output))
	cmd.AddCommand(commands.NewAskCmd(output, os.Stdin))

	return cmd
}
