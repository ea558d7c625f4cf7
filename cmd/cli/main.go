package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/louisslnn/ODOO-Project/pkg/runtime/terminal"
)

func main() {
	// Optional; credentials may also come from the environment directly.
	_ = godotenv.Load()

	cli := terminal.NewCLI(terminal.Options{
		Output: os.Stdout,
		Logs:   os.Stderr,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
