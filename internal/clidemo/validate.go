package clidemo

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidate creates the validate command.
func NewValidate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Build the schema and insert every seed document",
		Long: `Validate loads the schema and seed documents from --file, builds an
Engine, and inserts every document.

It reports how many documents were accepted and stops at the first
document that violates the schema.`,
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := requireFile(); err != nil {
		return err
	}
	ui := NewUI()
	ui.Header("Validating " + file)

	engine, inserted, err := buildEngine(file)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	defer engine.Close()

	ui.Success(fmt.Sprintf("%d document(s) accepted", inserted))
	return nil
}
