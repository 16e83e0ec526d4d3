package clidemo

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set at build time via ldflags).
var (
	Version = "dev"
	Commit  = "unknown"
)

var file string

// Execute runs the demo CLI with the given context.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "lyra",
		Short: "In-memory typo-tolerant full-text search engine",
		Long: `Lyra is an in-memory, schema-driven, typo-tolerant full-text search engine.

This command loads a YAML file declaring a document schema and a set
of seed documents, builds an Engine from it, and runs one of the
engine's operations against the result.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate("lyra {{.Version}}\n")
	root.Version = versionString()
	root.PersistentFlags().StringVar(&file, "file", "", "YAML schema+seed file (required)")

	root.AddCommand(
		NewSearch(),
		NewValidate(),
		NewDelete(),
	)

	if err := fang.Execute(ctx, root, fang.WithVersion(Version), fang.WithCommit(Commit)); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(iconCross+" "+err.Error()))
		return err
	}
	return nil
}

func versionString() string {
	if strings.TrimSpace(Version) != "" && Version != "dev" {
		return Version
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
	}
	return "dev"
}

func requireFile() error {
	if strings.TrimSpace(file) == "" {
		return fmt.Errorf("--file is required")
	}
	return nil
}
