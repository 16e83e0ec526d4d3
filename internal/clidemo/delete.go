package clidemo

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-mizu/blueprints/lyra"
)

var deleteIndex int

// NewDelete creates the delete command.
func NewDelete() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Load the seed documents and delete one of them",
		Long: `Delete loads the schema and seed documents from --file, builds an
Engine, inserts every document, then deletes the document at
--index (its position in the seed file's documents list).`,
		RunE: runDelete,
	}
	cmd.Flags().IntVar(&deleteIndex, "index", 0, "position, in the seed file, of the document to delete")
	return cmd
}

// searchAllParams matches every document the engine holds, used here
// to enumerate documents by position rather than by id.
func searchAllParams() lyra.SearchParams {
	return lyra.SearchParams{Limit: 1 << 20}
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := requireFile(); err != nil {
		return err
	}
	ui := NewUI()
	ui.Header("Deleting from " + file)

	f, err := loadDemoFile(file)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	if deleteIndex < 0 || deleteIndex >= len(f.Documents) {
		err := fmt.Errorf("index %d out of range (%d documents)", deleteIndex, len(f.Documents))
		ui.Error(err.Error())
		return err
	}

	engine, inserted, err := buildEngine(file)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	defer engine.Close()
	ui.Info("documents loaded", fmt.Sprintf("%d", inserted))

	before, err := engine.Search(searchAllParams())
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	if deleteIndex >= len(before.Hits) {
		err := fmt.Errorf("index %d out of range (%d documents)", deleteIndex, len(before.Hits))
		ui.Error(err.Error())
		return err
	}
	target := before.Hits[deleteIndex]

	if err := engine.Delete(target.ID); err != nil {
		ui.Error(err.Error())
		return err
	}

	after, err := engine.Search(searchAllParams())
	if err != nil {
		ui.Error(err.Error())
		return err
	}

	ui.Success(fmt.Sprintf("deleted %s", target.ID))
	ui.Info("count before", fmt.Sprintf("%d", before.Count))
	ui.Info("count after", fmt.Sprintf("%d", after.Count))
	return nil
}
