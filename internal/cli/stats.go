package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"localsearch/internal/adapter/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics of the persisted index",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st := store.NewBoltStore(indexPath)

	snapshot, err := st.Load()
	if err != nil {
		if errors.Is(err, store.ErrNoIndex) {
			fmt.Println("No index found. Run 'localsearch index' first.")
			return nil
		}
		return fmt.Errorf("failed to load index: %w", err)
	}

	fmt.Printf("Index:      %s\n", st.Path())
	fmt.Printf("Documents:  %d\n", snapshot.Stats.TotalDocs)
	fmt.Printf("Vocabulary: %d terms\n", snapshot.Stats.VocabSize)
	fmt.Printf("Built at:   %s\n", snapshot.Stats.BuiltAt.Local().Format(time.RFC1123))
	return nil
}
