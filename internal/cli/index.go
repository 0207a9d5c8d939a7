package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"localsearch/internal/adapter/analyzer"
	"localsearch/internal/adapter/fs"
	"localsearch/internal/adapter/store"
	"localsearch/internal/usecase"
)

var indexRoots []string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index",
	Long: `Crawl the configured document directories and rebuild the index
from scratch. The previous index stays in place until the new one is
completely written.

Examples:
  localsearch index                   # use roots from the config file
  localsearch index --root ~/notes    # index a different directory`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringSliceVar(&indexRoots, "root", nil, "override configured root directories")
}

func runIndex(cmd *cobra.Command, args []string) error {
	roots := cfg.Roots
	if len(indexRoots) > 0 {
		roots = indexRoots
	}

	crawler := fs.NewCrawler(cfg.Index.Includes, cfg.Index.Excludes)
	tokenizer := analyzer.NewTokenizer(cfg.Index.Stemming, cfg.Index.Stopwords)
	st := store.NewBoltStore(indexPath)
	indexUC := usecase.NewIndexUseCase(crawler, tokenizer, st, roots)

	fmt.Printf("Scanning %d directories...\n", len(roots))

	var bar *progressbar.ProgressBar
	progress := func(processed, total int, path string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Indexing"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	}

	result, err := indexUC.Rebuild(cmd.Context(), progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Documents indexed: %d\n", result.DocsIndexed)
	fmt.Printf("  Vocabulary size:   %d\n", result.VocabSize)

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	if result.PersistErr != nil {
		fmt.Printf("\nWarning: index could not be saved (%v).\n", result.PersistErr)
		fmt.Println("Results from this run are in memory only.")
		return nil
	}

	fmt.Printf("\nIndex stored at: %s\n", st.Path())
	return nil
}
