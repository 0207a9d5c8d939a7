package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"localsearch/internal/adapter/analyzer"
	"localsearch/internal/adapter/retriever"
	"localsearch/internal/adapter/store"
	"localsearch/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the index",
	Long: `Rank indexed documents against a free-text query.

Examples:
  localsearch query -q "insurance policy"
  localsearch query -q "meeting notes" -k 5 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	tokenizer := analyzer.NewTokenizer(cfg.Index.Stemming, cfg.Index.Stopwords)
	st := store.NewBoltStore(indexPath)
	indexUC := usecase.NewIndexUseCase(nil, tokenizer, st, cfg.Roots)

	if err := indexUC.LoadPersisted(); err != nil {
		switch {
		case errors.Is(err, store.ErrNoIndex):
			return fmt.Errorf("no index found, run 'localsearch index' first")
		case errors.Is(err, store.ErrSchemaMismatch), errors.Is(err, store.ErrCorrupt):
			return fmt.Errorf("index unusable (%v), run 'localsearch index' to rebuild", err)
		default:
			return fmt.Errorf("failed to load index: %w", err)
		}
	}

	searchUC := usecase.NewSearchUseCase(retriever.NewTFIDFRetriever(tokenizer), indexUC)

	topK := cfg.Search.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	results, err := searchUC.Search(queryText, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%2d. %-8.4f %s\n", i+1, r.Score, r.Path)
	}
	return nil
}
