package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/youruser/crdeck/internal/cards"
	"github.com/youruser/crdeck/internal/deck"
)

var (
	analyzeTrophies int
	analyzeLive     bool
	analyzeCatalog  string
	outputFormat    string
	cardsRole       string
	cardsMaxCost    int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [card names...]",
	Short: "Analyze a deck",
	Long: `Analyze scores up to eight cards. Names may be given as separate
arguments or as one comma-separated list. With no names the starter deck is used.`,
	Example: `  crdeck analyze "Hog Rider,Musketeer,Cannon,Fireball,Log,Ice Spirit,Skeletons,Valkyrie"
  crdeck analyze --live --trophies 4200 -o json Giant Witch "Baby Dragon"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := deckFromArgs(args)
		if err := d.Validate(); err != nil {
			return err
		}
		cat, source, err := loadCatalog(cmd.Context(), analyzeLive)
		if err != nil {
			return err
		}
		opt := analysisOptions()
		opt.Trophies = analyzeTrophies
		rep := deck.Analyze(d, cat, opt)
		return writeReport(os.Stdout, outputFormat, d, source, rep)
	},
}

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List the card catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, _, err := loadCatalog(cmd.Context(), analyzeLive)
		if err != nil {
			return err
		}
		opt := cards.FilterOptions{MaxCost: cardsMaxCost}
		if cardsRole != "" {
			r, ok := cards.ParseRole(cardsRole)
			if !ok {
				return fmt.Errorf("unknown role %q", cardsRole)
			}
			opt.Roles = []cards.Role{r}
		}
		return writeCards(os.Stdout, outputFormat, cards.Filter(cat.Cards(), opt))
	},
}

var trophiesCmd = &cobra.Command{
	Use:   "trophies <count>",
	Short: "Print advice for a trophy count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("trophies must be an integer: %w", err)
		}
		fmt.Println(deck.TrophyAdvice(n))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, cardsCmd} {
		c.Flags().BoolVar(&analyzeLive, "live", false, "merge the live card feed into the built-in catalog")
		c.Flags().StringVar(&analyzeCatalog, "catalog", "", "JSON card file to merge (items envelope or array)")
		c.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml")
	}
	analyzeCmd.Flags().IntVarP(&analyzeTrophies, "trophies", "t", 0, "current trophy count")
	cardsCmd.Flags().StringVar(&cardsRole, "role", "", "only cards with this role")
	cardsCmd.Flags().IntVar(&cardsMaxCost, "max-cost", 0, "only cards up to this elixir cost")
}

func deckFromArgs(args []string) deck.Deck {
	if len(args) == 0 {
		return deck.Default()
	}
	if len(args) == 1 {
		return deck.Parse(args[0])
	}
	return deck.Clean(args)
}

// loadCatalog mirrors the API: the base catalog, plus an optional file, plus
// the live feed when asked. A failed fetch falls back with a warning.
func loadCatalog(ctx context.Context, live bool) (cards.Catalog, string, error) {
	cat, err := baseCatalog()
	if err != nil {
		return cards.Catalog{}, "", err
	}
	source := "default"
	if analyzeCatalog != "" {
		data, err := os.ReadFile(analyzeCatalog)
		if err != nil {
			return cards.Catalog{}, "", fmt.Errorf("failed to read catalog: %w", err)
		}
		cs, err := cards.ParseCatalogJSON(data)
		if err != nil {
			return cards.Catalog{}, "", fmt.Errorf("failed to parse catalog %s: %w", analyzeCatalog, err)
		}
		cat = cat.Merge(cs)
		source = "file"
	}
	if !live {
		return cat, source, nil
	}
	client, err := newFeed()
	if err != nil {
		return cards.Catalog{}, "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cs, err := client.FetchCards(ctx)
	if err != nil {
		logger.Warn("using local catalog, feed unavailable", zap.Error(err))
		return cat, source, nil
	}
	return cat.Merge(cs), "live", nil
}
