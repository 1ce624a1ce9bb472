package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cocktail-recommender/internal/core/catalog"
	"cocktail-recommender/internal/core/match"
	"cocktail-recommender/internal/core/recommend"
	"cocktail-recommender/internal/pkg/common"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	formatJSON = "json"
	formatText = "text"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "recommend",
		Usage: "Recommend cocktail recipes for a set of selected products",
		Description: `Matches every recipe in the catalog against the selected products.

  ANY  returns recipes that use at least one selected product.
  ALL  returns recipes that use every selected product.

Recipes calling for "any base spirit" match any non-empty selection under ANY.`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "select",
				Aliases: []string{"s"},
				Usage:   "Selected product name; repeat for more than one",
			},
			&cli.StringFlag{
				Name:    "logic",
				Aliases: []string{"l"},
				Value:   string(match.PolicyAny),
				Usage:   fmt.Sprintf("Matching logic (supported values: %s)", strings.Join(match.SupportedPolicies(), ", ")),
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Print every recipe without filtering",
			},
			&cli.BoolFlag{
				Name:  "products",
				Usage: "Print the product list and exit",
			},
			&cli.StringFlag{
				Name:  "catalog",
				Value: catalog.SourceEmbedded,
				Usage: "Catalog location: embedded, a directory, or an http(s) base URL",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 10 * time.Second,
				Usage: "Timeout for fetching a remote catalog",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"o"},
				Value:   formatText,
				Usage:   "Output format (json, text)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unknown output format: %q", format)
	}

	if cmd.Bool("debug") {
		if err := common.InitLogger(common.LoggerOptions{Level: "debug"}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer common.Sync()
	}

	selected := cmd.StringSlice("select")
	if cmd.Bool("all") {
		selected = append(selected, recommend.ViewAllFlag)
	}
	pq, err := recommend.ParseQuery(recommend.Query{
		Selected: selected,
		Logic:    cmd.String("logic"),
	})
	if err != nil {
		return err
	}

	timeout := cmd.Duration("timeout")
	src := catalog.NewSource(cmd.String("catalog"), catalog.SourceOptions{Timeout: timeout, Retries: 1})
	cat, err := catalog.Load(ctx, src, catalog.DefaultFiles())
	if err != nil {
		return fmt.Errorf("failed to load catalog from %s: %w", src.Describe(), err)
	}

	svc, err := recommend.NewService(cat, match.NewMatcher(match.NewNormalizer(match.DefaultVocabulary())), nil)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	if cmd.Bool("products") {
		return writeProducts(w, format, svc.Products())
	}

	result, err := svc.Recommend(ctx, pq)
	if err != nil {
		return err
	}
	common.LogDebug("Recommendation computed",
		zap.String("query", pq.String()),
		zap.Int("recipe_count", len(result.Recipes)),
	)

	if format == formatJSON {
		return common.WriteJSON(w, map[string]interface{}{"recommendations": result.Recipes})
	}
	return writeRecipes(w, result.Recipes)
}

func writeProducts(w io.Writer, format string, products []catalog.Product) error {
	if format == formatJSON {
		return common.WriteJSON(w, map[string]interface{}{"products": products})
	}
	for _, p := range products {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Category); err != nil {
			return err
		}
	}
	return nil
}

func writeRecipes(w io.Writer, recipes []match.Recipe) error {
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(w, "No matching recipes.")
		return err
	}
	for _, r := range recipes {
		if _, err := fmt.Fprintf(w, "%s\n", r.Name); err != nil {
			return err
		}
		for _, ing := range r.Ingredients {
			line := ing.Item
			if ing.Amount != "" {
				line = ing.Amount + " " + ing.Item
			}
			if _, err := fmt.Fprintf(w, "  - %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}
