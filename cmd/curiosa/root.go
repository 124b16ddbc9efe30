package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/codyseavey/archimago/internal/catalog"
	"github.com/codyseavey/archimago/internal/commands"
	"github.com/codyseavey/archimago/internal/deck"
	"github.com/codyseavey/archimago/internal/format"
	"github.com/codyseavey/archimago/internal/glossary"
	"github.com/codyseavey/archimago/internal/names"
	"github.com/codyseavey/archimago/internal/services"
)

type options struct {
	baseURL      string
	timeout      time.Duration
	cardsPath    string
	termsPath    string
	includeMaybe bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "curiosa",
		Short:        "Look up Sorcery decks, cards and terms",
		Long:         "Fetch curiosa.io decks, compare them and look up cards and game terms.",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "https://curiosa.io", "curiosa.io base URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	root.PersistentFlags().StringVar(&opts.cardsPath, "cards", "./data/cards.json", "card data file")
	root.PersistentFlags().StringVar(&opts.termsPath, "terms", "./data/terms.toml", "glossary file")

	root.AddCommand(newDeckCmd(opts))
	root.AddCommand(newOverlapCmd(opts))
	root.AddCommand(newCardCmd(opts))
	root.AddCommand(newFAQCmd(opts))
	root.AddCommand(newTermCmd(opts))
	return root
}

func (o *options) curiosa() *services.CuriosaService {
	return services.NewCuriosaService(services.CuriosaConfig{
		BaseURL: o.baseURL,
		Timeout: o.timeout,
	})
}

func (o *options) snapshot(ctx context.Context) (*catalog.Snapshot, error) {
	cards, err := catalog.FileSource{Path: o.cardsPath}.LoadCards(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewSnapshot(cards), nil
}

func newDeckCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck <id|url>",
		Short: "List the cards of a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.curiosa().FetchDeck(cmd.Context(), args[0], opts.includeMaybe)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Deck(d)+format.CardCounts(d))
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.includeMaybe, "maybe", false, "include the maybeboard")
	return cmd
}

func newOverlapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "overlap <id> <id> [id...]",
		Short: "Show the cards that decks have in common",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, err := opts.curiosa().FetchDecks(cmd.Context(), args, false)
			if err != nil {
				return err
			}
			overlap, err := deck.Overlap(decks...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), commands.OverlapText(overlap))
			return nil
		},
	}
}

func newCardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "card <name...>",
		Short: "Show the details of a card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := opts.snapshot(cmd.Context())
			if err != nil {
				return err
			}

			name := names.NormalizeWords(args)
			card, ok := snap.Catalog.Lookup(name)
			if !ok {
				return fmt.Errorf("%s", format.Suggestion(name, snap.Index, "Could not find card by card name"))
			}
			fmt.Fprint(cmd.OutOrStdout(), format.Card(card))
			fmt.Fprintln(cmd.OutOrStdout(), format.ImageURL(card))
			return nil
		},
	}
}

func newFAQCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "faq <name...>",
		Short: "Show the FAQ entries of a card",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := names.NormalizeWords(args)
			entries, err := opts.curiosa().FetchFAQ(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), format.FAQ(name, entries))
			return nil
		},
	}
}

func newTermCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "term <term...>",
		Short: "Explain a game term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := glossary.Load(opts.termsPath)
			if err != nil {
				return err
			}

			key := names.NormalizeWords(args)
			term, ok := terms.Lookup(key)
			if !ok {
				return fmt.Errorf("%s", format.Suggestion(key, terms.Index(), "No explanation found for term"))
			}
			fmt.Fprintln(cmd.OutOrStdout(), term.Text)
			return nil
		},
	}
}
