package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pokeca-rec/pokeca-cli/internal/archetype"
	"github.com/pokeca-rec/pokeca-cli/internal/deck"
	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <deck.json>",
	Short: "Classify a deck against known archetypes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := readDeck(args[0])
		if err != nil {
			return err
		}

		sig, err := deck.Signature(deck.Normalize(*d))
		if err != nil {
			return err
		}

		cs := archetype.Load(cfg.Category.Path)
		match, ok := archetype.Classify(sig, cs)
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "no match")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (similarity %.3f)\n", match.Name, match.Similarity)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func readDeck(path string) (*model.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "classify: read %s", path)
	}
	var d model.Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, eris.Wrapf(err, "classify: decode %s", path)
	}
	return &d, nil
}
