package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/pokeca-rec/pokeca-cli/internal/archetype"
	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap <recipes.yaml>",
	Short: "Build or refresh the archetype store from labeled example decks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipes, err := readRecipes(args[0])
		if err != nil {
			return err
		}

		cs := archetype.Load(cfg.Category.Path)
		if err := cs.Bootstrap(recipes); err != nil {
			return err
		}

		zap.L().Info("bootstrap complete",
			zap.Int("archetypes", len(recipes)),
			zap.String("path", cfg.Category.Path),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bootstrapCmd)
}

// readRecipes loads a mapping from archetype name to example decks. YAML is
// a superset of JSON, so either format works.
func readRecipes(path string) (map[string][]model.Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "bootstrap: read %s", path)
	}
	var recipes map[string][]model.Deck
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, eris.Wrapf(err, "bootstrap: decode %s", path)
	}
	return recipes, nil
}
