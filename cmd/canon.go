package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pokeca-rec/pokeca-cli/internal/resolver"
)

var canonCmd = &cobra.Command{
	Use:   "canon <card-name> <card-code>",
	Short: "Map an observed card code to its canonical reprint code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		result, err := resolver.Canonicalize(cmd.Context(), st, args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", result.Code, result.Outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(canonCmd)
}
