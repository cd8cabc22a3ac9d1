package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/pokeca-rec/pokeca-cli/internal/model"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the canonical card table to a spreadsheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		cards, err := st.ListCards(cmd.Context())
		if err != nil {
			return err
		}

		if err := writeCardsXLSX(exportOut, cards); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.Int("cards", len(cards)),
			zap.String("out", exportOut),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "ptcg_card.xlsx", "output file")
	rootCmd.AddCommand(exportCmd)
}

var exportHeader = []string{
	"id", "card_type", "card_name", "evo_type", "hp", "hp_type", "ability",
	"attacks", "special_rule", "weakness", "resistance", "retreat",
	"description", "hash_unique_info", "card_code", "img_url", "rarity_code",
}

func writeCardsXLSX(path string, cards []model.CanonicalCard) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("ptcg_card")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range exportHeader {
		header.AddCell().Value = col
	}

	for _, c := range cards {
		hp := ""
		if c.HP != nil {
			hp = strconv.Itoa(*c.HP)
		}
		row := sheet.AddRow()
		for _, v := range []string{
			strconv.FormatInt(c.ID, 10), string(c.CardType), c.CardName, c.EvoType,
			hp, c.HPType, c.Ability, strings.Join(c.Attacks, "; "), c.SpecialRule,
			c.Weakness, c.Resistance, c.Retreat, c.Description, c.HashUniqueInfo,
			strings.Join(c.CardCodes, ", "), strings.Join(c.ImgURLs, ", "),
			strings.Join(c.RarityCodes, ", "),
		} {
			row.AddCell().Value = v
		}
	}

	return eris.Wrapf(file.Save(path), "export: save %s", path)
}
