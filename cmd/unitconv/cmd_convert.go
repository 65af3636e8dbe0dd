package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var decimals int

var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount from one unit to another",
	Example: `  unitconv convert 1000 "Millimeters (mm)" "Meters (m)"
  unitconv convert -- -40 "Feet (ft)" "Meters (m)"`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd.Context())
	if err != nil {
		return err
	}
	res, err := cat.ConvertString(args[0], args[1], args[2])
	if err != nil {
		logger.Debug("conversion rejected", "amount", args[0], "from", args[1], "to", args[2], "error", err)
		return err
	}
	places := decimals
	if places < 0 {
		places = cfg.Display.Decimals
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Format(places))
	return nil
}
