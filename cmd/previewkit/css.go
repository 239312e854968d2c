package main

import (
	"fmt"

	"github.com/aretw0/previewkit/internal/presentation/tui"
	"github.com/aretw0/previewkit/pkg/css"
	"github.com/spf13/cobra"
)

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print CSS declarations built by the padding helpers",
}

// sideCommand wires a single-value helper such as css.PaddingTop.
func sideCommand(name string, set func(css.StyleBuilder, css.Numeric)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " VALUE",
		Short: fmt.Sprintf("Print a %s declaration", name),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := css.ParseNumeric(args[0])
			if err != nil {
				return err
			}
			var style css.Style
			set(&style, v)
			printStyle(cmd, &style)
			return nil
		},
	}
}

var paddingCmd = &cobra.Command{
	Use:     "padding VALUE...",
	Short:   "Print a padding shorthand declaration",
	Example: "  previewkit css padding 10px 20px",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make([]css.Numeric, 0, len(args))
		for _, a := range args {
			v, err := css.ParseNumeric(a)
			if err != nil {
				return err
			}
			values = append(values, v)
		}
		var style css.Style
		css.Padding(&style, values...)
		printStyle(cmd, &style)
		return nil
	},
}

var cssParseCmd = &cobra.Command{
	Use:     "parse STYLE",
	Short:   "Parse an inline style attribute and print its declarations",
	Example: `  previewkit css parse "padding: 4px; padding-left: 8px !important"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		style, err := css.ParseInline(args[0])
		if err != nil {
			return err
		}
		printStyle(cmd, style)
		return nil
	},
}

func printStyle(cmd *cobra.Command, style *css.Style) {
	out := cmd.OutOrStdout()
	tui.PrintDeclarations(tui.NewOutput(out, isTerminal(out)), style.Declarations())
}

func init() {
	rootCmd.AddCommand(cssCmd)

	cssCmd.AddCommand(paddingCmd)
	cssCmd.AddCommand(sideCommand("padding-top", css.PaddingTop))
	cssCmd.AddCommand(sideCommand("padding-right", css.PaddingRight))
	cssCmd.AddCommand(sideCommand("padding-bottom", css.PaddingBottom))
	cssCmd.AddCommand(sideCommand("padding-left", css.PaddingLeft))
	cssCmd.AddCommand(cssParseCmd)
}
