package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
)

var dictionariesCmd = &cobra.Command{
	Use:   "dictionaries [VERSION]",
	Short: "List the built-in standard dictionaries",
	Long: `Without arguments, list the built-in standard dictionary editions. With a
VERSION, list the GROUPs that edition defines.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return listDictionaries(cmd.OutOrStdout())
		}
		v, err := dictionary.ParseVersion(args[0])
		if err != nil {
			return err
		}
		return listGroups(cmd.OutOrStdout(), v)
	},
}

func init() {
	rootCmd.AddCommand(dictionariesCmd)
}

func listDictionaries(w io.Writer) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Version", "Groups", "Default"})

	for _, v := range dictionary.Versions {
		d, err := dictionary.Load(v)
		if err != nil {
			return err
		}
		def := ""
		if v == dictionary.Default {
			def = "yes"
		}
		t.AppendRow(table.Row{v.String(), d.Groups().Len(), def})
	}
	t.Render()
	return nil
}

func listGroups(w io.Writer, v dictionary.Version) error {
	d, err := dictionary.Load(v)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(fmt.Sprintf("AGS %s standard dictionary", v))
	t.AppendHeader(table.Row{"Group", "Parent", "Headings", "Description"})
	for _, g := range d.Groups().Groups() {
		t.AppendRow(table.Row{g.Name, g.ParentGroup, len(g.Columns), g.Description})
	}
	t.Render()
	return nil
}
