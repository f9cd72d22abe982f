package cli

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"reflect-registry/internal/plan"
)

// keyRow is one registry key as printed by the keys command.
type keyRow struct {
	Type     string   `json:"type"`
	Key      string   `json:"key,omitempty"`
	Const    string   `json:"const,omitempty"`
	Field    string   `json:"field"`
	FieldTyp string   `json:"field_type,omitempty"`
	Flags    []string `json:"flags,omitempty"`
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [config]",
		Short: "List the registry keys a config produces",
		Long:  "Plan a config and list every key of every registry, hidden keys included. " + configArgsHelp,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runKeys,
	}

	cmd.Flags().Bool(jsonFlagName, false, "print JSON instead of a table")

	return cmd
}

func runKeys(cmd *cobra.Command, args []string) error {
	path := configArgs(args)[0]

	p, err := plan.FromConfigFile(path)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), path, &p.Diagnostics)

	rows := keyRows(p)

	asJSON, err := cmd.Flags().GetBool(jsonFlagName)
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding keys: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		return nil
	}

	renderKeys(cmd, rows)

	return nil
}

func keyRows(p *plan.Plan) []keyRow {
	rows := make([]keyRow, 0)

	for _, tp := range p.Types {
		if tp.Unwrap != nil {
			// Wrappers have no keys; the row names the field they forward to.
			rows = append(rows, keyRow{Type: tp.Name, Field: tp.Unwrap.Field, Flags: []string{"transparent"}})
			continue
		}

		for _, f := range tp.Fields {
			field := f.Name
			if f.Variant != "" {
				field = f.Variant + "." + f.Name
			}

			var flags []string
			if f.Deref {
				flags = append(flags, "deref")
			}

			if f.Pointer {
				flags = append(flags, "pointer")
			}

			rows = append(rows, keyRow{
				Type:     tp.Name,
				Key:      string(f.Key),
				Const:    f.Const,
				Field:    field,
				FieldTyp: f.TypeExpr,
				Flags:    flags,
			})
		}

		for _, key := range tp.Hidden {
			rows = append(rows, keyRow{
				Type:  tp.Name,
				Key:   string(key),
				Field: string(key),
				Flags: []string{"hidden"},
			})
		}
	}

	return rows
}

func renderKeys(cmd *cobra.Command, rows []keyRow) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Type", "Key", "Const", "Field", "Field Type", "Flags"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range rows {
		table.Append([]string{r.Type, r.Key, r.Const, r.Field, r.FieldTyp, strings.Join(r.Flags, ",")})
	}

	table.Render()
}
