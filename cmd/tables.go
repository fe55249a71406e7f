package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

func TablesCommand() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "List database tables and their columns",
		Flags: []cli.Flag{
			dbURLFlag(),
			&cli.BoolFlag{
				Name:  "columns",
				Usage: "Show column names and types per table",
			},
		},
		Action: func(c *cli.Context) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			defer manager.Close()

			tables, err := manager.ListTables()
			if err != nil {
				return fmt.Errorf("listing tables: %v", err)
			}
			if len(tables) == 0 {
				fmt.Println("No tables found.")
				return nil
			}

			if !c.Bool("columns") {
				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Table", "Columns"})
				table.SetBorder(false)
				table.SetColumnSeparator(" ")

				for _, name := range tables {
					columns, err := manager.TableColumns(name, true)
					if err != nil {
						return fmt.Errorf("reading columns for %s: %v", name, err)
					}
					table.Append([]string{name, fmt.Sprintf("%d", len(columns))})
				}

				table.Render()
				return nil
			}

			for i, name := range tables {
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(name)
				fmt.Println(strings.Repeat("-", len(name)))

				columns, err := manager.TableColumns(name, true)
				if err != nil {
					return fmt.Errorf("reading columns for %s: %v", name, err)
				}
				types, err := manager.ColumnTypes(name)
				if err != nil {
					return fmt.Errorf("reading column types for %s: %v", name, err)
				}

				table := tablewriter.NewWriter(os.Stdout)
				table.SetHeader([]string{"Column", "Type"})
				table.SetBorder(false)
				table.SetColumnSeparator(" ")
				for _, col := range columns {
					table.Append([]string{col, types[col]})
				}
				table.Render()
			}
			return nil
		},
	}
}
