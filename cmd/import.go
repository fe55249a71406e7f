package cmd

import (
	"fmt"

	"github.com/bcre/dbmanager/transfer"

	"github.com/urfave/cli/v2"
)

func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a CSV or JSON file into a database table (wipes existing rows)",
		Flags: []cli.Flag{
			dbURLFlag(),
			&cli.StringFlag{
				Name:     "file",
				Required: true,
				Usage:    "Path to the CSV or JSON file",
			},
			&cli.StringFlag{
				Name:     "table",
				Required: true,
				Usage:    "Target table name",
			},
		},
		Action: func(c *cli.Context) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			defer manager.Close()

			eng := transfer.New(manager)
			result, err := eng.Import(c.String("file"), c.String("table"))
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
}
