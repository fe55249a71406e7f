package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bcre/dbmanager/transfer"

	"github.com/urfave/cli/v2"
)

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a database table to a CSV or JSON file",
		Flags: []cli.Flag{
			dbURLFlag(),
			&cli.StringFlag{
				Name:     "table",
				Required: true,
				Usage:    "Source table name",
			},
			&cli.StringFlag{
				Name:     "file",
				Required: true,
				Usage:    "Destination path (.csv or .json)",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite the destination without asking",
			},
		},
		Action: func(c *cli.Context) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			defer manager.Close()

			eng := transfer.New(manager)
			if !c.Bool("force") {
				reader := bufio.NewReader(os.Stdin)
				eng.Confirm = func(path string) bool {
					fmt.Printf("File %s already exists. Do you want to replace it? (y/n): ", path)
					answer, err := reader.ReadString('\n')
					if err != nil {
						return false
					}
					return strings.EqualFold(strings.TrimSpace(answer), "y")
				}
			}

			result, err := eng.Export(c.String("table"), c.String("file"))
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
}
