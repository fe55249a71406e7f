package cmd

import (
	"os"

	"github.com/bcre/dbmanager/shell"
	"github.com/bcre/dbmanager/transfer"

	"github.com/urfave/cli/v2"
)

func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Interactive import/export menu",
		Flags: []cli.Flag{dbURLFlag()},
		Action: func(c *cli.Context) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			defer manager.Close()

			shell.Run(os.Stdin, os.Stdout, transfer.New(manager))
			return nil
		},
	}
}
