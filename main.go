package main

import (
	"log"
	"os"

	"github.com/bcre/dbmanager/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "dbmanager",
		Usage: "Import and export database tables as CSV or JSON files",
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.CheckCommand(),
			cmd.TablesCommand(),
			cmd.BootstrapCommand(),
			cmd.ImportCommand(),
			cmd.ExportCommand(),
			cmd.ShellCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
