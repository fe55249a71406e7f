package cmd

import (
	"fmt"
	"os"

	db "github.com/bcre/dbmanager/database"
	utils "github.com/bcre/dbmanager/internal/utils"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write the dbmanager configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "engine",
				Usage: "Database engine (postgres or mysql)",
				Value: "postgres",
			},
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
			},
			&cli.IntFlag{
				Name:  "port",
				Value: 5432,
			},
			&cli.StringFlag{
				Name:     "user",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "password",
				Usage: "Database password (prompted securely when omitted)",
			},
			&cli.StringFlag{
				Name:     "name",
				Required: true,
				Usage:    "Database name",
			},
			&cli.StringFlag{
				Name:  "sslmode",
				Usage: "Postgres sslmode (defaults to disable)",
			},
		},
		Action: func(c *cli.Context) error {
			password := c.String("password")
			if password == "" {
				fmt.Print("Enter database password: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("reading password: %v", err)
				}
				password = string(raw)
			}

			port := c.Int("port")
			if !c.IsSet("port") && c.String("engine") == "mysql" {
				port = 3306
			}

			cfg := db.Config{
				Engine:   c.String("engine"),
				Host:     c.String("host"),
				Port:     port,
				User:     c.String("user"),
				Password: password,
				Name:     c.String("name"),
				SSLMode:  c.String("sslmode"),
			}

			if _, err := db.NewManager(cfg.Engine); err != nil {
				return err
			}

			if err := utils.WriteConfig(utils.ConfigFileName, cfg); err != nil {
				return err
			}

			fmt.Printf("Created %s for %s database %s\n", utils.ConfigFileName, cfg.Engine, cfg.Name)
			return nil
		},
	}
}
