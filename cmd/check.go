package cmd

import (
	"errors"
	"fmt"

	db "github.com/bcre/dbmanager/database"

	"github.com/urfave/cli/v2"
)

func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Verify the database connection",
		Flags: []cli.Flag{dbURLFlag()},
		Action: func(c *cli.Context) error {
			cfg, err := resolveConfig(c)
			if err != nil {
				return err
			}

			manager, err := db.NewManager(cfg.Engine)
			if err != nil {
				return err
			}
			if err := manager.Connect(cfg); err != nil {
				return fmt.Errorf("connecting to database: %v", err)
			}
			defer manager.Close()

			ok, message := manager.CheckConnection()
			fmt.Println(message)
			if !ok {
				return errors.New("connection check failed")
			}
			return nil
		},
	}
}
