package cmd

import (
	"fmt"

	db "github.com/bcre/dbmanager/database"

	"github.com/urfave/cli/v2"
)

// webAppTables is the listings application schema, in dependency order so
// foreign keys resolve at creation time.
func webAppTables() []db.Table {
	return []db.Table{
		{
			Name: "realtors",
			Columns: []db.Column{
				{Name: "id", Type: "serial", IsPrimary: true},
				{Name: "name", Type: "varchar(200)"},
				{Name: "photo", Type: "varchar(255)"},
				{Name: "description", Type: "text", Nullable: true},
				{Name: "phone", Type: "varchar(20)"},
				{Name: "email", Type: "varchar(50)"},
				{Name: "is_mvp", Type: "boolean", Default: "false"},
				{Name: "hire_date", Type: "timestamp", Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "listings",
			Columns: []db.Column{
				{Name: "id", Type: "serial", IsPrimary: true},
				{Name: "realtor_id", Type: "integer", ForeignKey: &db.ForeignKey{Table: "realtors", Column: "id"}},
				{Name: "title", Type: "varchar(200)"},
				{Name: "address", Type: "varchar(200)"},
				{Name: "city", Type: "varchar(100)"},
				{Name: "state", Type: "varchar(100)"},
				{Name: "zipcode", Type: "varchar(20)"},
				{Name: "description", Type: "text", Nullable: true},
				{Name: "price", Type: "integer"},
				{Name: "bedrooms", Type: "integer"},
				{Name: "bathrooms", Type: "numeric(2,1)"},
				{Name: "garage", Type: "integer", Default: "0"},
				{Name: "sqft", Type: "integer"},
				{Name: "lot_size", Type: "numeric(5,1)"},
				{Name: "photo_main", Type: "varchar(255)"},
				{Name: "photo_1", Type: "varchar(255)", Nullable: true},
				{Name: "photo_2", Type: "varchar(255)", Nullable: true},
				{Name: "photo_3", Type: "varchar(255)", Nullable: true},
				{Name: "photo_4", Type: "varchar(255)", Nullable: true},
				{Name: "photo_5", Type: "varchar(255)", Nullable: true},
				{Name: "photo_6", Type: "varchar(255)", Nullable: true},
				{Name: "is_published", Type: "boolean", Default: "true"},
				{Name: "list_date", Type: "timestamp", Default: "CURRENT_TIMESTAMP"},
			},
		},
		{
			Name: "contacts",
			Columns: []db.Column{
				{Name: "id", Type: "serial", IsPrimary: true},
				{Name: "listing", Type: "varchar(200)"},
				{Name: "listing_id", Type: "integer"},
				{Name: "name", Type: "varchar(200)"},
				{Name: "email", Type: "varchar(100)"},
				{Name: "phone", Type: "varchar(100)"},
				{Name: "message", Type: "text", Nullable: true},
				{Name: "contact_date", Type: "timestamp", Default: "CURRENT_TIMESTAMP"},
				{Name: "user_id", Type: "integer", Nullable: true},
			},
		},
	}
}

func BootstrapCommand() *cli.Command {
	return &cli.Command{
		Name:  "bootstrap",
		Usage: "Create the listings application tables (realtors, listings, contacts) when missing",
		Flags: []cli.Flag{dbURLFlag()},
		Action: func(c *cli.Context) error {
			manager, err := openManager(c)
			if err != nil {
				return err
			}
			defer manager.Close()

			for _, table := range webAppTables() {
				exists, err := manager.TableExists(table.Name)
				if err != nil {
					return err
				}
				if exists {
					fmt.Printf("Table %s already exists, skipping\n", table.Name)
					continue
				}
				if err := manager.CreateTable(table); err != nil {
					return err
				}
				fmt.Printf("Created table %s\n", table.Name)
			}
			return nil
		},
	}
}
