// Package shell provides the interactive menu loop around the transfer
// engine.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bcre/dbmanager/transfer"
)

// Run drives the numbered menu until the user exits or input ends. Operation
// failures are printed and the menu redisplayed; nothing escapes the loop.
func Run(in io.Reader, out io.Writer, eng *transfer.Engine) {
	scanner := bufio.NewScanner(in)

	prompt := func(label string) (string, bool) {
		fmt.Fprint(out, label)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	eng.Confirm = func(path string) bool {
		answer, ok := prompt(fmt.Sprintf("File %s already exists. Do you want to replace it? (y/n): ", path))
		return ok && strings.EqualFold(answer, "y")
	}

	for {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Database File Manager")
		fmt.Fprintln(out, "1. Import File to Database")
		fmt.Fprintln(out, "2. Export Database to File")
		fmt.Fprintln(out, "3. Exit")

		choice, ok := prompt("\nEnter your choice (1-3): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			filePath, ok := prompt("Enter file path (CSV or JSON): ")
			if !ok {
				return
			}
			tableName, ok := prompt("Enter table name: ")
			if !ok {
				return
			}
			result, err := eng.Import(filePath, tableName)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			} else {
				fmt.Fprintln(out, result)
			}

		case "2":
			tableName, ok := prompt("Enter table name: ")
			if !ok {
				return
			}
			filePath, ok := prompt("Enter file path (CSV or JSON): ")
			if !ok {
				return
			}
			result, err := eng.Export(tableName, filePath)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
			} else {
				fmt.Fprintln(out, result)
			}

		case "3":
			fmt.Fprintln(out, "Goodbye!")
			return

		default:
			fmt.Fprintln(out, "Invalid choice. Please try again.")
		}
	}
}
