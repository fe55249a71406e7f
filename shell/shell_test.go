package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bcre/dbmanager/transfer"

	"github.com/stretchr/testify/assert"
)

func TestInvalidChoiceReprintsMenu(t *testing.T) {
	var out bytes.Buffer
	Run(strings.NewReader("5\n3\n"), &out, transfer.New(nil))

	output := out.String()
	assert.Contains(t, output, "Invalid choice. Please try again.")
	assert.Contains(t, output, "Goodbye!")
	assert.Equal(t, 2, strings.Count(output, "Database File Manager"),
		"menu shown again after an invalid choice")
}

func TestExitImmediately(t *testing.T) {
	var out bytes.Buffer
	Run(strings.NewReader("3\n"), &out, transfer.New(nil))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestEndOfInputStopsLoop(t *testing.T) {
	var out bytes.Buffer
	Run(strings.NewReader(""), &out, transfer.New(nil))
	assert.Contains(t, out.String(), "Enter your choice (1-3): ")
}

func TestImportErrorIsPrintedAndLoopContinues(t *testing.T) {
	var out bytes.Buffer
	// missing file fails validation before any database access
	Run(strings.NewReader("1\n/no/such/file.csv\nrealtors\n3\n"), &out, transfer.New(nil))

	output := out.String()
	assert.Contains(t, output, "Error: file does not exist")
	assert.Contains(t, output, "Goodbye!")
}

func TestExportUnsupportedExtensionError(t *testing.T) {
	var out bytes.Buffer
	Run(strings.NewReader("2\nrealtors\nout.txt\n3\n"), &out, transfer.New(nil))

	output := out.String()
	assert.Contains(t, output, "only CSV and JSON files are supported")
	assert.Contains(t, output, "Goodbye!")
}
