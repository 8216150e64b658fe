package cmd

import (
	"bytes"
	"io"
	"log"

	"github.com/spf13/cobra"
)

// CommandRunner executes cmd and returns everything it printed. The server
// subcommands report through the standard log package, so that is redirected
// into the same buffer as cobra's own output.
func CommandRunner(cmd *cobra.Command) (string, error) {

	b := bytes.NewBufferString("")
	log.SetOutput(b)
	cmd.SetOut(b)
	cmd.SetErr(b)

	err := cmd.Execute()
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(b)

	return string(out), err
}
