package dotlink

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/arthur-debert/dotlink/pkg/output/styles"
	"github.com/spf13/cobra"
)

// Execute runs the command line and returns the process exit status.
// Fatal errors are printed to stderr as a single line.
func Execute(rootCmd *cobra.Command, args []string, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var silent silentError
	if !stderrors.As(err, &silent) {
		errorStyle := styles.GetStyle("Error")
		_, _ = fmt.Fprintln(stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}
	return 1
}
