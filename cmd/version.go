// =============================================================================
// AGS Data Validator - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   agsval version
//
// OUTPUT:
//   AGS Data Validator
//   Version:      1.0.0
//   Build Date:   2026-01-01
//   Go Version:   go1.24.0
//   Dictionaries: 4.0.3, 4.0.4, 4.1 (default 4.1)
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/AGS-data-validator/internal/dictionary"
)

// These variables are set at build time using ldflags:
//   go build -ldflags "-X 'github.com/ginjaninja78/AGS-data-validator/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, Go runtime version and the built-in dictionaries.`,
	Run: func(cmd *cobra.Command, args []string) {
		versions := make([]string, len(dictionary.Versions))
		for i, v := range dictionary.Versions {
			versions[i] = v.String()
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "AGS Data Validator")
		fmt.Fprintf(out, "Version:      %s\n", Version)
		fmt.Fprintf(out, "Build Date:   %s\n", BuildDate)
		fmt.Fprintf(out, "Go Version:   %s\n", runtime.Version())
		fmt.Fprintf(out, "Dictionaries: %s (default %s)\n", strings.Join(versions, ", "), dictionary.Default)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
