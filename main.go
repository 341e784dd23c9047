// =============================================================================
// AGS Data Validator - Main Entry Point
// =============================================================================
//
// This is the main entry point for the AGS Data Validator CLI. It hands
// control to the Cobra commands in the cmd package.
//
// USAGE:
//   agsval validate FILE|DIR...  - Validate AGS4 data files
//   agsval dictionaries [VERSION] - List the built-in standard dictionaries
//   agsval version               - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Decoder, dictionaries, rule engine, reports
//   - pkg/           : Shared filesystem utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/AGS-data-validator/cmd"
)

func main() {
	cmd.Execute()
}
