// =============================================================================
// AGS Data Validator - File Manager Utility
// =============================================================================
//
// This module provides the filesystem helpers used around a validation run:
//   - Input discovery (files and directories of .ags files)
//   - Output directory management
//   - Output file naming
//   - Read-only existence probes for associated FILE references
//
// Nothing here touches the subject file itself; reading is the decoder's job.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultExtension is the extension of AGS data files.
const DefaultExtension = ".ags"

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles output placement for a validation run.
type FileManager struct {
	// OutputDir is where reports and exports are written. Empty means next
	// to each input file.
	OutputDir string

	// NameFormat is the output file name format, see GenerateOutputFileName.
	NameFormat string
}

// NewFileManager creates a FileManager writing to outputDir.
func NewFileManager(outputDir, nameFormat string) *FileManager {
	if nameFormat == "" {
		nameFormat = "{original}_{timestamp}"
	}
	return &FileManager{
		OutputDir:  outputDir,
		NameFormat: nameFormat,
	}
}

// EnsureOutputDir creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureOutputDir() error {
	if fm.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// OutputPath returns where the output for inputFile with extension ext goes.
//
// PARAMETERS:
//   - inputFile: The validated file.
//   - ext: The output extension including the dot, e.g. ".log". With ""
//     the caller appends its own extensions to a shared base.
//   - params: Extra placeholder values, e.g. "uuid" set to the run ID so
//     that every output of one run carries the same name.
//
// RETURNS:
//   - The full output path.
func (fm *FileManager) OutputPath(inputFile, ext string, params map[string]string) string {
	dir := fm.OutputDir
	if dir == "" {
		dir = filepath.Dir(inputFile)
	}
	values := map[string]string{
		"original": strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile)),
	}
	for k, v := range params {
		values[k] = v
	}
	return filepath.Join(dir, GenerateOutputFileName(fm.NameFormat, ext, values))
}

// =============================================================================
// INPUT DISCOVERY
// =============================================================================

// DiscoverInputFiles expands the given paths. Files are taken as they are;
// directories contribute their files with extension ext (not recursive).
//
// PARAMETERS:
//   - paths: Files and directories named on the command line.
//   - ext: The extension to match in directories, e.g. ".ags".
//
// RETURNS:
//   - The files in argument order, directory contents sorted by name.
//   - An error if a path cannot be read.
func DiscoverInputFiles(paths []string, ext string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ext) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Strings(found)
		files = append(files, found...)
	}
	return files, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Original file name (without extension)
//   - ext: The extension to ensure, including the dot.
//   - params: A map of placeholder values.
//
// EXAMPLE:
//   format: "{original}_{timestamp}"
//   params: {"original": "site"}
//   output: "site_20240115_143022.txt"
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}
	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
