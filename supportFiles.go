// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"os"
	"path/filepath"
)

// checkSupportFiles verifies that each name exists relative to baseDir.
// Absolute names are checked as is.
func checkSupportFiles(baseDir string, names []string) error {
	for _, name := range names {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, name)
		}

		if _, err := os.Stat(path); err != nil {
			return &MissingFileError{
				Path: path,
				Err:  err,
			}
		}
	}

	return nil
}
