// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for xsvload, a one-shot loader for
// delimited text files into SQLite and libSQL tables.
package main

import (
	"seedfast/xsvload/cmd"
)

func main() {
	cmd.Execute()
}
