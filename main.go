// Package main is the entry point for the arenametrics CLI, which records
// weekly 5-vs-5 matches and computes player and pair statistics.
package main

import "github.com/pable/go-arena-metrics/cmd"

func main() {
	cmd.Execute()
}
