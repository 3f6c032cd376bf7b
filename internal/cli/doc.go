// Package cli implements the command-line interface for pydocs.
//
// The cli package provides the Cobra root command that loads configuration,
// sets up logging, the HTTP cache and file storage, runs the selected report
// mode and hands the result to the output writer.
package cli
