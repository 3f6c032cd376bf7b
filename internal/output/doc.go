// Package output renders reports: as plain lines, as a pretty table, as a
// Markdown table or as JSON on the given writer, or as a CSV file saved under
// results/.
package output
