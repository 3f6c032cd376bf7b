// Package storage persists files produced by the parser: downloaded
// documentation archives under downloads/ and saved reports under results/.
package storage
