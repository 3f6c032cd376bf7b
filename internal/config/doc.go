// Package config holds the read-only settings shared by every report.
//
// A Config is built once at startup from built-in defaults and an optional
// YAML file, validated, and then passed by pointer into the scraper, the
// report routines and the output writers. Nothing mutates it afterwards.
package config
