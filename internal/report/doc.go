// Package report builds the parser's reports from pages of the Python
// documentation site and the PEP index.
//
// Each mode (whats-new, latest-versions, download, pep) is a Func that walks
// one page structure, follows the links it finds one at a time and returns a
// Report whose rows keep the order in which entries appear on the page. The
// pep mode also reconciles the status letter shown in the index against the
// status printed on each PEP page and logs a warning for every disagreement.
package report
