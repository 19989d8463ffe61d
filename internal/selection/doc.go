// Package selection parses the tri-state symbol toggles submitted by the
// browsing page.
//
// Each token has the form "<status>:<symbol>". Status "Y" requires the
// symbol to be true, "N" requires it to be false, and any other status
// leaves the symbol unconstrained. Malformed tokens are skipped rather than
// failing the whole selection.
package selection
