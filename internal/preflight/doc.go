// Package preflight provides readiness checks for the filesystem locations
// ytmdl depends on.
//
// The CLI "config doctor" command runs the individual check functions to
// display environment health before a download session: config file present,
// song directory usable, and enough free disk space for audio output.
package preflight
