// Package main hosts the ytmdl CLI entrypoint and command graph.
//
// The Cobra-based command tree surfaces configuration scaffolding (init,
// show, path, doctor) and download-archive maintenance. It centralizes
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
