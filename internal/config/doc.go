// Package config resolves ytmdl runtime configuration.
//
// It layers user overrides from the comment-annotated config file under
// ~/.config/ytmdl on top of built-in defaults: platform music-directory
// discovery, line-oriented KEY = "VALUE" parsing, and per-key validation with
// fallback to the default on any missing or invalid entry.
//
// Always obtain settings through a Resolver so downstream code receives
// validated values; Resolve never fails, it only falls back.
package config
