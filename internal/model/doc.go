package model

// Package model defines the domain values shared by the download engine and
// its front ends: output formats, progress events, terminal outcomes, the
// renderable download state, and history entries. Values are immutable and
// state changes go through explicit transition methods.
