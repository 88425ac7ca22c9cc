// Package compare implements the workspace comparison core: it classifies
// per-repository git facts against a manifest, builds table entries, renders
// them through a width-adaptive table, and assembles a contextual legend.
package compare
