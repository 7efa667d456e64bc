// Package diag defines the diagnostic model shared by every karst analysis
// phase: severities, stable numeric codes, the Diagnostic value with notes
// and fix suggestions, the Reporter emission contract and the Bag collector.
//
// Phases never print; they report through a Reporter and continue. Rendering
// and policy (dedup, limits, colors) belong to the caller.
package diag
