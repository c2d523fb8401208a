// Package axis resolves chart axis options for clinical-trial analysis views.
//
// Given the raw axis metadata of a study and the view being displayed, the
// package computes the ordered list of selectable options (Expand,
// ExpandWithTrellis), restores a persisted selection (Reconcile) and picks
// the option shown when a view first loads (DefaultX, DefaultY and their
// legacy counterparts).
//
// Timestamp-typed options are expanded against a fixed variant table
// (TimestampVariants): calendar date, days/weeks since first dose, since
// randomisation and since first dose of a drug. Each row carries allow and
// deny lists of views, an optional predicate over the catalog and a drug
// requirement.
//
// Everything here is a pure function of its arguments; the variant and
// policy tables are read-only, so all functions are safe for concurrent use.
package axis
