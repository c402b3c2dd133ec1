// Package repository is the data-access layer.
//
// It maps the item operations onto an explicit store handle and
// collapses store-level "not found" into the absent signal the
// handlers branch on.
package repository
