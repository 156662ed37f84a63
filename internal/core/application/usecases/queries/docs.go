// Package queries contains the read side. Handlers read straight from the
// database or pure domain tables and never go through a unit of work.
package queries
