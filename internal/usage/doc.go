// Package usage tracks the billed units of a pipeline run (chat tokens,
// speech characters, generated images) and carries the price constants the
// cost report is rendered from.
package usage
