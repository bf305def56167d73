// Package pipeline coordinates the episode production stages.
//
// The orchestrator is an explicit state machine: fetch the source text,
// generate the script, fan the four script-dependent stages out in
// parallel, join on all of them, validate each result in a fixed order,
// package the artifacts, and report accumulated usage. Every state has
// one FAIL edge, driven by the validation gate: the operator chooses
// between restarting the whole run and terminating, never resuming a
// partial episode.
//
// Stage results are typed Result values (ok, empty, or contained
// failure); the stage executor gives every remote call uniform logging
// and error containment. Generation errors are absorbed; any other error
// aborts the process.
package pipeline
