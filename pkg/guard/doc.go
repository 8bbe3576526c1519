// Package guard runs navigation guard queues.
//
// Run executes an ordered list of guards for one transition, stopping at
// the first guard that does not approve. Diff splits the previous and next
// matched record chains into updated, activated and deactivated segments,
// and the extract helpers turn in-component guards of those segments into
// plain route.Guard values bound to their live instances.
//
// ResolveAsync produces the queue step that loads lazy components before
// enter guards run.
package guard
