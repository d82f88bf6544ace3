/*
Package operation orchestrates synchronization and conversion over the
configured subtrees.

	+----------+     +--------+     +---------+
	| Operator | --> | Syncer | --> | Runner  |
	| (per     |     | (copy/ |     | (2to3   |
	| subtree) |     | prune) |     | batch)  |
	+----------+     +--------+     +---------+

🎯 Purpose:
- Run: synchronize each subtree, then convert its stale files
- Status: report pending work without mutating anything
- Clean: drop the whole mirror tree for the configured tag

Everything is strictly sequential: one subtree at a time, one file at a
time, so interrupt cleanup and the reported order of events stay
deterministic.
*/
package operation
