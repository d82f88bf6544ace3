/*
Package sync keeps a mirror tree consistent with a source tree.

	+----------+   prune    +----------+
	|  Mirror  | <--------- |  Syncer  |
	|   Tree   |   copy     |          |
	+----------+ <--------- +----+-----+
	                             |
	                        +----+-----+
	                        |  Source  |
	                        |   Tree   |
	                        +----------+

🎯 Purpose:
- Removes mirror entries whose source counterpart is gone
- Copies stale or missing files, preserving modification times
- Collects the mirror-tree files that still need the conversion pass

🔄 Flow:
1. Prune pass walks the mirror and deletes orphaned entries
2. Copy pass walks the source, creates directories, copies stale files
3. Freshly copied convertible files are returned as the conversion queue

The mirror tree carries no state of its own: it is always a projection of
the source tree, at worst lagging behind by unconverted files.
*/
package sync
