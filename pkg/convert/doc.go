/*
Package convert runs the external transformation pass over queued files.

	+----------+    Apply     +-------------+
	|  Runner  | -----------> | Transformer |
	| (batch)  | <----------- |  (2to3)     |
	+----+-----+  status/diag +-------------+
	     |
	     | delete on failure or interrupt
	     v
	+----------+
	|  Mirror  |
	|   Tree   |
	+----------+

🎯 Purpose:
- Applies a small pre-pass patch the external tool cannot handle itself
- Invokes the transformation pass per file, once for the main body and
  once for embedded doctest blocks
- Enforces all-or-nothing per file: a failed or interrupted conversion
  never leaves a half-converted file behind

🔄 Flow:
1. ConvertAll sorts the queue so timings and cleanup are deterministic
2. Each file gets the pre-pass patch, then the two Apply calls
3. Nonzero status dumps the captured diagnostics, deletes the file, and
   aborts the batch
4. Cancellation deletes the in-flight file and every file still queued

Diagnostics are buffered per file and only surface on that file's failure,
so a clean batch stays quiet.
*/
package convert
