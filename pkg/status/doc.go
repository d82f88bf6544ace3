/*
Package status provides user-friendly console reporting for do2to3.

🎯 Purpose:
- Prints per-file progress (updated, current, removed, converting)
- Dumps the captured tool diagnostics when a conversion fails
- Reports the slowest conversions of a batch

📝 Design Philosophy:
Every event goes to two places: pterm for the human watching the terminal,
and zerolog for anyone debugging with --debug. Success output stays terse;
failure output carries everything needed to act on it.
*/
package status
