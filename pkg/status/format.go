package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/Honglongwu/biopython/pkg/convert"
)

// 📊 FormatSlowConversion formats one line of the slow-conversion report
func FormatSlowConversion(timing convert.Timing) string {
	return fmt.Sprintf("Converting %s took %s",
		timing.Path, color.YellowString("%.1fs", timing.Took.Seconds()))
}

// 🧾 FormatDiagnostics frames captured tool output for a failed file
func FormatDiagnostics(path string, diagnostics []byte) string {
	text := strings.TrimRight(string(diagnostics), "\n")
	if text == "" {
		return fmt.Sprintf("%s failed with no diagnostic output", path)
	}
	return fmt.Sprintf("%s failed, tool output:\n%s", path, text)
}

// 📋 FormatPending formats one entry of the status listing
func FormatPending(action, path string) string {
	return fmt.Sprintf("%s %s", color.CyanString("%-7s", action), path)
}
