package status

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/Honglongwu/biopython/pkg/convert"
)

// 📢 Reporter is the console voice of the tool. It satisfies the reporting
// interfaces of the sync, convert and operation packages.
type Reporter struct {
	log zerolog.Logger
}

// 🏭 NewReporter creates a reporter bound to the context logger
func NewReporter(ctx context.Context) *Reporter {
	return &Reporter{log: *zerolog.Ctx(ctx)}
}

// 📂 Processing announces work on one subtree
func (r *Reporter) Processing(name string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📂"}).Printf("Processing %s\n", name)
	r.log.Info().Str("subtree", name).Msg("processing subtree")
}

// 🧮 QueueSize announces how many files the batch will convert
func (r *Reporter) QueueSize(n int) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "🧮"}).Printf("Have %d files to convert\n", n)
	r.log.Info().Int("files", n).Msg("conversion queue ready")
}

// 🔄 FileUpdated reports a file copied into the mirror
func (r *Reporter) FileUpdated(path string) {
	pterm.Debug.WithPrefix(pterm.Prefix{Text: "🔄"}).Printf("Updated %s\n", path)
	r.log.Debug().Str("path", path).Msg("updated")
}

// ⏭️ FileCurrent reports a mirror file that was already up to date
func (r *Reporter) FileCurrent(path string) {
	pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️"}).Printf("Current %s\n", path)
	r.log.Debug().Str("path", path).Msg("current")
}

// 🗑️ FileRemoved reports a pruned mirror entry
func (r *Reporter) FileRemoved(path string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "🗑️"}).Printf("Removing %s\n", path)
	r.log.Info().Str("path", path).Msg("removing")
}

// ⚙️ Converting reports the file whose conversion is starting
func (r *Reporter) Converting(path string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "⚙️"}).Printf("Converting %s\n", path)
	r.log.Info().Str("path", path).Msg("converting")
}

// ❌ ConvertFailed dumps the captured diagnostics of a failed conversion
func (r *Reporter) ConvertFailed(path string, diagnostics []byte) {
	pterm.Error.Println(FormatDiagnostics(path, diagnostics))
	r.log.Error().Str("path", path).Msg("conversion failed")
}

// 🛑 Interrupted reports the file that was in flight at cancellation
func (r *Reporter) Interrupted(path string) {
	pterm.Warning.WithPrefix(pterm.Prefix{Text: "🛑"}).Printf("Interrupted during %s\n", path)
	r.log.Warn().Str("path", path).Msg("interrupted")
}

// 🐢 SlowConversions reports the slowest files of a finished batch
func (r *Reporter) SlowConversions(timings []convert.Timing) {
	pterm.Info.Println("Note: slowest files to convert were:")
	for _, timing := range timings {
		pterm.Info.Println(FormatSlowConversion(timing))
		r.log.Info().Str("path", timing.Path).Dur("took", timing.Took).Msg("slow conversion")
	}
}

// 📋 PendingCopy reports a file the next run would copy
func (r *Reporter) PendingCopy(path string) {
	pterm.Info.Println(FormatPending("stale", path))
	r.log.Info().Str("path", path).Msg("pending copy")
}

// 📋 PendingRemoval reports a mirror entry the next run would prune
func (r *Reporter) PendingRemoval(path string) {
	pterm.Info.Println(FormatPending("orphan", path))
	r.log.Info().Str("path", path).Msg("pending removal")
}

// ✅ Cleaned reports a removed mirror tree
func (r *Reporter) Cleaned(path string) {
	pterm.Success.Printf("Removed %s\n", path)
	r.log.Info().Str("path", path).Msg("cleaned")
}
