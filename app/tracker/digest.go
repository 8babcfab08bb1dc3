package tracker

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/runlog"
)

const (
	headerSeparator = "===================="
	entrySeparator  = "--------------------"
	quietDayLine    = "🍵 No updates today."
)

// digestZone pins "today" to a UTC+8 calendar date regardless of the
// host timezone, so a digest fired from any server reports the same
// day the audience lives in.
var digestZone = time.FixedZone("UTC+8", 8*60*60)

// Digest computes today's episode updates and delivers the rendered
// report. Outcome is always recorded in the run log, independent of
// notifier success.
type Digest struct {
	episodes   database.EpisodeRepository
	notifier   Notifier
	runLog     *runlog.Logger
	reportFile string
	now        func() time.Time
}

func NewDigest(episodes database.EpisodeRepository, notifier Notifier,
	runLog *runlog.Logger, reportFile string) *Digest {
	return &Digest{
		episodes:   episodes,
		notifier:   notifier,
		runLog:     runLog,
		reportFile: reportFile,
		now:        time.Now,
	}
}

// SetNowFunc overrides the clock, used by tests
func (d *Digest) SetNowFunc(fn func() time.Time) {
	if fn == nil {
		d.now = time.Now
		return
	}
	d.now = fn
}

// Today returns the current calendar date in the fixed UTC+8 offset
func (d *Digest) Today() string {
	return d.now().In(digestZone).Format("2006-01-02")
}

// Run generates and delivers the daily digest. The notifier is always
// invoked, even on a quiet day; a delivery failure is logged and
// swallowed. The returned error covers the store query only.
func (d *Digest) Run() error {
	today := d.Today()
	d.runLog.Printf("daily digest check started for %s", today)

	entries, err := d.episodes.GetEpisodesByAirDate(today)
	if err != nil {
		d.runLog.Printf("daily digest failed: %v", err)
		return fmt.Errorf("failed to query today's episodes: %w", err)
	}

	report := BuildReport(today, entries)

	if d.reportFile != "" {
		if err := os.WriteFile(d.reportFile, []byte(report), 0o644); err != nil {
			slog.Warn("Failed to write report file", "path", d.reportFile, "error", err)
		}
	}

	if err := d.notifier.Send(report); err != nil {
		slog.Warn("Digest delivery failed", "error", err)
		d.runLog.Printf("daily digest for %s: %d update(s), delivery failed: %v", today, len(entries), err)
		return nil
	}

	d.runLog.Printf("daily digest for %s: %d update(s), delivered", today, len(entries))
	slog.Info("Daily digest sent", "date", today, "updates", len(entries))
	return nil
}

// BuildReport renders the digest message. Entries are ordered by the
// time-of-day value of their release-time hint; unknown hints last.
func BuildReport(date string, entries []database.DigestEntry) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>%s Episode Digest</b>\n", date))
	sb.WriteString(headerSeparator + "\n")

	if len(entries) == 0 {
		sb.WriteString(quietDayLine)
		return sb.String()
	}

	sorted := make([]database.DigestEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return releaseTimeMinutes(sorted[i].ResourceTime) < releaseTimeMinutes(sorted[j].ResourceTime)
	})

	for _, entry := range sorted {
		line := fmt.Sprintf("⏰ <code>[%s]</code> <b>%s</b>\n   S%dE%d",
			entry.ResourceTime, entry.ShowName, entry.Season, entry.Episode)
		if entry.Title != "" {
			line += " - " + entry.Title
		}
		sb.WriteString(line + "\n")
		sb.WriteString(entrySeparator + "\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
