// Package shell implements the interactive text menu. Every action is
// best effort: failures surface as a generic message and return the
// user to the menu, never terminating the session.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/xc9973/tv-tracker/app/database"
	"github.com/xc9973/tv-tracker/app/tracker"
)

var (
	cyan      = color.New(color.FgCyan).SprintFunc()
	green     = color.New(color.FgGreen).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
	redBold   = color.New(color.FgRed, color.Bold).SprintFunc()
	blueBold  = color.New(color.FgBlue, color.Bold).SprintFunc()
	greenBold = color.New(color.FgGreen, color.Bold).SprintFunc()
)

type Shell struct {
	provider   tracker.MetadataProvider
	subscriber *tracker.Subscriber
	syncer     *tracker.Syncer
	digest     *tracker.Digest
	notifier   tracker.Notifier
	board      *tracker.TaskBoard
	shows      database.ShowRepository
	dbPath     string

	in  *bufio.Scanner
	out io.Writer
}

func New(provider tracker.MetadataProvider, subscriber *tracker.Subscriber,
	syncer *tracker.Syncer, digest *tracker.Digest, notifier tracker.Notifier,
	board *tracker.TaskBoard, shows database.ShowRepository, dbPath string,
	in io.Reader, out io.Writer) *Shell {
	return &Shell{
		provider:   provider,
		subscriber: subscriber,
		syncer:     syncer,
		digest:     digest,
		notifier:   notifier,
		board:      board,
		shows:      shows,
		dbPath:     dbPath,
		in:         bufio.NewScanner(in),
		out:        out,
	}
}

// Run loops the menu until the user exits or input is exhausted
func (s *Shell) Run() {
	for {
		fmt.Fprintf(s.out, "\n%s %s\n", cyan("📂 Database:"), s.dbPath)
		fmt.Fprintln(s.out, "1. ➕ Subscribe by TMDB ID")
		fmt.Fprintln(s.out, "2. 🔍 Search by title")
		fmt.Fprintln(s.out, "3. 🚀 Send daily digest")
		fmt.Fprintln(s.out, "4. 🔄 Refresh all shows")
		fmt.Fprintln(s.out, "5. 📋 List subscriptions")
		fmt.Fprintln(s.out, "6. 🔔 Send test notification")
		fmt.Fprintln(s.out, "7. 📌 Pending tasks")
		fmt.Fprintln(s.out, "8. 👋 Exit")

		choice, ok := s.prompt("Choose: ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			s.subscribe()
		case "2":
			s.search()
		case "3":
			s.sendDigest()
		case "4":
			fmt.Fprintln(s.out, yellow("Refreshing all subscriptions..."))
			s.syncer.RefreshAll()
			fmt.Fprintln(s.out, green("Done."))
		case "5":
			s.listShows()
		case "6":
			if err := s.notifier.SendTest(time.Now()); err != nil {
				fmt.Fprintln(s.out, redBold("Test notification failed."))
			} else {
				fmt.Fprintln(s.out, green("Test notification sent."))
			}
		case "7":
			s.pendingTasks()
		case "8", "q", "exit":
			return
		}
	}
}

func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) subscribe() {
	rawID, ok := s.prompt("Enter TMDB ID: ")
	if !ok {
		return
	}

	show, err := s.subscriber.Subscribe(rawID)
	if err != nil {
		fmt.Fprintln(s.out, redBold("Subscription failed."))
		return
	}
	if show == nil {
		fmt.Fprintln(s.out, yellow("Nothing subscribed."))
		return
	}

	fmt.Fprintf(s.out, "%s %s (status: %s)\n", green("✅ Subscribed:"),
		greenBold(show.Name), show.Status)
}

func (s *Shell) search() {
	query, ok := s.prompt("Search title: ")
	if !ok || query == "" {
		return
	}

	results, err := s.provider.Search(query)
	if err != nil || len(results) == 0 {
		fmt.Fprintln(s.out, yellow("No results."))
		return
	}

	fmt.Fprintf(s.out, "%s\n", blueBold("Results:"))
	for i, result := range results {
		if i >= 5 {
			break
		}
		fmt.Fprintf(s.out, "  %s %s (%s)\n", cyan(fmt.Sprintf("[%d]", result.ID)),
			result.Name, result.FirstAirDate)
	}
}

func (s *Shell) sendDigest() {
	if err := s.digest.Run(); err != nil {
		fmt.Fprintln(s.out, redBold("Digest failed."))
		return
	}
	fmt.Fprintln(s.out, green("Digest sent."))
}

func (s *Shell) pendingTasks() {
	dashboard, err := s.board.Dashboard()
	if err != nil {
		fmt.Fprintln(s.out, redBold("Failed to load pending tasks."))
		return
	}

	if len(dashboard.UpdateTasks) == 0 && len(dashboard.OrganizeTasks) == 0 {
		fmt.Fprintln(s.out, yellow("No pending tasks."))
		return
	}

	if len(dashboard.UpdateTasks) > 0 {
		fmt.Fprintf(s.out, "%s\n", blueBold("Episode updates:"))
		for _, task := range dashboard.UpdateTasks {
			fmt.Fprintf(s.out, "  %s %s ⏰ %s  %s\n", cyan(fmt.Sprintf("[%d]", task.ID)),
				greenBold(task.ShowName), task.ResourceTime, task.Description)
		}
	}
	if len(dashboard.OrganizeTasks) > 0 {
		fmt.Fprintf(s.out, "%s\n", blueBold("Organize:"))
		for _, task := range dashboard.OrganizeTasks {
			fmt.Fprintf(s.out, "  %s %s  %s\n", cyan(fmt.Sprintf("[%d]", task.ID)),
				greenBold(task.ShowName), task.Description)
		}
	}

	input, ok := s.prompt("Complete task id (blank to skip): ")
	if !ok || input == "" {
		return
	}
	taskID, err := strconv.ParseInt(input, 10, 64)
	if err != nil || taskID <= 0 {
		fmt.Fprintln(s.out, yellow("Not a task id."))
		return
	}
	if err := s.board.Complete(taskID); err != nil {
		fmt.Fprintln(s.out, redBold("Failed to complete task."))
		return
	}
	fmt.Fprintln(s.out, green("Task completed."))
}

func (s *Shell) listShows() {
	shows, err := s.shows.ListShows()
	if err != nil {
		fmt.Fprintln(s.out, redBold("Failed to list subscriptions."))
		return
	}
	if len(shows) == 0 {
		fmt.Fprintln(s.out, yellow("No subscriptions yet."))
		return
	}

	for _, show := range shows {
		seasons := "?"
		if show.TotalSeasons != nil {
			seasons = fmt.Sprintf("%d", *show.TotalSeasons)
		}
		fmt.Fprintf(s.out, "  %s %s  seasons: %s  status: %s  next: %s  ⏰ %s\n",
			cyan(fmt.Sprintf("[%d]", show.TMDBID)), greenBold(show.Name),
			seasons, show.Status, show.NextAirDate, show.ResourceTime)
	}
}
