// Package menu is the interactive text front end of the league tracker.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"

	"pingpong/internal/league"
	"pingpong/internal/tracker"
)

const banner = "<><><><><><><><><><><><><><><><><><><><><><><><>"

// Options configures a Menu.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Color bool
	// Clear enables clearing the screen before each page.
	Clear bool
	// DateFormat is a strftime pattern for the default match date.
	DateFormat string
	Now        func() time.Time
}

// Menu drives the tracker from line-based input.
type Menu struct {
	t          *tracker.Tracker
	in         *bufio.Reader
	out        io.Writer
	st         style
	clear      bool
	dateFormat string
	now        func() time.Time
	eof        bool
}

// New creates a menu over t.
func New(t *tracker.Tracker, opts Options) *Menu {
	m := &Menu{
		t:          t,
		in:         bufio.NewReader(opts.In),
		out:        opts.Out,
		st:         style{enabled: opts.Color},
		clear:      opts.Clear,
		dateFormat: opts.DateFormat,
		now:        opts.Now,
	}
	if m.dateFormat == "" {
		m.dateFormat = "%d/%m/%Y"
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Run shows the menu until the user exits or input ends, then saves. The
// returned error is the save error, if any.
func (m *Menu) Run() error {
	for {
		m.clearScreen()
		m.printMainMenu()
		line, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.exit()
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			m.println(m.st.red("\nInvalid input! Please enter a number."))
			m.pause("\nPress Enter to continue...")
			continue
		}
		switch choice {
		case 1:
			m.page("Add Match")
			m.addMatch()
		case 2:
			m.page("Player Rankings")
			m.showRankings()
		case 3:
			m.page("Player History")
			m.showHistory()
		case 0:
			return m.exit()
		default:
			m.println(m.st.red("\nInvalid option! Please try again."))
			m.pause("\nPress Enter to continue...")
		}
	}
}

func (m *Menu) printMainMenu() {
	m.println(banner)
	m.printf("  %s\n", m.st.purple("TABLE TENNIS MATCH MANAGER"))
	m.println(banner)
	m.printf("%sAdd New Match\n", m.st.blue(" 1. "))
	m.printf("%sView Player Rankings\n", m.st.blue(" 2. "))
	m.printf("%sView Player History\n", m.st.blue(" 3. "))
	m.printf("%sExit Program\n", m.st.blue(" 0. "))
	m.println(banner)
}

func (m *Menu) page(title string) {
	m.clearScreen()
	m.println(m.st.header("~~~~~~~~ " + title + " ~~~~~~~~"))
}

func (m *Menu) addMatch() {
	today := strftime.Format(m.dateFormat, m.now())
	date, ok := m.prompt(fmt.Sprintf("Match date [%s]: ", today))
	if !ok {
		return
	}
	if strings.TrimSpace(date) == "" {
		date = today
	}

	var match league.Match
	match.Date = date
	if match.Player1, ok = m.prompt(fmt.Sprintf("Player 1 full name (max %d characters): ", league.MaxNameLen)); !ok {
		return
	}
	if match.Score1, ok = m.promptScore("Player 1 score (0-21): "); !ok {
		return
	}
	if match.Player2, ok = m.prompt(fmt.Sprintf("Player 2 full name (max %d characters): ", league.MaxNameLen)); !ok {
		return
	}
	if match.Score2, ok = m.promptScore("Player 2 score (0-21): "); !ok {
		return
	}

	if _, err := m.t.AddMatch(match); err != nil {
		m.println(m.st.red("Error: " + describe(err)))
		m.pause("\nPress Enter to return...")
		return
	}
	m.println(m.st.green("\nMatch added successfully!"))
	m.pause("Press Enter to return...")
}

func (m *Menu) promptScore(label string) (int, bool) {
	for {
		line, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		score, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil && score >= 0 && score <= league.MaxScore {
			return score, true
		}
		m.println(m.st.red("Invalid score. Try again."))
	}
}

var fieldLabels = map[string]string{
	"player1": "Player 1 name",
	"player2": "Player 2 name",
	"score1":  "Player 1 score",
	"score2":  "Player 2 score",
	"date":    "Match date",
}

func describe(err error) string {
	var verr *league.ValidationError
	switch {
	case errors.As(err, &verr):
		if label, ok := fieldLabels[verr.Field]; ok {
			return label + ": " + verr.Message
		}
		return verr.Message
	case errors.Is(err, league.ErrPlayerCapacity):
		return "player storage is full!"
	case errors.Is(err, league.ErrCapacity):
		return "match storage is full!"
	}
	return err.Error()
}

func (m *Menu) showRankings() {
	players := m.t.Rankings()
	if len(players) == 0 {
		m.println("No players recorded yet.")
		m.pause("\nPress Enter to return...")
		return
	}

	m.println("\nRank | Player          | Wins | Losses | Matches")
	m.println("-----|-----------------|------|--------|--------")
	for i, p := range players {
		name := fmt.Sprintf("%-15s", p.Name)
		if i == 0 {
			name = m.st.yellow(name)
		}
		m.printf("%-4s | %s | %s | %s | %-6d\n",
			humanize.Ordinal(i+1),
			name,
			m.st.pink(fmt.Sprintf("%-4d", p.Wins)),
			m.st.gray(fmt.Sprintf("%-6d", p.Losses)),
			p.MatchesPlayed)
	}
	m.pause("\nPress Enter to return...")
}

func (m *Menu) showHistory() {
	if len(m.t.Players()) == 0 {
		m.println(m.st.red("No players recorded yet."))
		m.pause("\nPress Enter to return...")
		return
	}
	name, ok := m.prompt("Enter player name: ")
	if !ok {
		return
	}
	summary, err := m.t.History(name)
	if errors.Is(err, league.ErrNotFound) {
		m.println(m.st.red("\nPlayer not found!"))
		m.pause("\nPress Enter to return...")
		return
	}
	if err != nil {
		m.println(m.st.red("Error: " + err.Error()))
		m.pause("\nPress Enter to return...")
		return
	}

	p := summary.Player
	m.printf("\nPlayer: %s\n", p.Name)
	m.printf("Wins: %d | Losses: %d | Matches Played: %d\n", p.Wins, p.Losses, p.MatchesPlayed)
	m.println("\nMatch History:")
	if len(summary.Matches) == 0 {
		m.println(m.st.red("No matches recorded for this player."))
	}
	for _, e := range summary.Matches {
		score1, score2 := m.st.gray(strconv.Itoa(e.Match.Score1)), m.st.pink(strconv.Itoa(e.Match.Score2))
		if e.Match.Player1Won() {
			score1, score2 = m.st.pink(strconv.Itoa(e.Match.Score1)), m.st.gray(strconv.Itoa(e.Match.Score2))
		}
		result := "L"
		if e.Won {
			result = "W"
		}
		m.printf("- [%s] %s %s %s vs %s %s\n", result, e.Match.Date, e.Match.Player1, score1, e.Match.Player2, score2)
	}
	m.pause("\nPress Enter to return...")
}

func (m *Menu) exit() error {
	m.clearScreen()
	m.println(m.st.header("~~~~~~~~ Exiting Program ~~~~~~~~"))
	if err := m.t.Save(); err != nil {
		m.println(m.st.red("Error: Could not save league data: " + err.Error()))
		return err
	}
	m.println(m.st.green("League data saved successfully."))
	m.println(m.st.green("\nThank you for using Table Tennis Manager!"))
	m.printf("Goodbye!\n\n")
	return nil
}

// prompt prints label and reads one line without its terminator. ok is
// false once input is exhausted.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	return m.readLine()
}

func (m *Menu) pause(label string) {
	m.printf("%s", label)
	m.readLine()
}

func (m *Menu) readLine() (string, bool) {
	if m.eof {
		return "", false
	}
	line, err := m.in.ReadString('\n')
	if err != nil {
		m.eof = true
		if line == "" {
			return "", false
		}
	}
	return strings.TrimRight(line, "\r\n"), true
}

func (m *Menu) clearScreen() {
	if m.clear {
		m.printf("%s", clearSeq)
	}
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
