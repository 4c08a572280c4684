// The admin viewer is a terminal client for browsing submitted booking
// requests. It talks to the booking API over HTTP, shows the newest requests
// first and remembers the configured API base URL between runs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/slauto/shopbooking/internal/domain"
)

const defaultBaseURL = "http://localhost:3000"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(16)
	detailStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// clientConfig is the admin viewer's locally persisted state. It is a
// convenience cache, not part of the booking system of record.
type clientConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
}

func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shopbooking", "admin.yaml"), nil
}

func loadClientConfig() clientConfig {
	cfg := clientConfig{APIBaseURL: defaultBaseURL}
	path, err := configPath()
	if err != nil {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	_ = yaml.Unmarshal(data, &cfg)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultBaseURL
	}
	return cfg
}

func saveClientConfig(cfg clientConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type listResponse struct {
	OK       bool             `json:"ok"`
	Bookings []domain.Booking `json:"bookings"`
	Error    string           `json:"error"`
}

type bookingsLoadedMsg []domain.Booking

type loadFailedMsg struct {
	err error
}

func fetchBookings(baseURL string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/api/bookings")
		if err != nil {
			return loadFailedMsg{err: fmt.Errorf("could not reach booking API: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return loadFailedMsg{err: fmt.Errorf("booking API returned %s", resp.Status)}
		}

		var payload listResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return loadFailedMsg{err: fmt.Errorf("decode bookings: %w", err)}
		}
		return bookingsLoadedMsg(payload.Bookings)
	}
}

type model struct {
	baseURL    string
	table      table.Model
	bookings   []domain.Booking
	showDetail bool
	loading    bool
	loadedAt   time.Time
	err        error
}

func newModel(baseURL string) model {
	columns := []table.Column{
		{Title: "Created", Width: 24},
		{Title: "Name", Width: 20},
		{Title: "Vehicle", Width: 22},
		{Title: "Service", Width: 30},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return model{baseURL: baseURL, table: t, loading: true}
}

func (m model) Init() tea.Cmd {
	return fetchBookings(m.baseURL)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.err = nil
			return m, fetchBookings(m.baseURL)
		case "enter":
			if !m.showDetail && len(m.bookings) > 0 {
				m.showDetail = true
			}
			return m, nil
		case "esc":
			m.showDetail = false
			return m, nil
		}

	case bookingsLoadedMsg:
		m.loading = false
		m.loadedAt = time.Now()
		m.bookings = msg
		m.table.SetRows(tableRows(msg))
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil
	}

	if !m.showDetail {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func tableRows(bookings []domain.Booking) []table.Row {
	rows := make([]table.Row, 0, len(bookings))
	for _, b := range bookings {
		vehicle := strings.TrimSpace(fmt.Sprintf("%s %s %s", b.Year, b.Make, b.Model))
		rows = append(rows, table.Row{b.CreatedAt, b.Name, vehicle, b.ServiceType, b.PreferredDate})
	}
	return rows
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SL Auto - booking requests"))
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(errorStyle.Render(m.err.Error()))
	case m.loading:
		sb.WriteString(statusStyle.Render("loading bookings from " + m.baseURL + "..."))
	case m.showDetail:
		sb.WriteString(m.detailView())
	default:
		sb.WriteString(m.table.View())
		sb.WriteString("\n")
		status := fmt.Sprintf("%d requests, loaded %s from %s",
			len(m.bookings), m.loadedAt.Format("15:04:05"), m.baseURL)
		sb.WriteString(statusStyle.Render(status))
	}

	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("enter: details | esc: back | r: refresh | q: quit"))
	return sb.String()
}

func (m model) detailView() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.bookings) {
		return statusStyle.Render("nothing selected")
	}
	b := m.bookings[cursor]

	line := func(label, value string) string {
		if value == "" {
			value = "-"
		}
		return labelStyle.Render(label) + value + "\n"
	}

	var sb strings.Builder
	sb.WriteString(line("ID", b.ID))
	sb.WriteString(line("Created", b.CreatedAt))
	sb.WriteString(line("Status", b.Status))
	sb.WriteString(line("Source", b.Source))
	sb.WriteString(line("Name", b.Name))
	sb.WriteString(line("Phone", b.Phone))
	sb.WriteString(line("Email", b.Email))
	sb.WriteString(line("Contact via", b.ContactMethod))
	sb.WriteString(line("Vehicle", strings.TrimSpace(fmt.Sprintf("%s %s %s", b.Year, b.Make, b.Model))))
	sb.WriteString(line("Preferred date", b.PreferredDate))
	sb.WriteString(line("Time window", b.TimeWindow))
	sb.WriteString(line("Service", b.ServiceType))
	sb.WriteString(line("Visit type", b.VisitType))
	sb.WriteString(line("Urgency", b.Urgency))
	if b.Concern != "" {
		sb.WriteString("\n" + b.Concern + "\n")
	}
	return detailStyle.Render(sb.String())
}

func main() {
	cfg := loadClientConfig()

	apiFlag := flag.String("api", "", "booking API base URL (persisted for next run)")
	flag.Parse()

	if *apiFlag != "" {
		cfg.APIBaseURL = strings.TrimSpace(*apiFlag)
		if err := saveClientConfig(cfg); err != nil {
			log.Printf("could not save admin config: %v", err)
		}
	}

	program := tea.NewProgram(newModel(cfg.APIBaseURL), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("admin viewer error: %v", err)
	}
}
