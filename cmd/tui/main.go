package main

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pharmacare/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pharmacare/internal/app"
	"github.com/MrJamesThe3rd/pharmacare/internal/config"
)

type model struct {
	app  *app.App
	name string

	currentView View
	size        tea.WindowSizeMsg

	posView          view.POSModel
	inventoryView    view.InventoryModel
	prescriptionView view.PrescriptionModel
	reportView       view.ReportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu          View = 0
	ViewPOS           View = 1
	ViewInventory     View = 2
	ViewPrescriptions View = 3
	ViewReports       View = 4
	ViewExport        View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; store warnings are dropped.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := app.New(cfg, log)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	return model{
		app:         a,
		name:        cfg.App.Name,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPOS
				m.posView = view.NewPOSModel(m.app.Checkout, m.app.Products, m.app.Customers, m.app.Settings)

				return m, m.open(m.posView.Init())
			case "2":
				m.currentView = ViewInventory
				m.inventoryView = view.NewInventoryModel(m.app.Products, m.app.Gate)

				return m, m.open(m.inventoryView.Init())
			case "3":
				m.currentView = ViewPrescriptions
				m.prescriptionView = view.NewPrescriptionModel(m.app.Prescriptions)

				return m, m.open(m.prescriptionView.Init())
			case "4":
				m.currentView = ViewReports
				m.reportView = view.NewReportModel(m.app.Reports)

				return m, m.open(m.reportView.Init())
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.app.Backup)

				return m, m.open(m.exportView.Init())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPOS:
		var newModel tea.Model
		newModel, cmd = m.posView.Update(msg)
		m.posView = newModel.(view.POSModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewPrescriptions:
		var newModel tea.Model
		newModel, cmd = m.prescriptionView.Update(msg)
		m.prescriptionView = newModel.(view.PrescriptionModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// open starts a freshly built view and replays the last known terminal size to it.
func (m model) open(init tea.Cmd) tea.Cmd {
	if m.size.Height == 0 {
		return init
	}

	size := m.size

	return tea.Batch(init, func() tea.Msg { return size })
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.name + "\n\n" +
				"1. Point of Sale\n" +
				"2. Inventory\n" +
				"3. Prescriptions\n" +
				"4. Sales Reports\n" +
				"5. Export Data\n\n" +
				"q. Quit",
		)
	case ViewPOS:
		return m.posView.View()
	case ViewInventory:
		return m.inventoryView.View()
	case ViewPrescriptions:
		return m.prescriptionView.View()
	case ViewReports:
		return m.reportView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	m := initialModel()
	defer m.app.Close()

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		m.app.Close()
		os.Exit(1)
	}
}
