package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pharmacare/internal/prescription"
)

// PrescriptionModel is the dispensing queue.
type PrescriptionModel struct {
	CommonModel
	prescriptions *prescription.Service

	table table.Model
	items []*prescription.Prescription
	form  *huh.Form

	statusIdx int
	filter    prescription.ListFilter
	loading   bool
	err       error
	status    string
}

func NewPrescriptionModel(svc *prescription.Service) PrescriptionModel {
	columns := []table.Column{
		{Title: "Number", Width: 10},
		{Title: "Customer", Width: 20},
		{Title: "Medication", Width: 24},
		{Title: "Qty", Width: 5},
		{Title: "Refills", Width: 8},
		{Title: "Status", Width: 12},
		{Title: "Doctor", Width: 20},
	}

	return PrescriptionModel{
		prescriptions: svc,
		table:         newTable(columns),
		loading:       true,
	}
}

func (m PrescriptionModel) Title() string { return "Prescriptions" }
func (m PrescriptionModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: set status | s: status filter | r: refresh"
}

func (m PrescriptionModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m PrescriptionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPrescriptionsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.refreshTable()
		return m, nil

	case prescriptionSavedMsg:
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("%s is now %s", msg.rx.PrescriptionNumber, msg.rx.Status)
		}
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(m.Resize(msg, 10))
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % (len(prescription.Statuses) + 1)
			m.filter.Status = nil
			if m.statusIdx > 0 {
				m.filter.Status = new(prescription.Statuses[m.statusIdx-1])
			}
			return m, m.loadCmd()
		case "enter":
			rx := m.selected()
			if rx == nil {
				return m, nil
			}
			m.form = statusForm(rx.Status)
			m.table.Blur()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m PrescriptionModel) selected() *prescription.Prescription {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return m.items[idx]
}

func statusForm(current prescription.Status) *huh.Form {
	options := make([]huh.Option[prescription.Status], 0, len(prescription.Statuses))
	for _, s := range prescription.Statuses {
		options = append(options, huh.NewOption(string(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[prescription.Status]().
				Key("status").
				Title("Status").
				Options(options...).
				Value(&current),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m PrescriptionModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.setStatusCmd()
}

func (m PrescriptionModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading prescriptions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if m.filter.Status != nil {
		label = string(*m.filter.Status)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s | %d prescriptions", activeStyle(label), len(m.items))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if rx := m.selected(); m.form != nil && rx != nil {
		body := fmt.Sprintf("%s\n%s\n\n%s", rx.Medication, rx.Dosage, m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, formPanel(rx.PrescriptionNumber, body))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *PrescriptionModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, rx := range m.items {
		rows = append(rows, table.Row{
			rx.PrescriptionNumber,
			rx.CustomerName,
			rx.Medication,
			strconv.Itoa(rx.Quantity),
			strconv.Itoa(rx.RefillsRemaining),
			string(rx.Status),
			rx.DoctorName,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPrescriptionsMsg struct {
	items []*prescription.Prescription
	err   error
}

func (m PrescriptionModel) loadCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		items, err := m.prescriptions.List(ctx, filter)
		return loadPrescriptionsMsg{items: items, err: err}
	}
}

type prescriptionSavedMsg struct {
	rx  *prescription.Prescription
	err error
}

func (m PrescriptionModel) setStatusCmd() tea.Cmd {
	rx := m.selected()
	if rx == nil {
		return nil
	}

	status, _ := m.form.Get("status").(prescription.Status)

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		updated, err := m.prescriptions.SetStatus(ctx, rx.ID, status)
		return prescriptionSavedMsg{rx: updated, err: err}
	}
}
