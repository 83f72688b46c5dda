package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pharmacare/internal/auth"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateAdd
	inventoryStateStock
	inventoryStateDelete
)

type InventoryModel struct {
	CommonModel
	products *product.Service
	gate     *auth.Gate

	state inventoryState
	table table.Model
	items []*product.Product
	form  *huh.Form

	categoryIdx int
	filter      product.ListFilter
	loading     bool
	err         error
	status      string

	// Form bindings; submitted values are read back through the form keys.
	formName     string
	formSKU      string
	formCategory product.Category
	formPrice    string
	formStock    string
	formExpiry   string
	formDelta    string
	formPIN      string
}

func NewInventoryModel(products *product.Service, gate *auth.Gate) InventoryModel {
	columns := []table.Column{
		{Title: "Name", Width: 28},
		{Title: "SKU", Width: 10},
		{Title: "Category", Width: 16},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 8},
		{Title: "Expiry", Width: 12},
		{Title: "", Width: 5},
	}

	return InventoryModel{
		products: products,
		gate:     gate,
		table:    newTable(columns),
		loading:  true,
	}
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m InventoryModel) Title() string { return "Inventory" }
func (m InventoryModel) ShortHelp() string {
	if m.state != inventoryStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | s: adjust stock | x: delete | l: low stock | c: category | r: refresh"
}

func (m InventoryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInventoryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.refreshTable()
		return m, nil

	case inventorySaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		m.state = inventoryStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(m.Resize(msg, 10))
		return m, nil
	}

	if m.state == inventoryStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "l":
			m.filter.LowStockOnly = !m.filter.LowStockOnly
			return m, m.loadCmd()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(product.Categories) + 1)
			m.filter.Category = nil
			if m.categoryIdx > 0 {
				m.filter.Category = new(product.Categories[m.categoryIdx-1])
			}
			return m, m.loadCmd()
		case "a":
			return m.openForm(inventoryStateAdd, m.addForm())
		case "s":
			if m.selected() == nil {
				return m, nil
			}
			m.formDelta = ""
			return m.openForm(inventoryStateStock, m.stockForm())
		case "x":
			if m.selected() == nil {
				return m, nil
			}
			m.formPIN = ""
			return m.openForm(inventoryStateDelete, pinForm(&m.formPIN))
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InventoryModel) openForm(state inventoryState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.state = state
	m.form = form
	m.table.Blur()
	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = inventoryStateBrowse
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

	switch m.state {
	case inventoryStateAdd:
		return m, m.createCmd()
	case inventoryStateStock:
		return m, m.adjustCmd()
	case inventoryStateDelete:
		return m, m.deleteCmd()
	}

	return m, nil
}

func (m InventoryModel) selected() *product.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return m.items[idx]
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func numberText(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func pinForm(pin *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pin").
				Title("Security PIN").
				EchoMode(huh.EchoModePassword).
				CharLimit(4).
				Value(pin),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *InventoryModel) addForm() *huh.Form {
	m.formName, m.formSKU, m.formPrice, m.formStock, m.formExpiry = "", "", "", "0", ""
	m.formCategory = product.CategoryOTC

	options := make([]huh.Option[product.Category], 0, len(product.Categories))
	for _, c := range product.Categories {
		options = append(options, huh.NewOption(string(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Name").Value(&m.formName).Validate(requiredText),
			huh.NewInput().Key("sku").Title("SKU").Value(&m.formSKU).Validate(requiredText),
			huh.NewSelect[product.Category]().Key("category").Title("Category").Options(options...).Value(&m.formCategory),
			huh.NewInput().Key("price").Title("Price").Value(&m.formPrice).Validate(numberText),
			huh.NewInput().Key("stock").Title("Stock").Value(&m.formStock).Validate(numberText),
			huh.NewInput().Key("expiry").Title("Expiry Date").Placeholder("YYYY-MM-DD").Value(&m.formExpiry),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *InventoryModel) stockForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("delta").
				Title("Stock adjustment").
				Description("Positive to receive, negative to write off").
				Value(&m.formDelta).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("must be a whole number")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m InventoryModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading inventory...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	category := "All"
	if m.filter.Category != nil {
		category = string(*m.filter.Category)
	}

	lowStock := "Off"
	if m.filter.LowStockOnly {
		lowStock = "On"
	}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [l] Low stock only: %s | %d products",
		activeStyle(category),
		activeStyle(lowStock),
		len(m.items),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state != inventoryStateBrowse && m.form != nil {
		title := "New Product"
		switch m.state {
		case inventoryStateStock:
			title = "Adjust Stock: " + m.selected().Name
		case inventoryStateDelete:
			title = "Delete " + m.selected().Name + "?"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, formPanel(title, m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func formPanel(title, body string) string {
	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(title + "\n\n" + body)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

var lowStockStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

func (m *InventoryModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, p := range m.items {
		flag := ""
		if p.IsLowStock() {
			flag = lowStockStyle.Render("LOW")
		}
		rows = append(rows, table.Row{
			p.Name,
			p.SKU,
			string(p.Category),
			FormatMoney(p.Price),
			strconv.Itoa(p.Stock),
			p.ExpiryDate,
			flag,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInventoryMsg struct {
	items []*product.Product
	err   error
}

func (m InventoryModel) loadCmd() tea.Cmd {
	filter := m.filter
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		items, err := m.products.List(ctx, filter)
		return loadInventoryMsg{items: items, err: err}
	}
}

type inventorySaveMsg struct {
	status string
	err    error
}

func (m InventoryModel) createCmd() tea.Cmd {
	price, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("price")), 64)
	stock, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("stock")))
	category, _ := m.form.Get("category").(product.Category)

	params := product.CreateParams{
		Name:       strings.TrimSpace(m.form.GetString("name")),
		SKU:        strings.TrimSpace(m.form.GetString("sku")),
		Category:   category,
		Price:      price,
		Stock:      stock,
		ExpiryDate: strings.TrimSpace(m.form.GetString("expiry")),
	}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		p, err := m.products.Create(ctx, params)
		if err != nil {
			return inventorySaveMsg{err: err}
		}
		return inventorySaveMsg{status: "Added " + p.Name}
	}
}

func (m InventoryModel) adjustCmd() tea.Cmd {
	p := m.selected()
	delta, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("delta")))

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		updated, err := m.products.AdjustStock(ctx, p.ID, delta)
		if err != nil {
			return inventorySaveMsg{err: err}
		}
		return inventorySaveMsg{status: fmt.Sprintf("%s stock is now %d", updated.Name, updated.Stock)}
	}
}

func (m InventoryModel) deleteCmd() tea.Cmd {
	p := m.selected()
	pin := m.form.GetString("pin")

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := m.gate.Verify(ctx, pin); err != nil {
			return inventorySaveMsg{err: err}
		}

		if err := m.products.Delete(ctx, p.ID); err != nil {
			return inventorySaveMsg{err: err}
		}
		return inventorySaveMsg{status: "Deleted " + p.Name}
	}
}
