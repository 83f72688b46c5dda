package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pharmacare/internal/checkout"
	"github.com/MrJamesThe3rd/pharmacare/internal/customer"
	"github.com/MrJamesThe3rd/pharmacare/internal/product"
	"github.com/MrJamesThe3rd/pharmacare/internal/settings"
	"github.com/MrJamesThe3rd/pharmacare/internal/transaction"
)

type posState int

const (
	posStateBrowse posState = iota
	posStateDiscount
	posStateCheckout
)

// POSModel is the point-of-sale screen. The cart lives only as long as the
// screen does.
type POSModel struct {
	CommonModel
	checkoutSvc *checkout.Service
	productSvc  *product.Service
	customerSvc *customer.Service
	settingsSvc *settings.Service

	state     posState
	table     table.Model
	items     []*product.Product
	customers []*customer.Customer
	cart      *checkout.Cart
	taxRate   float64
	form      *huh.Form

	loading bool
	err     error
	status  string
}

func NewPOSModel(co *checkout.Service, products *product.Service, customers *customer.Service, st *settings.Service) POSModel {
	columns := []table.Column{
		{Title: "Product", Width: 28},
		{Title: "Price", Width: 10},
		{Title: "Stock", Width: 8},
	}

	return POSModel{
		checkoutSvc: co,
		productSvc:  products,
		customerSvc: customers,
		settingsSvc: st,
		table:       newTable(columns),
		cart:        checkout.NewCart(),
		loading:     true,
	}
}

func (m POSModel) Title() string { return "Point of Sale" }
func (m POSModel) ShortHelp() string {
	if m.state != posStateBrowse {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | Enter: add | +/-: quantity | x: remove | d: discount | c: checkout | n: clear"
}

func (m POSModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m POSModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadPOSMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.items = msg.items
		m.customers = msg.customers
		m.taxRate = msg.settings.TaxRate
		if m.cart.Len() == 0 {
			_ = m.cart.SetDiscount(msg.settings.DefaultDiscount)
		}
		m.refreshTable()
		return m, nil

	case saleCompletedMsg:
		m.state = posStateBrowse
		m.form = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Sale failed: %v", msg.err)
			return m, nil
		}
		m.cart.Clear()
		m.status = fmt.Sprintf("Sale complete: %s to %s", FormatMoney(msg.tx.Total), msg.tx.CustomerName)
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(m.Resize(msg, 12))
		return m, nil
	}

	if m.state == posStateBrowse {
		return m.updateBrowse(msg)
	}

	return m.updateForm(msg)
}

func (m POSModel) selected() *product.Product {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) {
		return nil
	}
	return m.items[idx]
}

func (m POSModel) quantity(productID string) int {
	for _, l := range m.cart.Lines() {
		if l.Product.ID == productID {
			return l.Quantity
		}
	}
	return 0
}

func (m POSModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	p := m.selected()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "enter":
		if p != nil {
			m.status = cartStatus(m.cart.Add(p), "Added "+p.Name)
		}
		return m, nil
	case "+", "=":
		if p != nil {
			m.status = cartStatus(m.cart.Add(p), "")
		}
		return m, nil
	case "-":
		if p != nil && m.quantity(p.ID) > 0 {
			m.status = cartStatus(m.cart.SetQuantity(p.ID, m.quantity(p.ID)-1), "")
		}
		return m, nil
	case "x":
		if p != nil {
			m.cart.Remove(p.ID)
		}
		return m, nil
	case "n":
		m.cart.Clear()
		m.status = "Cart cleared"
		return m, nil
	case "d":
		m.state = posStateDiscount
		m.form = m.discountForm()
		m.table.Blur()
		return m, m.form.Init()
	case "c":
		if m.cart.Len() == 0 {
			m.status = cartStatus(checkout.ErrEmptyCart, "")
			return m, nil
		}
		m.state = posStateCheckout
		m.form = m.checkoutForm()
		m.table.Blur()
		return m, m.form.Init()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func cartStatus(err error, ok string) string {
	var short *checkout.InsufficientStockError

	switch {
	case err == nil:
		return ok
	case errors.As(err, &short):
		return fmt.Sprintf("Only %d in stock", short.Available)
	}

	return err.Error()
}

func (m POSModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = posStateBrowse
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

	if m.state == posStateDiscount {
		percent, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("discount")), 64)
		m.status = cartStatus(m.cart.SetDiscount(percent), fmt.Sprintf("Discount set to %.0f%%", percent))
		m.state = posStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	return m, m.completeSaleCmd()
}

func (m POSModel) discountForm() *huh.Form {
	current := strconv.FormatFloat(m.cart.DiscountPercent(), 'f', -1, 64)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("discount").
				Title("Discount %").
				Value(&current).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || v < 0 || v > 100 {
						return fmt.Errorf("enter a number between 0 and 100")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m POSModel) checkoutForm() *huh.Form {
	customerOptions := []huh.Option[string]{huh.NewOption(transaction.WalkInCustomerName, "")}
	for _, c := range m.customers {
		customerOptions = append(customerOptions, huh.NewOption(c.Name+" ("+c.Phone+")", c.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("customer").
				Title("Customer").
				Options(customerOptions...),
			huh.NewSelect[transaction.PaymentMethod]().
				Key("payment").
				Title("Payment Method").
				Options(
					huh.NewOption("Cash", transaction.PaymentCash),
					huh.NewOption("Card", transaction.PaymentCard),
					huh.NewOption("Insurance", transaction.PaymentInsurance),
				),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m POSModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading products...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	right := m.cartView()
	if m.state != posStateBrowse && m.form != nil {
		title := "Discount"
		if m.state == posStateCheckout {
			title = "Checkout " + FormatMoney(m.cart.Totals(m.taxRate).Total)
		}
		right = formPanel(title, m.form.View())
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, tableView, right)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m POSModel) cartView() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Cart") + "\n\n")

	if m.cart.Len() == 0 {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render("empty") + "\n")
	}

	for _, l := range m.cart.Lines() {
		fmt.Fprintf(&b, "%-22s x%-3d %10s\n", truncateText(l.Product.Name, 22), l.Quantity, FormatMoney(l.Total()))
	}

	t := m.cart.Totals(m.taxRate)

	fmt.Fprintf(&b, "\n%-27s %10s\n", "Subtotal", FormatMoney(t.Subtotal))
	fmt.Fprintf(&b, "%-27s %10s\n", fmt.Sprintf("Discount (%.0f%%)", m.cart.DiscountPercent()), "-"+FormatMoney(t.Discount))
	fmt.Fprintf(&b, "%-27s %10s\n", fmt.Sprintf("Tax (%.1f%%)", m.taxRate*100), FormatMoney(t.Tax))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-27s %10s", "Total", FormatMoney(t.Total))))

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(46).
		Render(b.String())
}

func truncateText(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m *POSModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.items))
	for _, p := range m.items {
		stock := strconv.Itoa(p.Stock)
		if p.IsLowStock() {
			stock = lowStockStyle.Render(stock)
		}
		rows = append(rows, table.Row{p.Name, FormatMoney(p.Price), stock})
	}
	m.table.SetRows(rows)
}

// Messages

type loadPOSMsg struct {
	items     []*product.Product
	customers []*customer.Customer
	settings  *settings.Settings
	err       error
}

func (m POSModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		items, err := m.productSvc.List(ctx, product.ListFilter{})
		if err != nil {
			return loadPOSMsg{err: err}
		}

		customers, err := m.customerSvc.List(ctx, "")
		if err != nil {
			return loadPOSMsg{err: err}
		}

		st, err := m.settingsSvc.Get(ctx)
		if err != nil {
			return loadPOSMsg{err: err}
		}

		return loadPOSMsg{items: items, customers: customers, settings: st}
	}
}

type saleCompletedMsg struct {
	tx  *transaction.Transaction
	err error
}

func (m POSModel) completeSaleCmd() tea.Cmd {
	payment, _ := m.form.Get("payment").(transaction.PaymentMethod)
	params := checkout.SaleParams{
		CustomerID:    m.form.GetString("customer"),
		PaymentMethod: payment,
	}
	// The command runs off the update loop, so it gets its own copy. The
	// model's cart is cleared when the sale is reported.
	cart := m.cart.Clone()

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		tx, err := m.checkoutSvc.CompleteSale(ctx, cart, params)
		return saleCompletedMsg{tx: tx, err: err}
	}
}
