package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pharmacare/internal/report"
)

type reportState int

const (
	reportStateTimeframe reportState = iota
	reportStateLoading
	reportStateResult
)

type ReportModel struct {
	CommonModel
	reports *report.Service

	state           reportState
	timeframePicker TimeframePicker
	spinner         spinner.Model

	label  string
	result *report.SalesReport
	err    error
}

func NewReportModel(reports *report.Service) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ReportModel{
		reports:         reports,
		state:           reportStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeToday),
		spinner:         s,
	}
}

func (m ReportModel) Title() string { return "Sales Report" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "Esc: back | t: change timeframe"
	}
	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.label = msg.Label
		m.state = reportStateLoading
		return m, tea.Batch(m.spinner.Tick, m.loadCmd(msg.Start, msg.End))

	case reportLoadedMsg:
		m.state = reportStateResult
		m.result = msg.report
		m.err = msg.err
		return m, nil
	}

	switch m.state {
	case reportStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
				return m, Back
			}
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)
		return m, cmd

	case reportStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case reportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "t":
				m.state = reportStateTimeframe
				m.timeframePicker.Reset()
			}
		}
	}

	return m, nil
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case reportStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Building report...", m.spinner.View()),
		)

	case reportStateResult:
		return m.viewResult()
	}

	return ""
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

func (m ReportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	r := m.result
	sum := r.Summary

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", headingStyle.Render("Sales: "+m.label))
	fmt.Fprintf(&b, "Revenue:       %s\n", FormatMoney(sum.TotalRevenue))
	fmt.Fprintf(&b, "Transactions:  %d\n", sum.TransactionCount)
	fmt.Fprintf(&b, "Average sale:  %s\n", FormatMoney(sum.AverageOrderValue))
	fmt.Fprintf(&b, "Discounts:     %s\n", FormatMoney(sum.TotalDiscount))
	fmt.Fprintf(&b, "Tax collected: %s\n", FormatMoney(sum.TotalTax))

	fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Top Products"))
	if len(r.TopProducts) == 0 {
		b.WriteString("  none\n")
	}
	for i, p := range r.TopProducts {
		fmt.Fprintf(&b, "%2d. %-28s %5d units %10s\n", i+1, truncateText(p.ProductName, 28), p.QuantitySold, FormatMoney(p.Revenue))
	}

	fmt.Fprintf(&b, "\n%s\n", headingStyle.Render("Top Customers"))
	if len(r.TopCustomers) == 0 {
		b.WriteString("  none\n")
	}
	for i, c := range r.TopCustomers {
		fmt.Fprintf(&b, "%2d. %-28s %5d orders %10s\n", i+1, truncateText(c.CustomerName, 28), c.Orders, FormatMoney(c.Spent))
	}

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type reportLoadedMsg struct {
	report *report.SalesReport
	err    error
}

const reportTimeout = 30 * time.Second

func (m ReportModel) loadCmd(start, end time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		r, err := m.reports.Sales(ctx, start, end, report.DefaultTopN)
		return reportLoadedMsg{report: r, err: err}
	}
}
