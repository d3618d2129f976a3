package tui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"invoice-dashboard-backend/internal/search"
	"invoice-dashboard-backend/pkg/client"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ListingPath is the dashboard URL the search box keeps in sync.
const ListingPath = "/dashboard/invoices"

// API is the part of the client the dashboard uses.
type API interface {
	ListInvoices(ctx context.Context, query string, page int) (*client.InvoicePage, error)
	DeleteInvoice(ctx context.Context, id string) (*client.MutationResult, error)
}

type navigatedMsg struct{ url string }

type pageLoadedMsg struct {
	page *client.InvoicePage
	err  error
}

type deleteResultMsg struct {
	message string
	err     error
}

type copyResultMsg struct{ err error }

type sender struct {
	send func(tea.Msg)
}

func (s sender) Replace(u string) {
	s.send(navigatedMsg{url: u})
}

// Model is the invoice list screen.
type Model struct {
	api       API
	search    *search.Controller
	copy      func(string) error
	input     string
	editing   bool
	query     string
	pageNum   int
	page      *client.InvoicePage
	cursor    int
	confirm   bool
	loading   bool
	statusMsg string
	err       error
	width     int
	height    int
}

// New binds the dashboard to current. send delivers navigation to the running
// program; it is called from timer goroutines and from commands, never from Update.
func New(api API, current string, send func(tea.Msg), opts ...search.Option) (Model, error) {
	ctrl, err := search.NewController(current, sender{send: send}, opts...)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		api:     api,
		search:  ctrl,
		copy:    clipboard.WriteAll,
		loading: true,
	}
	m.input = ctrl.InitialValue()
	m.query, m.pageNum = fromParams(ctrl.Params())
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	api, query, page := m.api, m.query, m.pageNum
	return func() tea.Msg {
		p, err := api.ListInvoices(context.Background(), query, page)
		return pageLoadedMsg{page: p, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigatedMsg:
		u, err := url.Parse(msg.url)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.query, m.pageNum = fromParams(u.Query())
		m.loading = true
		return m, m.load()

	case pageLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.page = msg.page
		}
		if m.page == nil || m.cursor >= len(m.page.Invoices) {
			m.cursor = 0
		}
		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.message
		m.loading = true
		return m, m.load()

	case copyResultMsg:
		if msg.err != nil {
			m.statusMsg = "copy failed: " + msg.err.Error()
		} else {
			m.statusMsg = "invoice id copied"
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.search.Close()
		return m, tea.Quit
	case "enter", "esc":
		m.editing = false
		return m, nil
	}

	next := editRune(m.input, msg.String())
	if next != m.input {
		m.input = next
		m.search.OnInput(next)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.confirm {
		m.confirm = false
		if key == "y" && m.selected() != nil {
			id := m.selected().ID
			api := m.api
			return m, func() tea.Msg {
				res, err := api.DeleteInvoice(context.Background(), id)
				if err != nil {
					return deleteResultMsg{err: err}
				}
				return deleteResultMsg{message: res.Message}
			}
		}
		m.statusMsg = ""
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.search.Close()
		return m, tea.Quit
	case "/":
		m.editing = true
		m.statusMsg = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.page != nil && m.cursor < len(m.page.Invoices)-1 {
			m.cursor++
		}
	case "right", "n":
		if m.page != nil && m.pageNum < m.page.TotalPages {
			return m, m.setPage(m.pageNum + 1)
		}
	case "left", "p":
		if m.pageNum > 1 {
			return m, m.setPage(m.pageNum - 1)
		}
	case "d":
		if inv := m.selected(); inv != nil {
			m.confirm = true
			m.statusMsg = fmt.Sprintf("delete invoice for %s (%s)? y/n", inv.Name, inv.AmountFormatted)
		}
	case "c":
		if inv := m.selected(); inv != nil {
			id, copyFn := inv.ID, m.copy
			return m, func() tea.Msg {
				return copyResultMsg{err: copyFn(id)}
			}
		}
	case "r":
		m.loading = true
		return m, m.load()
	}
	return m, nil
}

// setPage navigates from a command so the program is free to receive the message.
func (m Model) setPage(page int) tea.Cmd {
	ctrl := m.search
	return func() tea.Msg {
		value := strconv.Itoa(page)
		if page <= 1 {
			value = ""
		}
		ctrl.SetParam("page", value)
		return nil
	}
}

func (m Model) selected() *client.Invoice {
	if m.page == nil || m.cursor >= len(m.page.Invoices) {
		return nil
	}
	return &m.page.Invoices[m.cursor]
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Invoices"))
	b.WriteString("\n\n")

	prompt := searchStyle.Render("/ ")
	switch {
	case m.input == "" && !m.editing:
		b.WriteString(prompt + placeholderStyle.Render("Search invoices..."))
	case m.editing:
		b.WriteString(prompt + normalStyle.Render(m.input) + searchStyle.Render("█"))
	default:
		b.WriteString(prompt + normalStyle.Render(m.input))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.page == nil && m.loading:
		b.WriteString(dimStyle.Render("loading..."))
		b.WriteString("\n")
	case m.page == nil || len(m.page.Invoices) == 0:
		b.WriteString(dimStyle.Render("No invoices found."))
		b.WriteString("\n")
	default:
		for i, inv := range m.page.Invoices {
			line := fmt.Sprintf("%-22s %-26s %12s  %s  ",
				truncate(inv.Name, 22), truncate(inv.Email, 26), inv.AmountFormatted, inv.Date)
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString(normalStyle.Render("  " + line))
			}
			b.WriteString(renderStatus(inv.Status))
			b.WriteString("\n")
		}
	}

	if m.page != nil && m.page.TotalPages > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("page %d of %d", m.pageNum, m.page.TotalPages)))
		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(statusMsgStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.editing {
		b.WriteString(renderHelp("enter", "done", "esc", "done"))
	} else {
		b.WriteString(renderHelp("/", "search", "j/k", "move", "n/p", "page", "d", "delete", "c", "copy id", "r", "reload", "q", "quit"))
	}
	return b.String()
}

func fromParams(params url.Values) (string, int) {
	page, err := strconv.Atoi(params.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return params.Get(search.QueryParam), page
}
