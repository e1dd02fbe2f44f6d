// Package tui is the terminal presentation shell: goal and bill tabs, the
// installment forecast sidebar, and the edit modals. All persistence goes
// through the services; the only state owned here is view state.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfalcao/metacompra/internal/config"
	"github.com/dfalcao/metacompra/internal/database/repository"
	"github.com/dfalcao/metacompra/internal/service"
)

// App ties together views.
type App struct {
	ctx      context.Context
	repos    Repos
	services Services
	cfg      config.Config

	state  appState
	modal  modalState
	status string

	goals           []repository.Item
	bills           []repository.Item
	settings        repository.Settings
	billsTotalCents int64
	forecast        []service.ForecastEntry

	goalCursor  int
	billCursor  int
	showSidebar bool

	// ephemeral card selection, id -> price in cents; never persisted
	selected map[string]int64

	form        itemForm
	inputBuffer string
}

type Repos struct {
	Items    *repository.ItemRepo
	Settings *repository.SettingsRepo
}

type Services struct {
	Items    *service.ItemService
	Forecast *service.ForecastService
}

type appState string

const (
	viewGoals appState = "goals"
	viewBills appState = "bills"
)

type modalState string

const (
	modalNone          modalState = ""
	modalAddItem       modalState = "addItem"
	modalEditItem      modalState = "editItem"
	modalSavedAmount   modalState = "savedAmount"
	modalSalary        modalState = "salary"
	modalConfirmDelete modalState = "confirmDelete"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services) *App {
	return &App{
		ctx:      ctx,
		repos:    repos,
		services: services,
		cfg:      cfg,
		state:    viewGoals,
		selected: map[string]int64{},
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadItems(), a.loadSettings(), a.loadTotals(), a.loadForecast())
}

type itemsMsg struct {
	goals []repository.Item
	bills []repository.Item
}

type settingsMsg repository.Settings

type totalsMsg int64

type forecastMsg []service.ForecastEntry

type refreshMsg struct{}

type errMsg struct{ err error }

func (a *App) loadItems() tea.Cmd {
	return func() tea.Msg {
		goals, err := a.repos.Items.ListByKind(a.ctx, repository.KindGoal, a.cfg.UI.ShowPurchased)
		if err != nil {
			return errMsg{err}
		}
		bills, err := a.repos.Items.ListByKind(a.ctx, repository.KindBill, a.cfg.UI.ShowPurchased)
		if err != nil {
			return errMsg{err}
		}
		return itemsMsg{goals: goals, bills: bills}
	}
}

func (a *App) loadSettings() tea.Cmd {
	return func() tea.Msg {
		s, err := a.repos.Settings.Get(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return settingsMsg(s)
	}
}

func (a *App) loadTotals() tea.Cmd {
	return func() tea.Msg {
		total, err := a.repos.Items.MonthlyBillsTotal(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return totalsMsg(total)
	}
}

func (a *App) loadForecast() tea.Cmd {
	return func() tea.Msg {
		entries, err := a.services.Forecast.Monthly(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return forecastMsg(entries)
	}
}

func (a *App) refreshAll() tea.Cmd {
	return tea.Batch(a.loadItems(), a.loadSettings(), a.loadTotals(), a.loadForecast())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case itemsMsg:
		a.goals = m.goals
		a.bills = m.bills
		a.clampCursors()
		a.pruneSelection()
	case settingsMsg:
		a.settings = repository.Settings(m)
	case totalsMsg:
		a.billsTotalCents = int64(m)
	case forecastMsg:
		a.forecast = m
	case refreshMsg:
		return a, a.refreshAll()
	case errMsg:
		a.status = "error: " + m.err.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "tab":
		if a.state == viewGoals {
			a.state = viewBills
		} else {
			a.state = viewGoals
		}
	case "up", "k":
		if c := a.cursor(); *c > 0 {
			*c--
		}
	case "down", "j":
		if c := a.cursor(); *c < len(a.currentItems())-1 {
			*c++
		}
	case " ":
		if it := a.currentItem(); it != nil {
			if _, ok := a.selected[it.ID]; ok {
				delete(a.selected, it.ID)
			} else {
				a.selected[it.ID] = it.PriceCents
			}
		}
	case "a":
		a.form = newItemForm(a.activeKind(), nil)
		a.modal = modalAddItem
		a.status = ""
	case "e":
		if it := a.currentItem(); it != nil {
			a.form = newItemForm(it.Kind, it)
			a.modal = modalEditItem
			a.status = ""
		}
	case "d":
		if a.currentItem() != nil {
			a.modal = modalConfirmDelete
		}
	case "p":
		if it := a.currentItem(); it != nil {
			return a, a.toggleCmd(it.ID)
		}
	case "f":
		a.showSidebar = !a.showSidebar
	case "g":
		a.inputBuffer = ""
		a.modal = modalSavedAmount
	case "s":
		a.inputBuffer = ""
		a.modal = modalSalary
	case "v":
		a.cfg.UI.ShowPurchased = !a.cfg.UI.ShowPurchased
		if err := config.Save(a.cfg); err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}
		return a, a.loadItems()
	}
	return a, nil
}

func (a *App) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Items.TogglePurchased(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := a.services.Items.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

func (a *App) activeKind() repository.Kind {
	if a.state == viewBills {
		return repository.KindBill
	}
	return repository.KindGoal
}

func (a *App) currentItems() []repository.Item {
	if a.state == viewBills {
		return a.bills
	}
	return a.goals
}

func (a *App) cursor() *int {
	if a.state == viewBills {
		return &a.billCursor
	}
	return &a.goalCursor
}

func (a *App) currentItem() *repository.Item {
	items := a.currentItems()
	c := *a.cursor()
	if c < 0 || c >= len(items) {
		return nil
	}
	return &items[c]
}

func (a *App) clampCursors() {
	if a.goalCursor >= len(a.goals) {
		a.goalCursor = len(a.goals) - 1
	}
	if a.goalCursor < 0 {
		a.goalCursor = 0
	}
	if a.billCursor >= len(a.bills) {
		a.billCursor = len(a.bills) - 1
	}
	if a.billCursor < 0 {
		a.billCursor = 0
	}
}

// pruneSelection drops selected ids that no longer appear in either list.
func (a *App) pruneSelection() {
	alive := make(map[string]bool, len(a.goals)+len(a.bills))
	for _, it := range a.goals {
		alive[it.ID] = true
	}
	for _, it := range a.bills {
		alive[it.ID] = true
	}
	for id := range a.selected {
		if !alive[id] {
			delete(a.selected, id)
		}
	}
}
