package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dfalcao/metacompra/internal/database/repository"
	"github.com/dfalcao/metacompra/internal/money"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	activeTab     = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Padding(0, 1)
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	sidebarStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).PaddingLeft(2)
)

func (a *App) View() string {
	if a.modal != modalNone {
		return a.renderModal()
	}

	main := a.renderHeader() + "\n" + a.renderTabs() + "\n" + a.renderList()
	if a.showSidebar {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, sidebarStyle.Render(a.renderForecast()))
	}
	return main + "\n" + a.renderFooter()
}

func (a *App) renderHeader() string {
	return fmt.Sprintf("%s   Saved: %s   Salary: %s",
		titleStyle.Render("Meta de Compra"),
		money.FormatBRL(a.settings.SavedCents),
		money.FormatBRL(a.settings.SalaryCents))
}

func (a *App) renderTabs() string {
	goals, bills := inactiveTab, activeTab
	if a.state == viewGoals {
		goals, bills = activeTab, inactiveTab
	}
	return goals.Render(fmt.Sprintf("Goals (%d)", len(a.goals))) +
		bills.Render(fmt.Sprintf("Bills (%d)", len(a.bills)))
}

func (a *App) renderList() string {
	items := a.currentItems()
	if len(items) == 0 {
		return dimStyle.Render("Nothing here yet. Press [a] to add.") + "\n"
	}

	var b strings.Builder
	cursor := *a.cursor()
	for i, it := range items {
		marker := " "
		if i == cursor {
			marker = "▶"
		}
		check := "[ ]"
		if _, ok := a.selected[it.ID]; ok {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s %-32s %12s", marker, check, it.Name, money.FormatBRL(it.PriceCents))
		if it.Kind == repository.KindBill {
			line += "  " + billMeta(it)
		}
		if it.Purchased {
			line = dimStyle.Render(line + "  ✓")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func billMeta(it repository.Item) string {
	parts := []string{}
	if it.Installments != nil && *it.Installments > 1 {
		parts = append(parts, fmt.Sprintf("x%d", *it.Installments))
	}
	if it.InstallmentDay != nil {
		parts = append(parts, fmt.Sprintf("due %d", *it.InstallmentDay))
	}
	return dimStyle.Render(strings.Join(parts, " "))
}

func (a *App) renderForecast() string {
	out := titleStyle.Render("Installment forecast") + "\n"
	if len(a.forecast) == 0 {
		return out + dimStyle.Render("No active installment bills")
	}
	for _, e := range a.forecast {
		line := fmt.Sprintf("%-14s %12s", e.Label, money.FormatBRL(e.TotalCents))
		if e.TotalCents == 0 {
			line = dimStyle.Render(line)
		}
		out += line + "\n"
	}
	return out
}

func (a *App) renderFooter() string {
	balance := a.settings.SalaryCents - a.billsTotalCents
	balanceStr := money.FormatBRL(balance)
	if balance >= 0 {
		balanceStr = positiveStyle.Render(balanceStr)
	} else {
		balanceStr = negativeStyle.Render(balanceStr)
	}

	out := fmt.Sprintf("Monthly bills: %s   Balance: %s", money.FormatBRL(a.billsTotalCents), balanceStr)
	if len(a.selected) > 0 {
		var sum int64
		for _, cents := range a.selected {
			sum += cents
		}
		out += fmt.Sprintf("   Selected: %d (%s)", len(a.selected), money.FormatBRL(sum))
	}
	out += "\n" + dimStyle.Render("[tab] Switch  [a] Add  [e] Edit  [d] Delete  [p] Purchased  [space] Select  [f] Forecast  [g] Saved  [s] Salary  [v] Show purchased  [q] Quit")
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalAddItem, modalEditItem:
		return a.renderItemForm()
	case modalSavedAmount:
		return titleStyle.Render("Set saved amount") + fmt.Sprintf("\n%s█\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalSalary:
		return titleStyle.Render("Set salary") + fmt.Sprintf("\n%s█\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalConfirmDelete:
		name := ""
		if it := a.currentItem(); it != nil {
			name = it.Name
		}
		return titleStyle.Render("Remove item?") + fmt.Sprintf("\n%s will be deleted permanently.\n[y] Yes  [n] No", name)
	default:
		return ""
	}
}

func (a *App) renderItemForm() string {
	title := "New goal"
	switch {
	case a.modal == modalEditItem && a.form.kind == repository.KindBill:
		title = "Edit bill"
	case a.modal == modalEditItem:
		title = "Edit goal"
	case a.form.kind == repository.KindBill:
		title = "New bill"
	}

	out := titleStyle.Render(title) + "\n"
	for i := range a.form.inputs {
		if !a.form.fieldVisible(i) {
			continue
		}
		out += fmt.Sprintf("%-13s %s\n", fieldLabels[i]+":", a.form.inputs[i].View())
	}
	if a.modal == modalEditItem {
		out += dimStyle.Render("Leave the image path blank to keep the current image.") + "\n"
	}
	out += "[tab] Next field  [enter] Save  [esc] Cancel"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}
