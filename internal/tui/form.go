package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfalcao/metacompra/internal/database/repository"
	"github.com/dfalcao/metacompra/internal/money"
	"github.com/dfalcao/metacompra/internal/service"
)

// field order in the item form
const (
	fldName = iota
	fldPrice
	fldLink
	fldImage
	fldDescription
	fldInstallments
	fldDay
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Price", "Link", "Image path", "Description", "Installments", "Due day",
}

// itemForm is the add/edit modal state. For a goal only the first four
// fields apply; a bill shows all of them.
type itemForm struct {
	kind   repository.Kind
	id     string // empty when adding
	inputs [fieldCount]textinput.Model
	focus  int
}

func newItemForm(kind repository.Kind, existing *repository.Item) itemForm {
	f := itemForm{kind: kind}
	placeholders := [fieldCount]string{
		"PlayStation 5", "1.234,56", "https://...", "/path/to/photo.png (optional)",
		"what this bill covers", "x 12", "1-31",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		f.inputs[i] = ti
	}
	if existing != nil {
		f.id = existing.ID
		f.kind = existing.Kind
		f.inputs[fldName].SetValue(existing.Name)
		f.inputs[fldPrice].SetValue(formatCents(existing.PriceCents))
		if existing.Link != nil {
			f.inputs[fldLink].SetValue(*existing.Link)
		}
		// image field stays blank: blank keeps the stored image
		if existing.Description != nil {
			f.inputs[fldDescription].SetValue(*existing.Description)
		}
		if existing.Installments != nil {
			f.inputs[fldInstallments].SetValue(strconv.Itoa(*existing.Installments))
		}
		if existing.InstallmentDay != nil {
			f.inputs[fldDay].SetValue(strconv.Itoa(*existing.InstallmentDay))
		}
	}
	f.inputs[fldName].Focus()
	return f
}

func (f *itemForm) fieldVisible(i int) bool {
	if f.kind == repository.KindBill {
		return true
	}
	return i <= fldImage
}

func (f *itemForm) next() {
	f.inputs[f.focus].Blur()
	for {
		f.focus = (f.focus + 1) % fieldCount
		if f.fieldVisible(f.focus) {
			break
		}
	}
	f.inputs[f.focus].Focus()
}

func (f *itemForm) prev() {
	f.inputs[f.focus].Blur()
	for {
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		if f.fieldVisible(f.focus) {
			break
		}
	}
	f.inputs[f.focus].Focus()
}

// values parses the form into service input. Partial/invalid numeric fields
// surface as an error shown on the status line.
func (f *itemForm) values() (service.ItemInput, string, error) {
	name := strings.TrimSpace(f.inputs[fldName].Value())
	if name == "" {
		return service.ItemInput{}, "", fmt.Errorf("name is required")
	}
	cents, err := money.ParseCents(f.inputs[fldPrice].Value())
	if err != nil {
		return service.ItemInput{}, "", fmt.Errorf("price: %w", err)
	}

	in := service.ItemInput{Kind: f.kind, Name: name, PriceCents: cents}
	if link := strings.TrimSpace(f.inputs[fldLink].Value()); link != "" {
		in.Link = &link
	}
	if f.kind == repository.KindBill {
		if desc := strings.TrimSpace(f.inputs[fldDescription].Value()); desc != "" {
			in.Description = &desc
		}
		if v := strings.TrimSpace(f.inputs[fldInstallments].Value()); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return service.ItemInput{}, "", fmt.Errorf("installments must be a positive number")
			}
			in.Installments = &n
		}
		if v := strings.TrimSpace(f.inputs[fldDay].Value()); v != "" {
			d, err := strconv.Atoi(v)
			if err != nil || d < 1 || d > 31 {
				return service.ItemInput{}, "", fmt.Errorf("due day must be between 1 and 31")
			}
			in.InstallmentDay = &d
		}
	}
	return in, strings.TrimSpace(f.inputs[fldImage].Value()), nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalAddItem, modalEditItem:
		return a.handleFormKey(m)
	case modalSavedAmount, modalSalary:
		return a.handleAmountKey(m)
	case modalConfirmDelete:
		switch m.String() {
		case "y":
			a.modal = modalNone
			if it := a.currentItem(); it != nil {
				return a, a.deleteCmd(it.ID)
			}
		case "n", "esc":
			a.modal = modalNone
		}
	}
	return a, nil
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "tab", "down":
		a.form.next()
		return a, nil
	case "shift+tab", "up":
		a.form.prev()
		return a, nil
	case "enter":
		in, imagePath, err := a.form.values()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}
		adding := a.modal == modalAddItem
		a.modal = modalNone
		a.status = ""
		if adding {
			return a, a.addCmd(in, imagePath)
		}
		return a, a.editCmd(a.form.id, in, imagePath)
	}
	var cmd tea.Cmd
	a.form.inputs[a.form.focus], cmd = a.form.inputs[a.form.focus].Update(m)
	return a, cmd
}

func (a *App) handleAmountKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.modal = modalNone
		return a, nil
	case "enter":
		cents, err := money.ParseCents(a.inputBuffer)
		if err != nil {
			// an explicit zero is a valid reset, unlike for item prices
			if v, ferr := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(a.inputBuffer), ",", "."), 64); ferr != nil || v != 0 {
				a.status = "amount: " + err.Error()
				return a, nil
			}
			cents = 0
		}
		setSalary := a.modal == modalSalary
		a.modal = modalNone
		a.status = ""
		return a, a.setAmountCmd(cents, setSalary)
	case "backspace":
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
		return a, nil
	}
	if len(m.String()) == 1 {
		a.inputBuffer += m.String()
	}
	return a, nil
}

func (a *App) addCmd(in service.ItemInput, imagePath string) tea.Cmd {
	return func() tea.Msg {
		if _, err := a.services.Items.Add(a.ctx, in, imagePath); err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

// editCmd keeps the stored image when the image field was left blank.
func (a *App) editCmd(id string, in service.ItemInput, imagePath string) tea.Cmd {
	return func() tea.Msg {
		var err error
		if imagePath == "" {
			err = a.services.Items.Update(a.ctx, id, in)
		} else {
			err = a.services.Items.UpdateWithImage(a.ctx, id, in, imagePath)
		}
		if err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

func (a *App) setAmountCmd(cents int64, salary bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if salary {
			err = a.repos.Settings.SetSalary(a.ctx, cents)
		} else {
			err = a.repos.Settings.SetSavedAmount(a.ctx, cents)
		}
		if err != nil {
			return errMsg{err}
		}
		return refreshMsg{}
	}
}

// formatCents renders cents as an editable decimal string ("1234,56").
func formatCents(cents int64) string {
	return fmt.Sprintf("%d,%02d", cents/100, cents%100)
}
