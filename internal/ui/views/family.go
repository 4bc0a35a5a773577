package views

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/kinfolk/internal/models"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui/keys"
	"github.com/tgienger/kinfolk/internal/ui/styles"
)

type contactItem struct {
	contact models.Contact
}

func (i contactItem) Title() string       { return i.contact.Name }
func (i contactItem) Description() string { return i.contact.Relationship + " • " + i.contact.PhoneNumber }
func (i contactItem) FilterValue() string { return i.contact.Name }

type contactDelegate struct {
	styles *styles.Styles
	width  int
}

func (d contactDelegate) Height() int                               { return 2 }
func (d contactDelegate) Spacing() int                              { return 1 }
func (d contactDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d contactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(contactItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(c.Title()), descStyle.Render(c.Description()))
}

// FamilyView lists contacts and places stubbed calls
type FamilyView struct {
	contacts state.ContactBook
	list     list.Model
	delegate *contactDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	creating bool
	form     *form

	confirmingDelete bool
	deleteTarget     models.Contact
}

func NewFamilyView(contacts state.ContactBook, s *styles.Styles) *FamilyView {
	delegate := &contactDelegate{styles: s, width: styles.MaxWidth}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Family & Friends"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = s.Title

	v := &FamilyView{
		contacts: contacts,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		form: newForm("Add Family Member", "Add",
			newField("Name", "Full name", 100),
			newField("Relationship", "e.g. Daughter", 50),
			newField("Phone", "Phone number", 30),
		),
	}
	v.refresh()
	return v
}

func (v *FamilyView) Init() tea.Cmd {
	v.refresh()
	return nil
}

func (v *FamilyView) CapturingInput() bool {
	return v.creating || v.confirmingDelete
}

func (v *FamilyView) refresh() {
	contacts := v.contacts.Contacts()
	items := make([]list.Item, len(contacts))
	for i, c := range contacts {
		items[i] = contactItem{contact: c}
	}
	v.list.SetItems(items)
	v.list.Styles.Title = v.styles.Title
}

func (v *FamilyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, max(msg.Height-8, 4))
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.creating = true
			return v, v.form.reset()
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(contactItem); ok {
				return v, alert("Calling %s...", item.contact.Name)
			}
			return v, nil
		case key.Matches(msg, v.keys.VideoCall):
			if item, ok := v.list.SelectedItem().(contactItem); ok {
				return v, alert("Starting video call with %s...", item.contact.Name)
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(contactItem); ok {
				v.confirmingDelete = true
				v.deleteTarget = item.contact
			}
			return v, nil
		}
	}

	if v.creating {
		return v, v.form.updateInput(msg)
	}
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *FamilyView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.contacts.RemoveContact(v.deleteTarget.PhoneNumber)
		v.confirmingDelete = false
		v.refresh()
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *FamilyView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, v.keys.Back) {
		v.creating = false
		return v, nil
	}

	submitted, cmd := v.form.update(msg, v.keys)
	if !submitted {
		return v, cmd
	}

	if v.form.value(0) == "" {
		return v, alert("Please enter a name")
	}
	err := v.contacts.AddContact(models.Contact{
		Name:         v.form.value(0),
		Relationship: v.form.value(1),
		PhoneNumber:  v.form.value(2),
	})
	switch {
	case errors.Is(err, state.ErrDuplicateContact):
		return v, alert("A contact with that phone number already exists")
	case err != nil:
		return v, alert("Please enter a phone number")
	}
	v.creating = false
	v.refresh()
	v.list.Select(len(v.list.Items()) - 1)
	return v, nil
}

func (v *FamilyView) View() string {
	if v.confirmingDelete {
		return confirmBox(v.styles, v.width, v.height,
			"Remove contact?", fmt.Sprintf("%s will be removed from your family list", v.deleteTarget.Name))
	}
	if v.creating {
		return v.form.view(v.styles, v.width, v.height, "")
	}

	var content string
	if len(v.list.Items()) == 0 {
		content = lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Title.Render("Family & Friends"),
			emptyState(v.styles, v.width, v.height, "No family members yet", "Press n to add someone"),
		)
	} else {
		content = v.list.View()
	}
	content += "\n" + helpLine(v.styles, "↵", "call", "v", "video call", "n", "add", "d", "remove")
	return styles.CenterView(content, v.width, v.height)
}
