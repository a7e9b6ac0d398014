package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Confirm key.Binding
	Back    key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Sound   key.Binding
	Pro     key.Binding
	Time    key.Binding
	All     key.Binding
	Reset   key.Binding
	Flash   key.Binding
	Listen  key.Binding
	Accent  key.Binding
}

var keys = keyMap{
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "aceptar")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "volver")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "arriba")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "abajo")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "izquierda")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "derecha")),
	Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("espacio", "marcar")),
	Sound:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sonido")),
	Pro:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "modo pro")),
	Time:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tiempo")),
	All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "todas")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restablecer")),
	Flash:   key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "flash (-2 vidas)")),
	Listen:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "escuchar")),
	Accent:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "acentos")),
}
