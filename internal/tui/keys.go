package tui

import "github.com/charmbracelet/bubbles/key"

// startKeys drive the config form.
type startKeys struct {
	Up, Down, Toggle, All, Mega, Primal, Start, Quit key.Binding
}

func (k startKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.All, k.Mega, k.Primal, k.Start, k.Quit}
}

func (k startKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// quizKeys drive the question screen. Printable keys go to the text field.
type quizKeys struct {
	Submit, Pick, Up, Down, GiveUp, HintType, HintRegion, HintLetter, Back, Quit key.Binding
}

func (k quizKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Pick, k.HintType, k.HintRegion, k.HintLetter, k.GiveUp, k.Back}
}

func (k quizKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Pick, k.Up, k.Down},
		{k.HintType, k.HintRegion, k.HintLetter},
		{k.GiveUp, k.Back, k.Quit},
	}
}

// resultKeys drive the answer screen.
type resultKeys struct {
	Next, Back, Quit key.Binding
}

func (k resultKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Next, k.Back, k.Quit} }
func (k resultKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	startKeyMap = startKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "選択")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "全選択")),
		Mega:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "メガシンカ")),
		Primal: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "ゲンシカイキ")),
		Start:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "スタート")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "終了")),
	}

	quizKeyMap = quizKeys{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "回答")),
		Pick:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "候補を入力")),
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "前の候補")),
		Down:       key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "次の候補")),
		GiveUp:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "ギブアップ")),
		HintType:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "タイプ")),
		HintRegion: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "地方")),
		HintLetter: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "最初の文字")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "戻る")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "終了")),
	}

	resultKeyMap = resultKeys{
		Next: key.NewBinding(key.WithKeys("n", "enter"), key.WithHelp("n", "次の問題")),
		Back: key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "スタートへ")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "終了")),
	}
)
