package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/silhouette-quiz/internal/quiz"
)

const maxShownSuggestions = 8

// View implements tea.Model.
func (a App) View() string {
	var body string
	var keys help.KeyMap
	switch p := a.flow.Phase().(type) {
	case *quiz.StartPhase:
		body, keys = a.viewStart(p), startKeyMap
	case *quiz.QuizPhase:
		body, keys = a.viewQuiz(p.Quiz), quizKeyMap
	case *quiz.ResultPhase:
		body, keys = a.viewResult(p), resultKeyMap
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("シルエットクイズ"),
		"",
		body,
		"",
		a.help.View(keys),
	)
}

func (a App) viewStart(p *quiz.StartPhase) string {
	var b strings.Builder
	b.WriteString("出題する地方 (未選択なら全地方)\n")
	for i, r := range a.opts.Regions {
		cursor := "  "
		if i == a.cursor {
			cursor = CursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s %s\n", cursor, checkbox(a.chosen[r.Key]), r.Label,
			MutedStyle.Render(fmt.Sprintf("No.%d-%d", r.From, r.To)))
	}
	fmt.Fprintf(&b, "\n%s メガシンカを含める   %s ゲンシカイキを含める\n", checkbox(a.mega), checkbox(a.primal))

	switch {
	case p.Starting:
		fmt.Fprintf(&b, "\n%s 問題を作成中…", a.spinner.View())
	case p.Err != nil:
		b.WriteString("\n" + ErrorStyle.Render("問題を作成できませんでした: "+p.Err.Error()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) viewQuiz(q *quiz.Quiz) string {
	parts := []string{a.viewPicture(q)}

	h := q.Hints()
	var hints strings.Builder
	for _, f := range quiz.HintFields {
		fmt.Fprintf(&hints, "%s%s\n", HintLabel.Render(hintTitle(f)), hintValue(h, f))
	}
	parts = append(parts, PanelStyle.Render(strings.TrimRight(hints.String(), "\n")))

	g := q.Guesser()
	prompt := a.input.View()
	if g.Cooldown().Active() {
		prompt = MutedStyle.Render(prompt)
	}
	if g.Pending() {
		prompt += " " + a.spinner.View()
	}
	parts = append(parts, prompt)

	if list := viewSuggestions(q.Suggestions()); list != "" {
		parts = append(parts, list)
	}
	if msg := g.Message(); msg != "" {
		parts = append(parts, statusLine(g, msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) viewPicture(q *quiz.Quiz) string {
	img, err := q.Picture()
	switch {
	case err != nil:
		return ErrorStyle.Render("画像を読み込めませんでした")
	case img == nil:
		return a.spinner.View() + " 画像を読み込み中…"
	}
	return renderPicture(img, a.opts.ImageWidth, pictureBackdrop)
}

func viewSuggestions(s *quiz.Suggestions) string {
	items := s.Items()
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	for i, name := range items {
		if i == maxShownSuggestions {
			b.WriteString(MutedStyle.Render(fmt.Sprintf("  …他 %d 件", len(items)-i)))
			break
		}
		if i == s.Cursor() {
			b.WriteString(SelectedStyle.Render("  "+name+"  ") + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusLine(g *quiz.Guesser, msg string) string {
	switch {
	case g.Expired():
		return ErrorStyle.Render(msg)
	case g.LastOutcome() == quiz.OutcomeCorrect || g.LastOutcome() == quiz.OutcomeSolved:
		return OKStyle.Render(msg)
	case msg == quiz.MsgNetwork:
		return ErrorStyle.Render(msg)
	}
	return msg
}

func hintTitle(f quiz.HintField) string {
	switch f {
	case quiz.HintType:
		return "タイプ"
	case quiz.HintRegion:
		return "地方"
	case quiz.HintFirstLetter:
		return "最初の文字"
	}
	return f.String()
}

func hintValue(h *quiz.Hints, f quiz.HintField) string {
	if !h.Revealed(f) {
		return MutedStyle.Render("？？？")
	}
	if v, ok := h.Value(f); ok {
		return v
	}
	if h.Loading() {
		return MutedStyle.Render("読み込み中…")
	}
	return ErrorStyle.Render("取得失敗 (もう一度押すと再試行)")
}

func (a App) viewResult(p *quiz.ResultPhase) string {
	s := p.Session
	var parts []string

	switch {
	case s.Solved:
		parts = append(parts, OKStyle.Render("正解!"))
	case s.GaveUp:
		parts = append(parts, "ギブアップ")
	}
	if p.Err != nil {
		parts = append(parts, ErrorStyle.Render("答えを取得できませんでした"))
	} else {
		answer := "答え: " + TitleStyle.Render(s.Answer)
		if s.PokemonID > 0 {
			answer += MutedStyle.Render(fmt.Sprintf("  No.%d", s.PokemonID))
		}
		parts = append(parts, answer)
	}
	if len(s.Types) > 0 {
		parts = append(parts, "タイプ: "+strings.Join(s.Types, " / "))
	}
	if s.Region != "" {
		parts = append(parts, "地方: "+a.regionLabel(s.Region))
	}

	switch {
	case p.Artwork != nil:
		parts = append(parts, renderPicture(p.Artwork, a.opts.ImageWidth, pictureBackdrop))
	case p.ArtworkErr == nil:
		parts = append(parts, a.spinner.View()+" 画像を読み込み中…")
	}

	if a.opts.ShowQR && a.opts.ArtworkURL != nil && p.Err == nil {
		url := a.opts.ArtworkURL(s.ID)
		if qr, err := renderQR(url); err == nil {
			parts = append(parts, qr, MutedStyle.Render(url))
		}
	}

	switch {
	case p.Restarting:
		parts = append(parts, a.spinner.View()+" 次の問題を作成中…")
	case p.RestartErr != nil:
		parts = append(parts, ErrorStyle.Render("次の問題を作成できませんでした: "+p.RestartErr.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) regionLabel(key string) string {
	for _, r := range a.opts.Regions {
		if r.Key == key {
			return r.Label
		}
	}
	return key
}

func checkbox(on bool) string {
	if on {
		return CursorStyle.Render("[x]")
	}
	return "[ ]"
}
