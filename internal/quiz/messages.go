package quiz

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Player-facing notices. The cooldown notice is fixed text; the remaining
// seconds are exposed separately through Cooldown.Remaining.
const (
	MsgEmptyGuess = "ポケモン名を入力してください"
	MsgCooldown   = "回答は5秒空けてください"
	MsgCorrect    = "正解!"
	MsgSolved     = "この問題はすでに解かれています"
	MsgIncorrect  = "はずれ"
	MsgNetwork    = "通信に失敗しました。もう一度お試しください"
	MsgExpired    = "セッションが切れました。スタートに戻ってください"
)

// scoped is implemented by every message that belongs to one Quiz (or Result)
// instance. Messages whose scope is not the live instance are dropped.
type scoped interface {
	scope() string
}

// normalizeInput folds full-width / half-width variants (NFKC) and trims
// surrounding whitespace.
func normalizeInput(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}
