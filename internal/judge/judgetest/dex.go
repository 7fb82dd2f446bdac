// internal/judge/judgetest/dex.go
//
// Creature list for the judge stub, loaded from the embedded assets.
//   - pick: random entry honouring region and special-form filters
//     (no regions selected means every region).
//   - search: case-insensitive prefix match over English and Japanese names.

package judgetest

import (
	"errors"
	"math/rand"
	"strings"

	"github.com/robalobadob/silhouette-quiz/assets"
)

const searchLimit = 50

var typeLabels = map[string]string{
	"normal": "ノーマル", "fire": "ほのお", "water": "みず", "grass": "くさ", "electric": "でんき",
	"ice": "こおり", "fighting": "かくとう", "poison": "どく", "ground": "じめん", "flying": "ひこう",
	"psychic": "エスパー", "bug": "むし", "rock": "いわ", "ghost": "ゴースト", "dragon": "ドラゴン",
	"dark": "あく", "steel": "はがね", "fairy": "フェアリー",
}

type dex struct {
	entries []assets.Entry
	regions []assets.Region
}

func loadDex() (*dex, error) {
	entries, err := assets.Dex()
	if err != nil {
		return nil, err
	}
	regions, err := assets.Regions()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("judgetest: dex is empty")
	}
	return &dex{entries: entries, regions: regions}, nil
}

func (d *dex) regionOf(id int) assets.Region {
	for _, r := range d.regions {
		if r.Contains(id) {
			return r
		}
	}
	return assets.Region{}
}

// candidates lists the entries allowed by the filters.
func (d *dex) candidates(regions []string, allowMega, allowPrimal bool) []assets.Entry {
	selected := make(map[string]bool, len(regions))
	for _, r := range regions {
		selected[r] = true
	}
	var out []assets.Entry
	for _, e := range d.entries {
		switch e.Form {
		case "mega":
			if !allowMega {
				continue
			}
		case "primal":
			if !allowPrimal {
				continue
			}
		}
		if len(selected) > 0 && !selected[d.regionOf(e.ID).Key] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// find returns the entry with the given English name.
func (d *dex) find(name string) (assets.Entry, bool) {
	for _, e := range d.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return assets.Entry{}, false
}

func pickOne(list []assets.Entry) assets.Entry {
	return list[rand.Intn(len(list))]
}

// search returns up to searchLimit names starting with prefix, in dex order.
func (d *dex) search(prefix string) []string {
	p := strings.ToLower(prefix)
	out := make([]string, 0, 8)
	if p == "" {
		return out
	}
	for _, e := range d.entries {
		for _, name := range []string{e.Name, e.Japanese} {
			if name != "" && strings.HasPrefix(strings.ToLower(name), p) {
				out = append(out, name)
				break
			}
		}
		if len(out) >= searchLimit {
			break
		}
	}
	return out
}

func typeLabel(t string) string {
	if v, ok := typeLabels[t]; ok {
		return v
	}
	return t
}
