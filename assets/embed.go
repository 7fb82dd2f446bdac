// assets/embed.go
//
// Embedded data files.
//   - regions.txt: region catalogue shown on the start form and used by the
//     local judge stub to filter its picks.
//   - dex.txt: small creature list served by the local judge stub.

package assets

import (
	"bufio"
	"embed"
	"fmt"
	"strconv"
	"strings"
)

//go:embed regions.txt dex.txt
var FS embed.FS

// Region is one selectable region filter.
type Region struct {
	Key   string // wire key, e.g. "kanto"
	Label string // display name
	From  int    // first national id (inclusive)
	To    int    // last national id (inclusive)
}

// Contains reports whether a national id belongs to the region.
func (r Region) Contains(id int) bool { return id >= r.From && id <= r.To }

// Entry is one line of dex.txt.
type Entry struct {
	ID       int
	Name     string
	Japanese string
	Types    []string
	Form     string // "", "mega" or "primal"
}

// readLines returns the non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Regions parses regions.txt in file order.
func Regions() ([]Region, error) {
	lines, err := readLines("regions.txt")
	if err != nil {
		return nil, err
	}
	out := make([]Region, 0, len(lines))
	for _, l := range lines {
		parts := strings.Split(l, "|")
		if len(parts) != 4 {
			return nil, fmt.Errorf("regions.txt: malformed line %q", l)
		}
		from, err1 := strconv.Atoi(parts[2])
		to, err2 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("regions.txt: bad range in %q", l)
		}
		out = append(out, Region{Key: parts[0], Label: parts[1], From: from, To: to})
	}
	return out, nil
}

// Dex parses dex.txt in file order.
func Dex() ([]Entry, error) {
	lines, err := readLines("dex.txt")
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(lines))
	for _, l := range lines {
		parts := strings.Split(l, "|")
		if len(parts) != 5 {
			return nil, fmt.Errorf("dex.txt: malformed line %q", l)
		}
		id, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("dex.txt: bad id in %q", l)
		}
		out = append(out, Entry{
			ID:       id,
			Name:     parts[1],
			Japanese: parts[2],
			Types:    strings.Split(parts[3], ","),
			Form:     parts[4],
		})
	}
	return out, nil
}
