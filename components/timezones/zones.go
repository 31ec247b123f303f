// Package timezones is a registrable custom component: a timezone picker
// backed by the embedded IANA identifier list. It demonstrates extending the
// component registry with an app-specific type alongside the built-in
// catalog.
package timezones

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed data/iana_timezones.txt
var dataFS embed.FS

const embeddedListPath = "data/iana_timezones.txt"

// ZoneSet is an immutable, sorted collection of zone identifiers with a
// per-region index, so the picker can offer "Europe/..." without rescanning
// the whole list on every render.
type ZoneSet struct {
	names   []string
	regions map[string][]string
}

var (
	embeddedOnce sync.Once
	embeddedSet  *ZoneSet
	embeddedErr  error
)

// Embedded returns the zone set parsed from the embedded IANA list, built
// once per process.
func Embedded() (*ZoneSet, error) {
	embeddedOnce.Do(func() {
		f, err := dataFS.Open(embeddedListPath)
		if err != nil {
			embeddedErr = fmt.Errorf("timezones: open embedded list: %w", err)
			return
		}
		defer func() { _ = f.Close() }()
		embeddedSet, embeddedErr = ParseZones(f)
	})
	return embeddedSet, embeddedErr
}

// ParseZones reads one zone identifier per line, skipping blanks and `#`
// comments. Duplicates collapse; the region index keys on the segment before
// the first slash, so region-less identifiers like UTC are reachable only
// through the full list.
func ParseZones(r io.Reader) (*ZoneSet, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	set := &ZoneSet{regions: map[string][]string{}}
	seen := map[string]struct{}{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		set.names = append(set.names, name)
		if region, _, ok := strings.Cut(name, "/"); ok {
			set.regions[region] = append(set.regions[region], name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read zone list: %w", err)
	}

	sort.Strings(set.names)
	for _, zones := range set.regions {
		sort.Strings(zones)
	}
	return set, nil
}

// Len reports the number of distinct zones.
func (s *ZoneSet) Len() int {
	return len(s.names)
}

// All returns every zone identifier in sorted order.
func (s *ZoneSet) All() []string {
	return append([]string{}, s.names...)
}

// Region returns the zones under one region prefix, e.g. "Europe". A
// trailing slash is tolerated. Unknown regions yield an empty list.
func (s *ZoneSet) Region(name string) []string {
	zones := s.regions[strings.TrimSuffix(name, "/")]
	return append([]string{}, zones...)
}
