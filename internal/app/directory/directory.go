// Package directory provides the country name/code directory and country resolution.
package directory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/radio/internal/infra/radiooooo"
)

// maxCandidates bounds the number of candidates reported for an ambiguous query.
const maxCandidates = 10

// minPartialNameLength is the shortest display name eligible for substring matching.
// Codes are three letters, so they never take part in partial matching.
const minPartialNameLength = 4

// ErrUnknownCountry is returned when a query matches no country.
var ErrUnknownCountry = errors.New("unknown country")

// CountryFetcher defines the catalogue operation needed to build the directory.
type CountryFetcher interface {
	GetCountries(ctx context.Context) ([]radiooooo.Country, error)
}

// Entry is a single country of the directory.
type Entry struct {
	Code string
	Name string
}

// AmbiguousError is returned when a query matches more than one country.
type AmbiguousError struct {
	Query      string
	Candidates []Entry // Up to maxCandidates entries, sorted by name
	Total      int     // Number of matching countries before truncation
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("multiple matches for '%s' (%d countries)", e.Query, e.Total)
}

// Directory maps country display names and codes to canonical codes.
// It is immutable once built.
type Directory struct {
	names  map[string]string // code -> display name
	lookup map[string]string // lowercased name or code -> code
}

// New builds a directory from (code, name) pairs.
func New(countries []radiooooo.Country) *Directory {
	d := &Directory{
		names:  make(map[string]string, len(countries)),
		lookup: make(map[string]string, len(countries)*2),
	}
	for _, c := range countries {
		d.lookup[strings.ToLower(c.Name)] = c.Code
		d.lookup[strings.ToLower(c.Code)] = c.Code
		d.names[c.Code] = c.Name
	}
	return d
}

// Len returns the number of countries in the directory.
func (d *Directory) Len() int {
	return len(d.names)
}

// Name returns the display name for a code, or the code itself when unknown.
func (d *Directory) Name(code string) string {
	if name, ok := d.names[code]; ok {
		return name
	}
	return code
}

// Entries returns every country sorted by display name.
func (d *Directory) Entries() []Entry {
	entries := make([]Entry, 0, len(d.names))
	for code, name := range d.names {
		entries = append(entries, Entry{Code: code, Name: name})
	}
	sortEntries(entries)
	return entries
}

// Subset returns entries for the given codes sorted by code, without duplicates.
// Codes missing from the directory are named by their code.
func (d *Directory) Subset(codes []string) []Entry {
	seen := make(map[string]bool, len(codes))
	entries := make([]Entry, 0, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		entries = append(entries, Entry{Code: code, Name: d.Name(code)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code < entries[j].Code
	})
	return entries
}

// Resolve maps a free-form country name or code to its canonical code.
// Exact matches on the name or code win; otherwise a unique substring match
// on a display name is accepted.
func (d *Directory) Resolve(query string) (string, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	if q != "" {
		if code, ok := d.lookup[q]; ok {
			return code, nil
		}
	}

	var candidates []Entry
	if q != "" {
		seen := make(map[string]bool)
		for code, name := range d.names {
			lower := strings.ToLower(name)
			if utf8.RuneCountInString(lower) < minPartialNameLength || !strings.Contains(lower, q) {
				continue
			}
			if seen[code] {
				continue
			}
			seen[code] = true
			candidates = append(candidates, Entry{Code: code, Name: name})
		}
	}

	switch len(candidates) {
	case 0:
		err := errors.Mark(errors.Newf("unknown country: '%s'", query), ErrUnknownCountry)
		return "", errors.WithHint(err, "Try a country name (italy, japan) or ISO code (ITA, JPN)")
	case 1:
		zlog.Debug().Msgf("resolved country by partial match: query=%s code=%s", query, candidates[0].Code)
		return candidates[0].Code, nil
	default:
		sortEntries(candidates)
		total := len(candidates)
		if total > maxCandidates {
			candidates = candidates[:maxCandidates]
		}
		return "", &AmbiguousError{Query: query, Candidates: candidates, Total: total}
	}
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].Code < entries[j].Code
	})
}

// Cache loads the directory once and memoizes the result for the process lifetime.
type Cache struct {
	fetcher CountryFetcher

	once sync.Once
	dir  *Directory
	err  error
}

// NewCache creates a new directory cache backed by the given fetcher.
func NewCache(fetcher CountryFetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// Get returns the directory, fetching it on first use.
// A failed first load is memoized as well; there is no retry.
func (c *Cache) Get(ctx context.Context) (*Directory, error) {
	c.once.Do(func() {
		countries, err := c.fetcher.GetCountries(ctx)
		if err != nil {
			c.err = errors.Wrap(err, "failed to load country directory")
			return
		}
		c.dir = New(countries)
		zlog.Debug().Msgf("country directory loaded: count=%d", c.dir.Len())
	})
	return c.dir, c.err
}
