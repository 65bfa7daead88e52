package parser

import (
	"net/netip"
	"sort"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a remote list.
type Format int

const (
	FormatUnknown Format = iota
	FormatAdGuard        // ||example.com^
	FormatHosts          // 0.0.0.0 example.com
)

var formatNames = map[Format]string{
	FormatAdGuard: "adguard",
	FormatHosts:   "hosts",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat maps a configuration spelling to a Format.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatUnknown, errors.Errorf("unknown list format %q", s)
}

func (f *Format) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// DomainSet is an unordered set of blockable hostnames.
type DomainSet map[string]struct{}

// NewDomainSet returns a set holding the accepted members of domains.
func NewDomainSet(domains ...string) DomainSet {
	s := make(DomainSet, len(domains))
	for _, d := range domains {
		s.Add(d)
	}
	return s
}

// Add inserts domain unless it is empty, localhost or an IP address.
// It reports whether the domain was accepted.
func (s DomainSet) Add(domain string) bool {
	domain = strings.TrimRight(domain, ".")
	if domain == "" || domain == "localhost" {
		return false
	}
	if _, err := netip.ParseAddr(domain); err == nil {
		return false
	}
	s[domain] = struct{}{}
	return true
}

func (s DomainSet) Contains(domain string) bool {
	_, ok := s[domain]
	return ok
}

func (s DomainSet) Len() int {
	return len(s)
}

// Sorted returns the members in ascending lexicographic order.
func (s DomainSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
