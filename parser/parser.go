package parser

import (
	"regexp"
	"strings"

	"github.com/go-faster/errors"
	"github.com/miekg/dns"
)

// Func extracts the blockable domains from a raw list.
type Func func(text string) DomainSet

var (
	// ||example.com^, ||example.com:443^, ||example.com^$important, ||example.com^|
	adguardBlockRule = regexp.MustCompile(`^\|\|([a-z0-9.-]+?)(?::\d+)?\^(?:\||\$.*)?$`)
	hostname         = regexp.MustCompile(`^[a-z0-9.-]+$`)
)

// Null-route addresses that mark a hosts entry as a block.
var blockingIPs = map[string]bool{
	"0.0.0.0":   true,
	"127.0.0.1": true,
}

// ForFormat returns the parser for f.
func ForFormat(f Format) (Func, error) {
	switch f {
	case FormatAdGuard:
		return ParseAdGuard, nil
	case FormatHosts:
		return ParseHosts, nil
	default:
		return nil, errors.Errorf("no parser for format %s", f)
	}
}

// ParseAdGuard extracts domains from whole-domain blocking rules of an
// AdGuard/Adblock filter list. Exceptions, cosmetic rules, path rules,
// wildcards and regex rules are ignored.
func ParseAdGuard(text string) DomainSet {
	domains := make(DomainSet)
	eachLine(text, func(line string) {
		if strings.HasPrefix(line, "!") {
			return
		}
		m := adguardBlockRule.FindStringSubmatch(line)
		if m == nil {
			return
		}
		domains.Add(m[1])
	})
	return domains
}

// ParseHosts extracts domains from hosts-file lines that null-route to
// 0.0.0.0 or 127.0.0.1. Only the first hostname of a line is used.
func ParseHosts(text string) DomainSet {
	domains := make(DomainSet)
	eachLine(text, func(line string) {
		if strings.HasPrefix(line, "#") {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !blockingIPs[fields[0]] {
			return
		}
		// CanonicalName lowercases and appends the root dot.
		name := strings.TrimSuffix(dns.CanonicalName(fields[1]), ".")
		if !hostname.MatchString(name) {
			return
		}
		domains.Add(name)
	})
	return domains
}

// eachLine calls fn for every non-empty, trimmed line of text.
func eachLine(text string, fn func(line string)) {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fn(line)
	}
}
