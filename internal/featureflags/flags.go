// Package featureflags evaluates rollout flags parsed from configuration.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

type kind int

const (
	kindOn kind = iota
	kindOff
	kindPercent
)

type flag struct {
	kind kind
	pct  int
}

// Set holds parsed feature flags. The zero value has no flags.
//
// Flags come from a comma-separated list, for example
// "events=on,fast_analytics=25%,legacy_sort=off". Percentage values roll a
// flag out to a deterministic bucket of users.
type Set struct {
	flags map[string]flag
}

// Parse builds a Set from a comma-separated key=value list. Malformed pairs
// are skipped.
func Parse(raw string) *Set {
	out := make(map[string]flag)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := normalize(parts[0])
		value := normalize(parts[1])
		if name == "" || value == "" {
			continue
		}

		switch value {
		case "on", "true", "1":
			out[name] = flag{kind: kindOn}
		case "off", "false", "0":
			out[name] = flag{kind: kindOff}
		default:
			if !strings.HasSuffix(value, "%") {
				continue
			}
			pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
			if err != nil || pct < 0 || pct > 100 {
				continue
			}
			out[name] = flag{kind: kindPercent, pct: pct}
		}
	}

	return &Set{flags: out}
}

// Enabled reports whether the flag is on for the given user. Unknown flags
// are off.
func (s *Set) Enabled(name string, userID uint) bool {
	return s.EnabledDefault(name, userID, false)
}

// EnabledDefault is Enabled with an explicit fallback for flags absent from
// the configuration.
func (s *Set) EnabledDefault(name string, userID uint, fallback bool) bool {
	if s == nil {
		return fallback
	}
	f, ok := s.flags[normalize(name)]
	if !ok {
		return fallback
	}

	switch f.kind {
	case kindOn:
		return true
	case kindOff:
		return false
	}

	if f.pct >= 100 {
		return true
	}
	// Percentage rollouts need a stable identity to bucket on
	if f.pct <= 0 || userID == 0 {
		return false
	}
	return bucket(name, userID) < f.pct
}

// States evaluates every configured flag for one user.
func (s *Set) States(userID uint) map[string]bool {
	if s == nil {
		return nil
	}
	out := make(map[string]bool, len(s.flags))
	for name := range s.flags {
		out[name] = s.Enabled(name, userID)
	}
	return out
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// bucket maps (flag, user) onto [0, 100) deterministically, so a user stays
// in or out of a rollout across requests.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
