// Package featureflags evaluates switches configured as a key=value list,
// e.g. "profile_upsert=on" or "profile_upsert=25%".
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// ProfileUpsert makes a repeated profile submission replace the owner's
// existing profile instead of adding a second one.
const ProfileUpsert = "profile_upsert"

// Manager holds the parsed flag values.
type Manager struct {
	flags map[string]string
}

// NewManager parses a comma-separated list of name=value pairs. Malformed
// pairs are skipped.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			continue
		}
		name, value = normalize(name), normalize(value)
		if name == "" || value == "" {
			continue
		}
		out[name] = value
	}

	return &Manager{flags: out}
}

// Enabled evaluates a flag for the subject identified by key. Users are keyed
// by email since login ids change every session.
// Values: on/true/1, off/false/0, or N% for a deterministic rollout. An
// empty key is never inside a partial rollout.
func (m *Manager) Enabled(name, key string) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	pctRaw, isPct := strings.CutSuffix(value, "%")
	if !isPct {
		return false
	}
	pct, err := strconv.Atoi(pctRaw)
	switch {
	case err != nil, pct <= 0:
		return false
	case pct >= 100:
		return true
	case key == "":
		return false
	}
	return rolloutBucket(name, key) < pct
}

// Raw returns a copy of the configured values.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Snapshot evaluates every configured flag for key.
func (m *Manager) Snapshot(key string) map[string]bool {
	out := make(map[string]bool)
	if m == nil {
		return out
	}
	for name := range m.flags {
		out[name] = m.Enabled(name, key)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + strings.ToLower(key)))
	return int(h.Sum32() % 100)
}
