// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphostroot

import (
	"sort"
	"strings"
	"sync"
)

// Metadata associates an application key with a content root.
type Metadata struct {
	// Key is matched against the key being resolved, or its last path element.
	// Matching ignores case.
	Key string

	// Path is the content root.  Relative paths are resolved against the
	// Resolver's BaseDir.
	Path string

	// Marker, if set, names a file that must exist in Path for this metadata
	// to be chosen.  Only its last path element is used.
	Marker string

	// Priority orders candidates for the same key.  Lower values are tried first.
	Priority int
}

func (m Metadata) matches(key string) bool {
	return strings.EqualFold(m.Key, key) || strings.EqualFold(m.Key, lastElement(key))
}

// lastElement returns the portion of an import path or file path after the last separator.
func lastElement(key string) string {
	if i := strings.LastIndexAny(key, `/\`); i >= 0 {
		return key[i+1:]
	}

	return key
}

var (
	registryLock sync.RWMutex
	registry     []Metadata
)

// Register adds metadata to the global set used by resolvers that were not
// given any explicit Metadata.
func Register(m ...Metadata) {
	registryLock.Lock()
	registry = append(registry, m...)
	registryLock.Unlock()
}

// Registered returns a copy of the global metadata.
func Registered() []Metadata {
	registryLock.RLock()
	defer registryLock.RUnlock()
	return append([]Metadata(nil), registry...)
}

// candidates filters ms to those matching key, in priority order.  Metadata
// with equal priority keeps its original order.
func candidates(key string, ms []Metadata) (matched []Metadata) {
	for _, m := range ms {
		if m.matches(key) {
			matched = append(matched, m)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Priority < matched[j].Priority
	})

	return
}
