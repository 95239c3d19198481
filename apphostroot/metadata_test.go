// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphostroot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	before := Registered()
	Register(Metadata{Key: "TestRegister", Path: "a"}, Metadata{Key: "TestRegister", Path: "b"})

	after := Registered()
	assert.Len(after, len(before)+2)
	assert.Equal(Metadata{Key: "TestRegister", Path: "b"}, after[len(after)-1])

	after[len(after)-1].Path = "changed"
	assert.Equal("b", Registered()[len(after)-1].Path)
}

func TestCandidates(t *testing.T) {
	assert := assert.New(t)
	ms := []Metadata{
		{Key: "app", Path: "3", Priority: 5},
		{Key: "other", Path: "x"},
		{Key: "github.com/example/APP", Path: "1", Priority: -1},
		{Key: "app", Path: "2", Priority: 5},
		{Key: "App", Path: "0", Priority: -1},
	}

	var paths []string
	for _, m := range candidates("github.com/example/app", ms) {
		paths = append(paths, m.Path)
	}

	assert.Equal([]string{"1", "0", "3", "2"}, paths)
	assert.Empty(candidates("nosuch", ms))
}
