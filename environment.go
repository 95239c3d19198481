// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import "strings"

const (
	// Development is the default environment name for hosts.
	Development = "Development"

	// Staging is the conventional name for pre-production environments.
	Staging = "Staging"

	// Production is the conventional name for production environments.
	Production = "Production"
)

// HostEnvironment describes where and how a host is running.  Every host
// built by this package supplies its HostEnvironment as an fx component.
type HostEnvironment struct {
	// Name is the environment name, e.g. Development.  Settings files named
	// appsettings.<Name>.* are layered over the base settings.
	Name string

	// ApplicationName identifies the application, usually the entry point's name.
	ApplicationName string

	// ContentRoot is the directory the application uses for static and
	// configuration files.  It may be empty.
	ContentRoot string
}

// Is tests the environment name, ignoring case.
func (he HostEnvironment) Is(name string) bool {
	return strings.EqualFold(he.Name, name)
}

// IsDevelopment tests if this is the Development environment.
func (he HostEnvironment) IsDevelopment() bool { return he.Is(Development) }

// IsStaging tests if this is the Staging environment.
func (he HostEnvironment) IsStaging() bool { return he.Is(Staging) }

// IsProduction tests if this is the Production environment.
func (he HostEnvironment) IsProduction() bool { return he.Is(Production) }
