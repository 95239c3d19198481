// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

// Conditional is a simple strategy for including host options only
// when some condition holds.
type Conditional struct {
}

// Then returns all the given options as one HostOption if this Conditional
// is not nil.  A nil Conditional returns an option that does nothing.
func (c *Conditional) Then(o ...HostOption) HostOption {
	if c != nil {
		return Options[HostBuilder](o)
	}

	return Options[HostBuilder]{}
}

// If returns a non-nil Conditional if its sole argument is true.
// This keeps test-specific configuration declarative:
//
//	f.WithConfiguration(
//	  apphost.If(testing.Short()).Then(
//	    apphost.UseSetting("cache.enabled", false),
//	  ),
//	)
func If(f bool) *Conditional {
	if f {
		return new(Conditional)
	}

	return nil
}

// IfNot is the boolean inverse of If
func IfNot(f bool) *Conditional {
	return If(!f)
}
