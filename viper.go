// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var (
	// ErrNilViper is returned to the fx.App when the externally supplied Viper
	// instance is nil
	ErrNilViper = errors.New("the viper instance cannot be nil")
)

// Unmarshaler is the strategy a hosted application uses to read its settings.
// Every host built by this package supplies one as a component.
type Unmarshaler interface {
	// Unmarshal reads configuration data into the given struct
	Unmarshal(value interface{}) error

	// UnmarshalKey reads configuration data from a key into the given struct
	UnmarshalKey(key string, value interface{}) error
}

// ViperUnmarshaler is the Unmarshaler backed by a host's settings.
type ViperUnmarshaler struct {
	// Viper is the required Viper instance to which all unmarshal operations are delegated
	Viper *viper.Viper

	// Options are passed to every unmarshal call
	Options []viper.DecoderConfigOption

	// Printer receives a line per unmarshal.  If nil, nothing is printed.
	Printer fx.Printer
}

func (vu ViperUnmarshaler) printf(template string, args ...interface{}) {
	if vu.Printer != nil {
		vu.Printer.Printf(template, args...)
	}
}

// Unmarshal implements Unmarshaler
func (vu ViperUnmarshaler) Unmarshal(value interface{}) error {
	vu.printf("UNMARSHAL => %T", value)
	return vu.Viper.Unmarshal(value, vu.Options...)
}

// UnmarshalKey implements Unmarshaler
func (vu ViperUnmarshaler) UnmarshalKey(key string, value interface{}) error {
	vu.printf("UNMARSHAL KEY\t[%s] => %T", key, value)
	return vu.Viper.UnmarshalKey(key, value, vu.Options...)
}

// ViperUnmarshalerIn is the set of optional dependencies for the Unmarshaler
// component created by ForViper.
type ViperUnmarshalerIn struct {
	fx.In

	// Options are appended to the options passed to ForViper
	Options []viper.DecoderConfigOption `optional:"true"`

	// Printer, if supplied, receives a line for each unmarshal operation
	Printer fx.Printer `optional:"true"`
}

// ForViper supplies a Viper instance to the enclosing fx.App along with an
// Unmarshaler backed by it.  DefaultDecodeHooks always runs first, so the given
// options may override it.
func ForViper(v *viper.Viper, o ...viper.DecoderConfigOption) fx.Option {
	if v == nil {
		return fx.Error(ErrNilViper)
	}

	return fx.Options(
		fx.Supply(v),
		fx.Provide(
			func(in ViperUnmarshalerIn) Unmarshaler {
				options := make([]viper.DecoderConfigOption, 0, 1+len(o)+len(in.Options))
				options = append(options, DefaultDecodeHooks)
				options = append(options, o...)
				options = append(options, in.Options...)

				vu := ViperUnmarshaler{
					Viper:   v,
					Options: options,
				}

				if in.Printer != nil {
					vu.Printer = NewModulePrinter(Module, in.Printer)
				}

				return vu
			},
		),
	)
}
