// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package apphost

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Module is the prefix this package uses for its informational output.
const Module = "apphost"

// Prepend creates the standard format for information output that uber/fx uses.
// It returns a string of the form "[module] template".
func Prepend(module, template string) string {
	return "[" + module + "] " + template
}

// PrinterFunc is a function type that implements fx.Printer.  This is useful
// for passing methods as printers, such as a zap SugaredLogger's Infof.
type PrinterFunc func(string, ...interface{})

// Printf implements fx.Printer.  Note that this method does not append
// a newline to the output.
func (pf PrinterFunc) Printf(template string, args ...interface{}) {
	pf(template, args...)
}

// NewPrinterWriter creates an fx.Printer that sends all output to the specified
// Writer, appending a newline to each call.  A failed write panics.
func NewPrinterWriter(w io.Writer) fx.Printer {
	return PrinterFunc(func(template string, args ...interface{}) {
		if _, err := fmt.Fprintf(w, template+"\n", args...); err != nil {
			panic(err)
		}
	})
}

var defaultPrinter fx.Printer = log.New(os.Stderr, "", log.LstdFlags)

// DefaultPrinter returns the fx.Printer used when a Factory is given none.
// This outputs to os.Stderr, in keeping with uber/fx's behavior.
func DefaultPrinter() fx.Printer {
	return defaultPrinter
}

// modulePrinter prefixes each line with a module name
type modulePrinter struct {
	module string
	p      fx.Printer
}

func (mp modulePrinter) Printf(template string, args ...interface{}) {
	mp.p.Printf(Prepend(mp.module, template), args...)
}

// NewModulePrinter decorates p so that each line is prefixed with module.
// A nil p means DefaultPrinter().
func NewModulePrinter(module string, p fx.Printer) fx.Printer {
	if p == nil {
		p = DefaultPrinter()
	}

	return modulePrinter{module: module, p: p}
}

// testLogger is implemented by both *testing.T and *testing.B
type testLogger interface {
	Name() string
	Logf(string, ...interface{})
}

// TestLogger returns an fx.Printer that logs to a test, prefixed by the test's name.
func TestLogger(t testLogger) fx.Printer {
	return PrinterFunc(func(template string, args ...interface{}) {
		t.Logf(t.Name()+" "+template, args...)
	})
}

// printerWriter adapts an fx.Printer to io.Writer, one Printf per Write
type printerWriter struct {
	p fx.Printer
}

func (pw printerWriter) Write(b []byte) (int, error) {
	pw.p.Printf("%s", bytes.TrimRight(b, "\n"))
	return len(b), nil
}

// NewEventLogger returns an fxevent.Logger that renders container events
// through an fx.Printer.  A nil p means DefaultPrinter().
func NewEventLogger(p fx.Printer) fxevent.Logger {
	if p == nil {
		p = DefaultPrinter()
	}

	return &fxevent.ConsoleLogger{
		W: printerWriter{p: p},
	}
}
