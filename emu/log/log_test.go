package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gopkg.in/Sirupsen/logrus.v0"
)

type pcContext struct{ pc uint16 }

func (c *pcContext) AddLogContext(e *EntryZ) { e.Hex16("pc", c.pc) }

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	SetOutput(buf)
	t.Cleanup(func() { SetOutput(nopWriter{}) })
	return buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestModuleByName(t *testing.T) {
	for _, name := range []string{"emu", "cpu", "mem", "hwio", "ppu"} {
		mod, ok := ModuleByName(name)
		if !ok {
			t.Fatalf("module %q not found", name)
		}
		if mod.String() != name {
			t.Errorf("mod.String() = %q, want %q", mod.String(), name)
		}
	}

	if _, ok := ModuleByName("<error>"); ok {
		t.Errorf("ModuleByName(<error>) should not be found")
	}
	if _, ok := ModuleByName("foobar"); ok {
		t.Errorf("ModuleByName(foobar) should not be found")
	}
}

func TestNewModule(t *testing.T) {
	mod := NewModule("testmod")
	got, ok := ModuleByName("testmod")
	if !ok || got != mod {
		t.Fatalf("ModuleByName(testmod) = %v, %t, want %v, true", got, ok, mod)
	}

	found := false
	for _, name := range ModuleNames() {
		if name == "testmod" {
			found = true
		}
	}
	if !found {
		t.Errorf("testmod not listed in ModuleNames()")
	}
}

func TestDebugDisabledByDefault(t *testing.T) {
	mod := NewModule("quiet")
	if e := mod.DebugZ("hidden"); e != nil {
		t.Fatalf("DebugZ should return nil for a disabled module")
	}

	// nil entries are valid and discard everything.
	mod.DebugZ("hidden").Hex8("val", 1).String("s", "s").End()

	if mod.WarnZ("visible") == nil {
		t.Fatalf("WarnZ should always be enabled")
	}
}

func TestEntryZ(t *testing.T) {
	buf := captureOutput(t)

	mod := NewModule("zmod")
	EnableDebugModules(mod.Mask())
	defer DisableDebugModules(mod.Mask())

	ctx := &pcContext{pc: 0xC000}
	AddContext(ctx)
	defer RemoveContext(ctx)

	mod.DebugZ("hello").
		Hex8("val", 0x1a).
		Hex16("addr", 0x2002).
		Bool("ok", true).
		Error("err", errors.New("boom")).
		End()

	out := buf.String()
	for _, want := range []string{"hello", "val=1a", "addr=2002", "ok=true", "err=boom", "pc=c000", "_mod=zmod"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q doesn't contain %q", out, want)
		}
	}
}
