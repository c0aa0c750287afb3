package debugger

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCallStack(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		var cstack callStack
		cstack.push(0xC7C2, 0xC7E7, 0xC7C5, sffNone)
		cstack.push(0xC801, 0xCBAE, 0xC804, sffNone)

		fi := cstack.build(0xF099)
		want := []FrameInfo{
			{"CBAE", "$F099"},
			{"C7E7", "$C801"},
			{"[bottom of stack]", "$C7C2"},
		}
		if diff := cmp.Diff(want, fi); diff != "" {
			t.Fatalf("callstack differs (-want +got):\n%s", diff)
		}
	})

	t.Run("interrupts", func(t *testing.T) {
		var cstack callStack
		cstack.push(0x8010, 0x9000, 0x8013, sffNone)
		cstack.push(0x9004, 0xA000, 0x9004, sffNMI)
		cstack.push(0xA002, 0xB000, 0xA002, sffIRQ)

		fi := cstack.build(0xB001)
		want := []FrameInfo{
			{"[irq] $B000", "$B001"},
			{"[nmi] $A000", "$A002"},
			{"9000", "$9004"},
			{"[bottom of stack]", "$8010"},
		}
		if diff := cmp.Diff(want, fi); diff != "" {
			t.Fatalf("callstack differs (-want +got):\n%s", diff)
		}
	})

	t.Run("empty", func(t *testing.T) {
		var cstack callStack
		cstack.pop()

		fi := cstack.build(0xF099)
		want := []FrameInfo{
			{"[bottom of stack]", "$F099"},
		}
		if diff := cmp.Diff(want, fi); diff != "" {
			t.Fatalf("callstack differs (-want +got):\n%s", diff)
		}
	})
}
