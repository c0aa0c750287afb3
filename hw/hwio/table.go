package hwio

import "yane/emu/log"

// BankIO8 is implemented by the devices connected to a bus. A device only
// services the addresses it claims: reads return false and writes return
// false for an address the device doesn't decode.
type BankIO8 interface {
	Read8(addr uint16) (uint8, bool)
	Write8(addr uint16, val uint8) bool
}

// Table is a bus, it dispatches accesses to the first device, in mapping
// order, that claims the address. Devices mapped first thus take precedence
// over the ones mapped after.
type Table struct {
	Name string

	devs []mapping
}

type mapping struct {
	name string
	io   BankIO8
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

// Reset removes all mapped devices.
func (t *Table) Reset() {
	t.devs = t.devs[:0]
}

// Map connects a device to the bus, with a lower priority than the devices
// already mapped.
func (t *Table) Map(name string, io BankIO8) {
	log.ModHwIo.DebugZ("mapping device").
		String("bus", t.Name).
		String("dev", name).
		Int("prio", len(t.devs)).
		End()

	t.devs = append(t.devs, mapping{name: name, io: io})
}

// Devices returns the names of the mapped devices, by priority.
func (t *Table) Devices() []string {
	names := make([]string, len(t.devs))
	for i, d := range t.devs {
		names[i] = d.name
	}
	return names
}

func (t *Table) Read8(addr uint16) (uint8, bool) {
	for _, d := range t.devs {
		if val, ok := d.io.Read8(addr); ok {
			return val, true
		}
	}
	return 0, false
}

func (t *Table) Write8(addr uint16, val uint8) bool {
	for _, d := range t.devs {
		if d.io.Write8(addr, val) {
			return true
		}
	}
	return false
}
