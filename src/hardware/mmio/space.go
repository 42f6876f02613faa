package mmio

import (
	"fmt"
	"sync"
)

type Op uint8

const (
	Read Op = iota
	Write
)

func (o Op) String() string {
	if o == Write {
		return "W"
	}
	return "R"
}

// Access is one entry in the trace of a Space.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%s 0x%08X 0x%08X", a.Op, a.Addr, a.Value)
}

// Register is a device model bound to one address of a Space.
type Register interface {
	Read() uint32
	Write(v uint32)
}

///////////////////////////////////////////////////////////////////////
// Space is a simulated register space for host side runs and tests.
// Unmapped addresses behave as plain memory cells that start at zero.
// Every access is traced in order.
///////////////////////////////////////////////////////////////////////
type Space struct {
	mu    sync.Mutex
	cells map[uintptr]uint32
	regs  map[uintptr]Register
	trace []Access
}

func NewSpace() *Space {
	return &Space{
		cells: make(map[uintptr]uint32),
		regs:  make(map[uintptr]Register),
	}
}

// Map binds a device register to addr, replacing any plain cell there.
func (s *Space) Map(addr uintptr, r Register) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cells, addr)
	s.regs[addr] = r
}

// Poke sets a plain cell without tracing it. Used to seed power-on values.
func (s *Space) Poke(addr uintptr, v uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[addr] = v
}

// Peek reads a plain cell without tracing it.
func (s *Space) Peek(addr uintptr) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[addr]
}

func (s *Space) Get32(addr uintptr) uint32 {
	s.mu.Lock()
	r, ok := s.regs[addr]
	if !ok {
		v := s.cells[addr]
		s.trace = append(s.trace, Access{Op: Read, Addr: addr, Value: v})
		s.mu.Unlock()
		return v
	}
	s.mu.Unlock()
	//device models may take their own locks (and call back into output
	//writers), so they run outside ours
	v := r.Read()
	s.record(Access{Op: Read, Addr: addr, Value: v})
	return v
}

func (s *Space) Put32(addr uintptr, v uint32) {
	s.mu.Lock()
	r, ok := s.regs[addr]
	if !ok {
		s.cells[addr] = v
		s.trace = append(s.trace, Access{Op: Write, Addr: addr, Value: v})
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.record(Access{Op: Write, Addr: addr, Value: v})
	r.Write(v)
}

func (s *Space) record(a Access) {
	s.mu.Lock()
	s.trace = append(s.trace, a)
	s.mu.Unlock()
}

// Trace returns a copy of every access so far.
func (s *Space) Trace() []Access {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Access(nil), s.trace...)
}

// Writes returns the traced writes, optionally only those to addrs.
func (s *Space) Writes(addrs ...uintptr) []Access {
	var out []Access
	for _, a := range s.Trace() {
		if a.Op != Write {
			continue
		}
		if len(addrs) == 0 || contains(addrs, a.Addr) {
			out = append(out, a)
		}
	}
	return out
}

// Reset forgets the trace but keeps register and cell state.
func (s *Space) Reset() {
	s.mu.Lock()
	s.trace = nil
	s.mu.Unlock()
}

func contains(addrs []uintptr, a uintptr) bool {
	for _, x := range addrs {
		if x == a {
			return true
		}
	}
	return false
}
