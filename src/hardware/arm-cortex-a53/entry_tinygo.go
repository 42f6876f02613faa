//go:build tinygo && rpi

package arm_cortex_a53

import (
	"device/arm"
)

//
// ReadEntryState reads the three values stage 2 needs straight out of the
// system registers. Must be called before anything else touches the stack
// pointer in a way we care about.
//
func ReadEntryState() EntryState {
	var midr, el, sp uint64
	arm.AsmFull(`mrs x27, midr_el1
		str x27,{midr}
		mrs x27, CurrentEL
		str x27,{el}
		mov x27, sp
		str x27,{sp}`, map[string]interface{}{"midr": &midr, "el": &el, "sp": &sp})
	return DecodeEntryState(midr, el, sp)
}

func WaitForEvent() {
	arm.Asm("wfe")
}

func Nop() {
	arm.Asm("nop")
}

// WFEHalter is the fail-stop: it parks the core on wfe forever.
type WFEHalter struct{}

func (WFEHalter) Halt() {
	for {
		WaitForEvent()
	}
}
