package arm_cortex_a53

// ***************************************
// MIDR_EL1, Main ID Register, Page 2808 of AArch64-Reference-Manual.
// ***************************************

const MainIDRegisterPartNumMask = 0x0000FFF0
const MainIDRegisterPartNumShift = 4

// ***************************************
// CurrentEL, Current Exception Level, Page 2547 of AArch64-Reference-Manual.
// ***************************************

const CurrentELMask = 0x0000000C
const CurrentELShift = 2

// InitialStackPointer is the stack top the boot image sets before any Go
// code runs. The stack grows down towards the loaded image at 0x0.
const InitialStackPointer = 0x3000
