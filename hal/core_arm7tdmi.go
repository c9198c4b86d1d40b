// hal/core_arm7tdmi.go

//go:build tinygo && arm7tdmi

package hal

import "device/arm"

// cpsr I and F bit positions.
const (
	cpsrF = 1 << 6
	cpsrI = 1 << 7
)

// ARMCore is the Core of an ARM7TDMI running in a privileged mode. From USER
// mode the CPSR control bits cannot be changed and writes are ignored.
type ARMCore struct{}

func (ARMCore) InterruptMask() IF {
	cpsr := uint32(arm.AsmFull("mrs {}, cpsr", nil))
	return IF((cpsr >> 6) & 3)
}

func (ARMCore) SetInterruptMask(s IF) {
	cpsr := uint32(arm.AsmFull("mrs {}, cpsr", nil))
	cpsr = cpsr&^(cpsrI|cpsrF) | uint32(s&AllMasked)<<6
	arm.AsmFull("msr cpsr_c, {cpsr}", map[string]interface{}{"cpsr": cpsr})
}
