package pac

// --- TIMERn registers ---
var (
	TIM_IR  = reg("IR", 0x00)
	TIM_TCR = reg("TCR", 0x04)
	TIM_TC  = reg("TC", 0x08)
	TIM_PR  = reg("PR", 0x0C)
	TIM_PC  = reg("PC", 0x10)
	TIM_MCR = reg("MCR", 0x14)
	TIM_MR0 = reg("MR0", 0x18)
)

// --- TIMERn fields ---
var (
	TIM_IR_MR0INT = field(TIM_IR, "MR0INT", 0, 1) // write 1 to clear

	TIM_TCR_CEN  = field(TIM_TCR, "CEN", 0, 1)
	TIM_TCR_CRST = field(TIM_TCR, "CRST", 1, 1)

	TIM_PR_PM = field(TIM_PR, "PM", 0, 32)

	TIM_MCR_MR0I = field(TIM_MCR, "MR0I", 0, 1)
	TIM_MCR_MR0R = field(TIM_MCR, "MR0R", 1, 1)
	TIM_MCR_MR0S = field(TIM_MCR, "MR0S", 2, 1)

	TIM_MR0_MATCH = field(TIM_MR0, "MATCH", 0, 32)
)
