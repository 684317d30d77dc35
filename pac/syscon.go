package pac

// --- SYSCON registers ---
var (
	FLASHCFG  = reg("FLASHCFG", 0x000)
	PLL0CON   = reg("PLL0CON", 0x080)
	PLL0CFG   = reg("PLL0CFG", 0x084)
	PLL0STAT  = reg("PLL0STAT", 0x088)
	PLL0FEED  = reg("PLL0FEED", 0x08C)
	PCONP     = reg("PCONP", 0x0C4)
	CCLKSEL   = reg("CCLKSEL", 0x104)
	CLKSRCSEL = reg("CLKSRCSEL", 0x10C)
	SCS       = reg("SCS", 0x1A0)
	PCLKSEL   = reg("PCLKSEL", 0x1A8)
	PBOOST    = reg("PBOOST", 0x1B0)
)

// --- SYSCON fields ---
var (
	SCS_OSCRANGE = field(SCS, "OSCRANGE", 4, 1)
	SCS_OSCEN    = field(SCS, "OSCEN", 5, 1)
	SCS_OSCSTAT  = field(SCS, "OSCSTAT", 6, 1)

	CLKSRCSEL_CLKSRC = field(CLKSRCSEL, "CLKSRC", 0, 1) // 1 = main oscillator

	PLL0CON_PLLE = field(PLL0CON, "PLLE", 0, 1)

	PLL0CFG_MSEL = field(PLL0CFG, "MSEL", 0, 5)
	PLL0CFG_PSEL = field(PLL0CFG, "PSEL", 5, 2)

	PLL0STAT_PLLE  = field(PLL0STAT, "PLLE_STAT", 8, 1)
	PLL0STAT_PLOCK = field(PLL0STAT, "PLOCK", 10, 1)

	PLL0FEED_PLLFEED = field(PLL0FEED, "PLLFEED", 0, 8)

	CCLKSEL_CCLKDIV = field(CCLKSEL, "CCLKDIV", 0, 5)
	CCLKSEL_CCLKSEL = field(CCLKSEL, "CCLKSEL", 8, 1) // 1 = PLL0 output

	PCLKSEL_PCLKDIV = field(PCLKSEL, "PCLKDIV", 0, 5)

	PBOOST_BOOST = field(PBOOST, "BOOST", 0, 2)
)

// Feed sequence that latches PLL0CON/PLL0CFG.
const (
	PLLFeed1 = 0xAA
	PLLFeed2 = 0x55
)

// FLASHCFGValue selects 5 CPU clocks per flash access (FLASHTIM=4) with the
// reserved low bits at their reset value; valid up to 120 MHz.
const FLASHCFGValue = 0x403A

// BoostMax enables the power boost needed above 100 MHz.
const BoostMax = 3

// PCONP power bits.
const (
	PCTIM0  = 1
	PCTIM1  = 2
	PCUART0 = 3
	PCUART1 = 4
	PCUART4 = 8
	PCTIM2  = 22
	PCTIM3  = 23
	PCUART2 = 24
	PCUART3 = 25
)

// PCONPTimer and PCONPUART are indexed by instance number.
var (
	PCONPTimer = [4]uint8{PCTIM0, PCTIM1, PCTIM2, PCTIM3}
	PCONPUART  = [5]uint8{PCUART0, PCUART1, PCUART2, PCUART3, PCUART4}
)
