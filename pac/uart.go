package pac

// --- UARTn registers (DLAB selects DLL/DLM over RBR/THR/IER) ---
var (
	U_RBR = reg("RBR", 0x00) // DLAB=0, read
	U_THR = reg("THR", 0x00) // DLAB=0, write
	U_DLL = reg("DLL", 0x00) // DLAB=1
	U_DLM = reg("DLM", 0x04) // DLAB=1
	U_FCR = reg("FCR", 0x08) // write only
	U_LCR = reg("LCR", 0x0C)
	U_LSR = reg("LSR", 0x14)
	U_FDR = reg("FDR", 0x28)
)

// --- UARTn fields ---
var (
	U_RBR_RBR = field(U_RBR, "RBR", 0, 8)
	U_THR_THR = field(U_THR, "THR", 0, 8)
	U_DLL_DLL = field(U_DLL, "DLLSB", 0, 8)
	U_DLM_DLM = field(U_DLM, "DLMSB", 0, 8)

	U_FCR_FIFOEN = field(U_FCR, "FIFOEN", 0, 1)

	U_LCR_WLS  = field(U_LCR, "WLS", 0, 2) // 3 = 8-bit characters
	U_LCR_DLAB = field(U_LCR, "DLAB", 7, 1)

	U_LSR_RDR  = field(U_LSR, "RDR", 0, 1)
	U_LSR_THRE = field(U_LSR, "THRE", 5, 1)

	U_FDR_DIVADDVAL = field(U_FDR, "DIVADDVAL", 0, 4)
	U_FDR_MULVAL    = field(U_FDR, "MULVAL", 4, 4)
)

// WLS8Bit selects 8-bit characters.
const WLS8Bit = 3
