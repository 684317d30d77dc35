package hal

import (
	"lpc178x-hal/clock"
	"lpc178x-hal/errcode"
	"lpc178x-hal/gpio"
	"lpc178x-hal/targets"
	"lpc178x-hal/uart"
	"lpc178x-hal/x/conv"
)

// Config describes a board: the part, its crystal, the core clock to run
// at and an optional console UART.
type Config struct {
	Chip      string        `yaml:"chip"`
	CrystalHz uint32        `yaml:"crystalHz"`
	CPUHz     uint32        `yaml:"cpuHz"`
	Console   ConsoleConfig `yaml:"console"`
}

type ConsoleConfig struct {
	Enabled  bool          `yaml:"enabled"`
	UART     uart.Instance `yaml:"uart"`
	Baud     uint32        `yaml:"baud"`
	RX       string        `yaml:"rx"`
	TX       string        `yaml:"tx"`
	RingSize int           `yaml:"ringSize"` // receive staging, power of two
}

// DefaultConfig is an LPC1788 on a 12 MHz crystal at 96 MHz with a
// 115200 baud console on UART0 (P0.3/P0.2).
func DefaultConfig() Config {
	return Config{
		Chip:      "lpc1788",
		CrystalHz: 12_000_000,
		CPUHz:     96_000_000,
		Console: ConsoleConfig{
			Enabled:  true,
			UART:     uart.UART0,
			Baud:     115200,
			RX:       "P0.3",
			TX:       "P0.2",
			RingSize: 64,
		},
	}
}

// Validate checks the config against the chip database and runs every
// derivation Boot will run, without touching hardware.
func (c Config) Validate() error {
	const op = "hal.config"
	s, _, err := targets.All().FindByChip(c.Chip)
	if err != nil {
		return err
	}
	if !s.CrystalOK(c.CrystalHz) {
		return errcode.New(errcode.InvalidParams, op, "crystal "+conv.U32(c.CrystalHz)+" Hz outside "+
			conv.U32(s.CrystalMinHz)+".."+conv.U32(s.CrystalMaxHz))
	}
	if c.CPUHz > s.MaxCPUHz {
		return errcode.New(errcode.InvalidParams, op, "cpu "+conv.U32(c.CPUHz)+" Hz above "+conv.U32(s.MaxCPUHz))
	}
	if _, err := clock.Plan(c.CPUHz, c.CrystalHz); err != nil {
		return err
	}
	if !c.Console.Enabled {
		return nil
	}
	_, _, err = c.Console.resolve(c.CPUHz, s.UARTs, s.GPIOPorts)
	return err
}

// resolve parses and routes the console pins and derives its divisors.
func (cc ConsoleConfig) resolve(cpuHz uint32, uarts, ports int) (rx, tx gpio.ID, err error) {
	const op = "hal.config.console"
	if int(cc.UART) >= uarts {
		return rx, tx, errcode.New(errcode.InvalidParams, op, "chip has no "+cc.UART.String())
	}
	if cc.RingSize < 2 || cc.RingSize&(cc.RingSize-1) != 0 {
		return rx, tx, errcode.New(errcode.InvalidParams, op, "ring size "+conv.U32(uint32(cc.RingSize))+" is not a power of two")
	}
	if rx, err = gpio.ParseID(cc.RX); err != nil {
		return rx, tx, err
	}
	if tx, err = gpio.ParseID(cc.TX); err != nil {
		return rx, tx, err
	}
	for _, id := range []gpio.ID{rx, tx} {
		if int(id.Port) >= ports {
			return rx, tx, errcode.New(errcode.UnknownPin, op, "chip has no port "+conv.U32(uint32(id.Port)))
		}
	}
	if _, ok := uart.Route(rx, cc.UART, uart.RX); !ok {
		return rx, tx, errcode.New(errcode.InvalidPinRouting, op, rx.String()+" cannot carry "+cc.UART.String()+" rxd")
	}
	if _, ok := uart.Route(tx, cc.UART, uart.TX); !ok {
		return rx, tx, errcode.New(errcode.InvalidPinRouting, op, tx.String()+" cannot carry "+cc.UART.String()+" txd")
	}
	if _, err = uart.ComputeDivisors(cpuHz, cc.Baud); err != nil {
		return rx, tx, err
	}
	return rx, tx, nil
}
