package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"lpc178x-hal/errcode"
	"lpc178x-hal/gpio"
	"lpc178x-hal/hal"
	"lpc178x-hal/internal/sim"
	"lpc178x-hal/timer"
	"lpc178x-hal/x/conv"
	"lpc178x-hal/x/mathx"
)

func newConsoleCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Boot a simulated board and drive it interactively",
		Long: "Boot the register simulator with a board config and read commands from stdin.\n" +
			"Type 'help' at the prompt for the command list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath)
			if err != nil {
				return err
			}
			c, err := newConsole(cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return c.run(cmd.InOrStdin())
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "board config (YAML); defaults apply to unset fields")
	return cmd
}

func loadConfig(path string) (hal.Config, error) {
	cfg := hal.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errcode.Wrap(errcode.InvalidParams, "config "+path, err)
	}
	return cfg, cfg.Validate()
}

type countdowns struct {
	one *timer.NonPeriodic
	per *timer.Periodic
}

func (c *countdowns) active() timer.CountDown {
	if c.per != nil {
		return c.per
	}
	return c.one
}

type console struct {
	out    io.Writer
	board  *sim.Board
	p      *hal.Peripherals
	sys    *hal.System
	cfg    hal.Config
	pins   map[gpio.ID]*gpio.Erased
	timers [timer.NumInstances]*countdowns
}

func newConsole(cfg hal.Config, out io.Writer) (*console, error) {
	b := sim.New()
	p, err := hal.New(b)
	if err != nil {
		return nil, err
	}
	sys, err := hal.Boot(p, cfg)
	if err != nil {
		return nil, err
	}
	return &console{
		out:   out,
		board: b,
		p:     p,
		sys:   sys,
		cfg:   cfg,
		pins:  make(map[gpio.ID]*gpio.Erased),
	}, nil
}

const consoleHelp = `commands:
  clock                        show the PLL0 setting
  pin PIN in|out|high|low|toggle|read
  drive PIN 0|1                set the level the simulator samples on PIN
  send TEXT                    write TEXT to the console UART
  tx                           show and clear bytes the console UART sent
  inject TEXT                  queue TEXT on the console UART receiver
  recv [TIMEOUT]               read buffered console bytes, waiting up to TIMEOUT for one
  timer N start DURATION|wait|cancel|periodic|oneshot|ticks
  advance TICKS                run every timer forward TICKS microseconds
  writes [N]                   show the last N register writes and clear the log
  help
  quit`

func (c *console) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "lpchal> ")
		if !sc.Scan() {
			fmt.Fprintln(c.out)
			return sc.Err()
		}
		quit, err := c.exec(sc.Text())
		if err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
		if quit {
			return nil
		}
	}
}

func (c *console) exec(line string) (quit bool, err error) {
	args, err := shlex.Split(line)
	if err != nil {
		return false, errcode.Wrap(errcode.InvalidParams, "console", err)
	}
	if len(args) == 0 {
		return false, nil
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "help", "?":
		fmt.Fprintln(c.out, consoleHelp)
	case "quit", "exit":
		return true, nil
	case "clock":
		pll := c.sys.Clock.PLL()
		fmt.Fprintf(c.out, "cclk=%d m=%d psel=%d fcco=%d\n", pll.CPUHz, pll.Multiplier(), pll.P, pll.FCCO)
	case "pin":
		return false, c.pin(args)
	case "drive":
		return false, c.drive(args)
	case "send", "inject", "tx", "recv":
		return false, c.serial(cmd, args)
	case "timer":
		return false, c.timer(args)
	case "advance":
		if len(args) != 1 {
			return false, usage("advance TICKS")
		}
		n, ok := conv.Atou(args[0])
		if !ok {
			return false, usage("advance TICKS")
		}
		c.board.Advance(n)
	case "writes":
		return false, c.writes(args)
	default:
		return false, errcode.New(errcode.InvalidParams, "console", "unknown command "+strconv.Quote(cmd))
	}
	return false, nil
}

func usage(s string) error { return errcode.New(errcode.InvalidParams, "console", "usage: "+s) }

// erased returns the console's handle for id, erasing the split pin on
// first use.
func (c *console) erased(id gpio.ID) (*gpio.Erased, error) {
	if e, ok := c.pins[id]; ok {
		return e, nil
	}
	p := c.sys.Pin(id)
	if p == nil {
		return nil, errcode.New(errcode.OwnershipViolation, "console", id.String()+" is taken")
	}
	e, err := p.Erase()
	if err != nil {
		return nil, err
	}
	c.pins[id] = e
	return e, nil
}

func (c *console) pin(args []string) error {
	if len(args) != 2 {
		return usage("pin PIN in|out|high|low|toggle|read")
	}
	id, err := gpio.ParseID(args[0])
	if err != nil {
		return err
	}
	e, err := c.erased(id)
	if err != nil {
		return err
	}
	switch args[1] {
	case "in":
		e, err = e.IntoInput()
	case "out":
		e, err = e.IntoOutput()
	case "high":
		err = e.SetHigh()
	case "low":
		err = e.SetLow()
	case "toggle":
		err = e.Toggle()
	case "read":
		var h bool
		if h, err = e.IsHigh(); err == nil {
			level := 0
			if h {
				level = 1
			}
			fmt.Fprintf(c.out, "%s=%d\n", id, level)
		}
	default:
		return usage("pin PIN in|out|high|low|toggle|read")
	}
	if err != nil {
		return err
	}
	c.pins[id] = e
	return nil
}

func (c *console) drive(args []string) error {
	if len(args) != 2 || (args[1] != "0" && args[1] != "1") {
		return usage("drive PIN 0|1")
	}
	id, err := gpio.ParseID(args[0])
	if err != nil {
		return err
	}
	c.board.DrivePin(id.Port, id.Pin, args[1] == "1")
	return nil
}

func (c *console) serial(cmd string, args []string) error {
	s := c.sys.Console
	if s == nil {
		return errcode.New(errcode.NotStarted, "console", "no console UART configured")
	}
	n := int(c.cfg.Console.UART)
	switch cmd {
	case "send":
		_, err := s.WriteString(strings.Join(args, " "))
		return err
	case "tx":
		fmt.Fprintf(c.out, "%q\n", c.board.TakeTX(n))
	case "inject":
		c.board.InjectRX(n, []byte(strings.Join(args, " "))...)
	case "recv":
		var got []byte
		if len(args) == 1 {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return errcode.Wrap(errcode.InvalidDuration, "console", err)
			}
			ctx, cancel := context.WithTimeout(context.Background(), d)
			defer cancel()
			first, err := s.WithContext(ctx).ReadByte()
			if errors.Is(err, context.DeadlineExceeded) {
				fmt.Fprintln(c.out, "timeout")
				return nil
			}
			if err != nil {
				return err
			}
			got = append(got, first)
		}
		buf := make([]byte, s.Buffered())
		k, err := s.Read(buf)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%q\n", append(got, buf[:k]...))
	}
	return nil
}

func (c *console) timer(args []string) error {
	const use = "timer N start DURATION|wait|cancel|periodic|oneshot|ticks"
	if len(args) < 2 {
		return usage(use)
	}
	n, ok := conv.Atou(args[0])
	if !ok || n >= timer.NumInstances {
		return usage(use)
	}
	t := c.timers[n]
	if t == nil {
		d := c.p.Timer[n]
		one, err := d.Enable(c.sys.Clock)
		if err != nil {
			return err
		}
		t = &countdowns{one: one}
		c.timers[n] = t
	}

	switch args[1] {
	case "start":
		if len(args) != 3 {
			return usage(use)
		}
		d, err := time.ParseDuration(args[2])
		if err != nil {
			return errcode.Wrap(errcode.InvalidDuration, "console", err)
		}
		return t.active().Start(d)
	case "wait":
		err := t.active().Wait()
		if errcode.IsWouldBlock(err) {
			fmt.Fprintln(c.out, "pending")
			return nil
		}
		if err == nil {
			fmt.Fprintln(c.out, "expired")
		}
		return err
	case "cancel":
		return t.active().Cancel()
	case "ticks":
		fmt.Fprintln(c.out, t.active().Ticks())
	case "periodic":
		if t.per != nil {
			return nil
		}
		per, err := t.one.IntoPeriodic()
		if err != nil {
			return err
		}
		t.one, t.per = nil, per
	case "oneshot":
		if t.per == nil {
			return nil
		}
		one, err := t.per.IntoNonPeriodic()
		if err != nil {
			return err
		}
		t.one, t.per = one, nil
	default:
		return usage(use)
	}
	return nil
}

func (c *console) writes(args []string) error {
	w := c.board.Writes()
	n := len(w)
	if len(args) == 1 {
		v, ok := conv.Atou(args[0])
		if !ok {
			return usage("writes [N]")
		}
		n = mathx.Clamp(int(v), 0, len(w))
	}
	for _, x := range w[len(w)-n:] {
		fmt.Fprintf(c.out, "%s <- %s\n", conv.Hex32(uint32(x.Addr)), conv.Hex32(x.Value))
	}
	c.board.ResetLog()
	return nil
}
