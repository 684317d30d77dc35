package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lpc178x-hal/errcode"
	"lpc178x-hal/hal"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPLLCommand(t *testing.T) {
	out, err := run(t, "", "pll", "--crystal", "12000000", "--cpu", "120000000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "cclk=120000000 m=10 msel=9 psel=0 fcco=240000000") {
		t.Fatalf("output %q", out)
	}
	if _, err := run(t, "", "pll", "--cpu", "100000000"); !errors.Is(err, errcode.InvalidFrequencyRatio) {
		t.Fatalf("bad ratio: %v", err)
	}
}

func TestPLLListsReachableClocks(t *testing.T) {
	out, err := run(t, "", "pll", "--all", "--crystal", "12000000")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"24000000", "96000000", "120000000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%s missing from %q", want, out)
		}
	}
	if strings.Contains(out, "132000000") {
		t.Fatalf("listed a clock above the chip limit")
	}
}

func TestBaudCommand(t *testing.T) {
	out, err := run(t, "", "baud", "--cpu", "96000000", "9600", "115200")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(strings.Join(strings.Fields(lines[1]), " "), "9600 1 160 2 1") {
		t.Fatalf("output %q", out)
	}
	if _, err := run(t, "", "baud", "0"); !errors.Is(err, errcode.BaudUnrepresentable) {
		t.Fatalf("baud 0: %v", err)
	}
}

func TestRoutesAndTargets(t *testing.T) {
	out, err := run(t, "", "routes", "--uart", "4")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "P5.3") || strings.Contains(out, "uart0") {
		t.Fatalf("routes %q", out)
	}
	out, err = run(t, "", "targets", "lpc1774")
	if err != nil || !strings.Contains(out, "lpc177x") {
		t.Fatalf("targets %q %v", out, err)
	}
	if !strings.Contains(out, "gpio:     P0..P5") {
		t.Fatalf("targets %q", out)
	}
	_, err = run(t, "", "targets", "stm32")
	if !errors.Is(err, errcode.UnknownChip) || !strings.Contains(err.Error(), "lpc1774, lpc1776") {
		t.Fatalf("unknown chip: %v", err)
	}
	out, err = run(t, "", "targets", "lpc177x")
	if err != nil || !strings.Contains(out, "lpc1776") || strings.Contains(out, "lpc1788") {
		t.Fatalf("series %q %v", out, err)
	}
	out, err = run(t, "", "targets", "--feature", "lcd")
	if err != nil || !strings.Contains(out, "lpc1785") || strings.Contains(out, "lpc1778") {
		t.Fatalf("feature filter %q %v", out, err)
	}
}

func TestConsoleSession(t *testing.T) {
	script := strings.Join([]string{
		"clock",
		"pin P1.18 out",
		"pin P1.18 high",
		"pin P1.18 read",
		"pin P1.19 in",
		"drive P1.19 1",
		"pin P1.19 read",
		"pin P0.2 out",
		`send "hello world"`,
		"tx",
		"inject ping",
		"recv",
		"recv 10ms",
		"inject pong",
		"recv 1s",
		"timer 0 start 3s",
		"advance 2999999",
		"timer 0 wait",
		"advance 2",
		"timer 0 wait",
		"timer 0 wait",
		"quit",
	}, "\n")
	out, err := run(t, script, "console")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"cclk=96000000",
		"error: P1.18.is_high: invalid_state_transition",
		"P1.19=1",
		"error: console: ownership_violation: P0.2 is taken",
		`"hello world"`,
		`"ping"`,
		"timeout\n",
		`"pong"`,
		"pending\n",
		"expired\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q missing from session:\n%s", want, out)
		}
	}
	if strings.Count(out, "expired") != 1 {
		t.Fatalf("timer expired more than once:\n%s", out)
	}
}

func TestConsoleConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	src := "chip: lpc1778\ncpuHz: 120000000\nconsole:\n  uart: 2\n  rx: P0.11\n  tx: P0.10\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Console.Baud != hal.DefaultConfig().Console.Baud || cfg.CrystalHz != 12_000_000 {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	out, err := run(t, "clock\nquit\n", "console", "--config", path)
	if err != nil || !strings.Contains(out, "cclk=120000000") {
		t.Fatalf("%q %v", out, err)
	}
}
