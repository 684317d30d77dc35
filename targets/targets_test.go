package targets

import (
	"errors"
	"testing"

	"lpc178x-hal/errcode"
)

func TestDatabaseLoads(t *testing.T) {
	all := All()
	if len(all) != 2 {
		t.Fatalf("%d series", len(all))
	}
	for _, s := range all {
		if s.MaxCPUHz != 120_000_000 || s.UARTs != 5 || s.Timers != 4 || s.GPIOPorts != 6 {
			t.Fatalf("series %+v", s)
		}
		if len(s.Chips) == 0 {
			t.Fatalf("series %s has no chips", s.Name)
		}
	}
	if got := len(all.Chips()); got != 8 {
		t.Fatalf("%d chips", got)
	}
}

func TestFindByChip(t *testing.T) {
	s, c, err := All().FindByChip("LPC1788")
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "lpc178x" || c.FlashKiB != 512 || !s.Has("LCD") {
		t.Fatalf("%s %+v", s.Name, c)
	}
	s, _, err = All().FindByChip("lpc1774")
	if err != nil || s.Name != "lpc177x" || s.Has("lcd") {
		t.Fatalf("lpc1774: %s %v", s.Name, err)
	}
	if _, _, err := All().FindByChip("lpc1768"); !errors.Is(err, errcode.UnknownChip) {
		t.Fatalf("lpc1768: %v", err)
	}
}

func TestFindBySeries(t *testing.T) {
	s, err := All().FindBySeries("LPC177X")
	if err != nil || !s.CrystalOK(12_000_000) || s.CrystalOK(30_000_000) {
		t.Fatalf("%+v %v", s, err)
	}
	if _, err := All().FindBySeries("stm32"); !errors.Is(err, errcode.UnknownChip) {
		t.Fatalf("stm32: %v", err)
	}
}
