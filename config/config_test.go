package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestNew_defaults(t *testing.T) {
	viper.Reset()

	c := New()

	if c.Screen.Type != "facs" {
		t.Errorf("default screen type = %q, want facs", c.Screen.Type)
	}
	if c.Library.NumGenes != 500 || c.Library.GuidesPerGene != 5 {
		t.Errorf("default library = %d genes x %d guides, want 500 x 5", c.Library.NumGenes, c.Library.GuidesPerGene)
	}
	if c.Library.Perturbation != "knockdown" {
		t.Errorf("default perturbation = %q, want knockdown", c.Library.Perturbation)
	}
	if len(c.Screen.Bins) != 2 {
		t.Fatalf("got %d default facs bins, want 2", len(c.Screen.Bins))
	}
	if c.Screen.Bins[0].Name != "bin1" || c.Screen.Bins[1].Name != "bin2" {
		t.Errorf("default bins = %q and %q, want bin1 and bin2", c.Screen.Bins[0].Name, c.Screen.Bins[1].Name)
	}
	if c.Analysis.FirstBin != "bin1" || c.Analysis.LastBin != "bin2" {
		t.Errorf("default analysis bins = (%q, %q), want (bin1, bin2)", c.Analysis.FirstBin, c.Analysis.LastBin)
	}
	if c.Sequencing.Depth != 1000 {
		t.Errorf("default depth = %d, want 1000", c.Sequencing.Depth)
	}
}

func TestNew_overrides(t *testing.T) {
	viper.Reset()
	viper.Set("screen.type", "growth")
	viper.Set("library.num-genes", 50)
	viper.Set("seed", 7)

	c := New()

	if c.Screen.Type != "growth" {
		t.Errorf("screen type = %q, want growth", c.Screen.Type)
	}
	if c.Library.NumGenes != 50 {
		t.Errorf("num genes = %d, want 50", c.Library.NumGenes)
	}
	if c.Seed != 7 {
		t.Errorf("seed = %d, want 7", c.Seed)
	}
}
