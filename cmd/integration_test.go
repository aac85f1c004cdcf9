package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCmd executes the root command with args and returns what it printed.
func runCmd(t *testing.T, args ...string) string {
	t.Helper()
	// Reset sticky flags that may persist Changed state across invocations
	for name, def := range map[string]string{"input": "", "workdir": "", "no-derive": "false", "bins": "0"} {
		if fl := analyzeCmd.Flags().Lookup(name); fl != nil {
			_ = fl.Value.Set(def)
			fl.Changed = false
		}
	}
	for name, def := range map[string]string{"config": "", "debug": "false"} {
		if fl := rootCmd.PersistentFlags().Lookup(name); fl != nil {
			_ = fl.Value.Set(def)
			fl.Changed = false
		}
	}
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v\n%s", args, err, out.String())
	}
	return out.String()
}

// isolate points HOME at a temp dir and keeps rendered charts small.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("IRISLAB_CHART_WIDTH", "480")
	t.Setenv("IRISLAB_CHART_HEIGHT", "270")
	t.Setenv("IRISLAB_CHART_DPI", "72")
	return home
}

func TestCLI_RootRunsPipeline(t *testing.T) {
	home := isolate(t)
	work := filepath.Join(home, "work")
	t.Setenv("IRISLAB_OUTPUT_DIR", work)

	out := runCmd(t)
	if !strings.Contains(out, "Species with largest mean sepal length: virginica (6.588 cm)") {
		t.Fatalf("missing first finding:\n%s", out)
	}
	for _, name := range []string{"analysis_output.txt", "iris_clean.csv", filepath.Join("plots", "scatter_sepal_vs_petal.png")} {
		if _, err := os.Stat(filepath.Join(work, name)); err != nil {
			t.Fatalf("expected artifact %s: %v", name, err)
		}
	}
}

func TestCLI_AnalyzeMissingColumnExitsCleanly(t *testing.T) {
	home := isolate(t)
	input := filepath.Join(home, "broken.csv")
	if err := os.WriteFile(input, []byte("sepal_length,sepal_width,petal_length,species\n5,3,1,setosa\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	work := filepath.Join(home, "out")
	out := runCmd(t, "analyze", "--input", input, "--workdir", work)
	if !strings.Contains(out, `ERROR: An exception occurred during processing: missing expected column "petal_width"`) {
		t.Fatalf("missing error line:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(work, "analysis_output.txt")); err != nil {
		t.Fatalf("transcript must exist: %v", err)
	}
}

func TestCLI_ConfigSetShow(t *testing.T) {
	isolate(t)
	runCmd(t, "config", "set", "histogram_bins", "20")
	runCmd(t, "config", "set", "derive_features", "false")
	out := runCmd(t, "config", "show")
	for _, want := range []string{"histogram_bins: 20", "derive_features: false", "dataset_name: iris"} {
		if !strings.Contains(out, want) {
			t.Fatalf("config show missing %q:\n%s", want, out)
		}
	}

	rootCmd.SetArgs([]string{"config", "set", "histogram_bins", "zero"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for invalid histogram_bins")
	}
	rootCmd.SetArgs([]string{"config", "set", "nope", "1"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestCLI_ConfigFileFlag(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	runCmd(t, "--config", path, "config", "set", "dataset_name", "flowers")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	out := runCmd(t, "--config", path, "config", "show")
	if !strings.Contains(out, "dataset_name: flowers") {
		t.Fatalf("config show:\n%s", out)
	}
}

func TestCLI_Exercises(t *testing.T) {
	home := isolate(t)
	if out := runCmd(t, "calc", "6", "/", "4"); strings.TrimSpace(out) != "6 / 4 = 1.5" {
		t.Fatalf("calc output = %q", out)
	}
	rootCmd.SetArgs([]string{"calc", "1", "/", "0"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected division by zero error")
	}

	if out := runCmd(t, "discount", "100", "25"); !strings.Contains(out, "Final Price after 25% discount: 75") {
		t.Fatalf("discount output = %q", out)
	}
	if out := runCmd(t, "discount", "abc", "25"); !strings.Contains(out, "Invalid input. Please enter numbers only.") {
		t.Fatalf("discount invalid output = %q", out)
	}

	in := filepath.Join(home, "in.txt")
	outPath := filepath.Join(home, "out.txt")
	if err := os.WriteFile(in, []byte("shout\n"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	runCmd(t, "uppercase", in, outPath)
	b, err := os.ReadFile(outPath)
	if err != nil || string(b) != "SHOUT\n" {
		t.Fatalf("uppercase result = %q, %v", b, err)
	}

	if out := runCmd(t, "devices"); !strings.Contains(out, "--- Vehicle Polymorphism Demo ---") {
		t.Fatalf("devices output = %q", out)
	}
}
