package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestScenarios drives the functional, decimal mode and interrupt test
// images if they are present under testdata/. None of the binaries is
// distributed with this module (they are third-party conformance artifacts with their own
// distribution terms), so an absent file is a skip, not a failure.
func TestScenarios(t *testing.T) {
	files := map[string]string{
		"functional": "testdata/6502_functional_test.bin",
		"decimal":    "testdata/6502_decimal_test.bin",
		"interrupt":  "testdata/6502_interrupt_test.bin",
	}

	for name, path := range files {
		name, path := name, path
		t.Run(name, func(t *testing.T) {
			abs, err := filepath.Abs(path)
			if err != nil {
				t.Fatalf("filepath.Abs(%s): %v", path, err)
			}
			image, err := os.ReadFile(abs)
			if err != nil {
				desc := scenarios[name].description
				if name == "interrupt" {
					desc = interruptScenario.description
				}
				t.Skipf("conformance image not present (%v); fetch %s separately to run this test", err, desc)
				return
			}

			var result *runResult
			if name == "interrupt" {
				result, err = runInterruptImage(image)
			} else {
				result, err = runImage(scenarios[name], image)
			}
			if err != nil {
				t.Fatalf("run(%s): %v", name, err)
			}
			if !result.Passed {
				t.Fatalf("%s trapped at PC %.4X after %d steps", name, result.TrapPC, result.StepsTaken)
			}
		})
	}
}
