package main

import (
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/urfave/cli.v2"

	"github.com/holomorph/go6502/cpu"
	"github.com/holomorph/go6502/disassembler"
	"github.com/holomorph/go6502/memory"
)

func main() {
	app := &cli.App{
		Name:  "conformance",
		Usage: "run a 6502 conformance test image against the cpu package",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scenario",
				Aliases: []string{"s"},
				Usage:   "one of: functional, decimal, interrupt",
				Value:   "functional",
			},
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Usage:   "path to the raw binary test image",
			},
		},
		Action: func(c *cli.Context) error {
			name := c.String("scenario")
			s, ok := scenarios[name]
			if !ok && name != "interrupt" {
				return cli.Exit(fmt.Sprintf("unknown scenario %q", name), 2)
			}
			if name == "interrupt" {
				s = interruptScenario
			}
			path := c.String("image")
			if path == "" {
				return cli.Exit("missing -image flag", 2)
			}

			image, err := loadImage(path)
			if err != nil {
				// Test images are not distributed with this module; a
				// missing file is an expected outcome outside CI, not a
				// crash.
				fmt.Printf("[%s] skipped: %v (expects %s)\n", s.name, err, s.description)
				return nil
			}

			var result *runResult
			if name == "interrupt" {
				result, err = runInterruptImage(image)
			} else {
				result, err = runImage(s, image)
			}
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if result.Passed {
				fmt.Printf("[%s] passed after %d steps\n", s.name, result.StepsTaken)
				return nil
			}

			fmt.Printf("[%s] FAILED: trapped at PC %.4X after %d steps\n", s.name, result.TrapPC, result.StepsTaken)
			dumpTrap(s, image, result.TrapPC)
			return cli.Exit("", 1)
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// dumpTrap prints the disassembly around trapPC from a freshly loaded copy
// of the image, followed by the register file of a freshly initialized CPU.
// The failing run is not replayed: the harness loop discards its *cpu.CPU
// on return, so the registers printed are not the ones at the trap.
func dumpTrap(s scenario, image []byte, trapPC uint16) {
	ram := memory.NewRAM()
	ram.Load(s.loadAddr, image)
	c, err := cpu.Init(&cpu.ChipDef{Cpu: s.cpu, Ram: ram})
	if err != nil {
		return
	}
	fmt.Println("context around trap:")
	pc := trapPC - 6
	for i := 0; i < 12; i++ {
		line, n := disassembler.Step(pc, ram)
		marker := "  "
		if pc == trapPC {
			marker = "->"
		}
		fmt.Printf("%s %s\n", marker, line)
		pc += uint16(n)
	}
	fmt.Println(spew.Sdump(c))
}
