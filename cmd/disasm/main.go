// Command disasm dumps a colorized disassembly of a raw binary image,
// loading it directly into a flat 64 KiB RAM bank at a configurable offset
// and walking forward one instruction at a time without following control
// flow.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/urfave/cli.v2"

	"github.com/holomorph/go6502/disassembler"
	"github.com/holomorph/go6502/memory"
)

var (
	addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	rawStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mnemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	jamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func main() {
	app := &cli.App{
		Name:  "disasm",
		Usage: "colorized disassembly of a raw 6502 binary image",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "offset",
				Aliases: []string{"o"},
				Usage:   "address to load the image at and begin disassembling from",
				Value:   0,
			},
			&cli.IntFlag{
				Name:  "length",
				Usage: "number of instructions to print (0 means the whole image)",
				Value: 0,
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				cli.ShowAppHelp(c)
				return cli.Exit("exactly one image path is required", 2)
			}
			path := c.Args().Get(0)
			data, err := os.ReadFile(path)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			offset := uint16(c.Int("offset"))
			ram := memory.NewRAM()
			ram.Load(offset, data)

			pc := offset
			end := int(offset) + len(data)
			limit := c.Int("length")
			for i := 0; int(pc) < end; i++ {
				if limit > 0 && i >= limit {
					break
				}
				line, n := disassembler.Step(pc, ram)
				fmt.Println(colorize(line))
				pc += uint16(n)
			}
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// colorize re-styles the fixed-width fields disassembler.Step already laid
// out: address, raw bytes, mnemonic, operand. JAM is called out in red
// since it is the one mnemonic that halts the core outright.
func colorize(line string) string {
	if len(line) < 21 {
		return line
	}
	addr := line[:4]
	raw := line[6:14]
	rest := line[16:]
	mnemEnd := 3
	for mnemEnd < len(rest) && rest[mnemEnd] != ' ' {
		mnemEnd++
	}
	mnem := rest[:mnemEnd]
	operand := rest[mnemEnd:]

	mnemStyled := mnemStyle
	if mnem == "JAM" {
		mnemStyled = jamStyle
	}

	return addrStyle.Render(addr) + "  " + rawStyle.Render(raw) + "  " + mnemStyled.Render(mnem) + operand
}
