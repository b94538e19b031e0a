// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go6502/pkg/assembler"
	"go6502/pkg/cpu"
	"go6502/pkg/disassembler"
	"go6502/pkg/memory"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sixtytwo",
		Short: "Assemble, disassemble, and run MOS 6502 programs",
	}

	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print a debug trace of every CPU event")

	root.AddCommand(assembleCmd(), disassembleCmd(), runCmd(&verbose))
	return root
}

func assembleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "assemble <source.asm>",
		Short: "Assemble a 6502 source file to raw bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			program, err := assembler.Assemble(string(source))
			if err != nil {
				return err
			}

			if output == "" {
				return binaryDump(os.Stdout, program)
			}
			return os.WriteFile(output, program, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write assembled bytes to this file instead of stdout")
	return cmd
}

func disassembleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disassemble <program.bin>",
		Short: "Disassemble a raw 6502 byte stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			lines, err := disassembler.Disassemble(program)
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Printf("$%04X: %s\n", memory.ROMBase+line.ByteOffset, line.Text)
			}
			return nil
		},
	}
	return cmd
}

func runCmd(verbose *bool) *cobra.Command {
	var dumpMemory string

	cmd := &cobra.Command{
		Use:   "run <source.asm>",
		Short: "Assemble and execute a 6502 source file to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			program, err := assembler.Assemble(string(source))
			if err != nil {
				return err
			}

			mem := memory.New()
			c := cpu.New(mem)
			if *verbose {
				c.Debug = func(message string, severity cpu.Severity) {
					fmt.Fprintf(os.Stderr, "[%s] %s\n", severity, message)
				}
			}

			c.Load(program)
			if err := c.Execute(); err != nil {
				return err
			}

			fmt.Printf("A=%02X X=%02X Y=%02X SP=%02X PC=%04X P=%02X\n",
				c.A, c.X, c.Y, c.SP, c.PC, c.P)

			if dumpMemory != "" {
				lo, hi, err := parseMemoryRange(dumpMemory)
				if err != nil {
					return err
				}
				return dumpMemoryRange(os.Stdout, mem, lo, hi)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dumpMemory, "dump", "", "print memory in the inclusive range lo:hi (e.g. 0x0000:0x00FF)")
	return cmd
}
