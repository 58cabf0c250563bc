package main

import (
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/intuitionamiga/relasm/assembler"
)

// sessionDump is what `symbols --dump` pretty-prints.
type sessionDump struct {
	File        string
	Base        uint32
	Length      int
	Symbols     []assembler.Symbol
	Relocations []uint32
	Warnings    []string
}

func newSymbolsCmd() *cobra.Command {
	o := &sessionOptions{}
	var dump bool
	cmd := &cobra.Command{
		Use:   "symbols sourceFile",
		Short: "Assemble a file and print its symbol table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			newSession, err := o.newSession()
			if err != nil {
				return err
			}
			a := newSession()
			if _, err := a.Load(args[0]); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dump {
				printer := pp.New()
				printer.SetColoringEnabled(isTerminal(out))
				_, err := printer.Fprintln(out, sessionDump{
					File:        args[0],
					Base:        a.Base(),
					Length:      a.Len(),
					Symbols:     a.Symbols(),
					Relocations: a.Relocations(),
					Warnings:    a.GetWarnings(),
				})
				return err
			}

			for _, s := range a.Symbols() {
				mark := " "
				if s.Exported {
					mark = "G"
				}
				fmt.Fprintf(out, "%08X %s %s\n", s.Offset, mark, s.Name)
			}
			return nil
		},
	}
	o.register(cmd)
	cmd.Flags().BoolVar(&dump, "dump", false, "pretty-print the whole session state")
	return cmd
}
