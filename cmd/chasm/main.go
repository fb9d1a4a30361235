// chasm assembles CHIP-8 source into a binary image ready to load into an
// interpreter at the origin address.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chasm/assembler"
)

var (
	output string
	origin uint16
)

var rootCmd = &cobra.Command{
	Use:           "chasm <source.asm>",
	Short:         "Assemble CHIP-8 source into a loadable binary image",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: source name with .ch8)")
	rootCmd.Flags().Uint16Var(&origin, "origin", 0x200, "address the image is laid out from")
}

func run(cmd *cobra.Command, args []string) error {
	if origin > 0xFFF {
		return fmt.Errorf("origin %#x is beyond the 4KB address space", origin)
	}

	asm := assembler.New()
	asm.SetOrigin(origin)
	image, errs := asm.AssembleFile(args[0])
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("%d error(s), no image written", len(errs))
	}

	out := output
	if out == "" {
		out = strings.TrimSuffix(args[0], ".asm") + ".ch8"
	}
	if err := os.WriteFile(out, image, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
