package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"posy/internal/assembly"
	"posy/internal/stream"
)

// checkCmd validates the design phase of an input without consuming stems.
var checkCmd = &cobra.Command{
	Use:   "check [input-file]",
	Short: "Validate design lines without running the stem stream",
	Long: `Parses and normalizes the design phase only, reporting each design as
accepted, dropped (unsatisfiable), or malformed. Exits nonzero if any line
is malformed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: checkDesigns,
}

func checkDesigns(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	parser := stream.NewParser()
	warehouse := assembly.NewWarehouse()
	accepted, dropped, malformed := 0, 0, 0

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break
		}
		d, err := parser.ParseDesign(line)
		if err != nil {
			malformed++
			fmt.Printf("malformed  %s\n", line)
			logger.Warn("malformed design line", zap.Error(err))
			continue
		}
		if warehouse.RegisterDesign(d) {
			accepted++
			fmt.Printf("accepted   %s\n", line)
		} else {
			dropped++
			fmt.Printf("dropped    %s\n", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	fmt.Printf("%d accepted, %d dropped, %d malformed\n", accepted, dropped, malformed)
	if malformed > 0 {
		return fmt.Errorf("%d malformed design line(s)", malformed)
	}
	return nil
}
