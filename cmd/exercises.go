package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KaramelBytes/irislab/internal/exercises"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc <a> <op> <b>",
	Short: "Basic calculator (+, -, *, /)",
	Example: `  irislab calc 6 / 4
  irislab calc -- -2 x 3`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", args[0])
		}
		b, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", args[2])
		}
		op := args[1]
		res, err := exercises.Calculate(a, b, op)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exercises.FormatCalculation(a, b, op, res))
		return nil
	},
}

var discountCmd = &cobra.Command{
	Use:   "discount <price> <percent>",
	Short: "Apply a discount of at least 20% to a price",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		price, pct, err := exercises.ParseDiscount(args[0], args[1])
		if errors.Is(err, exercises.ErrInvalidInput) {
			fmt.Fprintln(out, exercises.InvalidInputMessage)
			return nil
		}
		fmt.Fprintln(out, exercises.DescribeDiscount(price, pct))
		return nil
	},
}

var uppercaseCmd = &cobra.Command{
	Use:   "uppercase [input] [output]",
	Short: "Copy a text file, converting it to upper case",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := exercises.DefaultUppercaseInput, exercises.DefaultUppercaseOutput
		if len(args) > 0 {
			in = args[0]
		}
		if len(args) > 1 {
			out = args[1]
		}
		if err := exercises.UppercaseFile(in, out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ File has successfully been read, modified, and written to %s\n", out)
		return nil
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Smartphone, smartwatch and vehicle demo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises.DevicesDemo(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(discountCmd)
	rootCmd.AddCommand(uppercaseCmd)
	rootCmd.AddCommand(devicesCmd)
}
