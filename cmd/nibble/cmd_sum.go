package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/nibble/ascii"
	"github.com/dhamidi/nibble/parse"
	"github.com/dhamidi/nibble/stream"
)

func newSumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sum [file]",
		Short:         "Sum whitespace- or comma-separated decimal numbers",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			nums, err := stream.Run(stream.New(in), numbersParser())
			if err != nil {
				return fmt.Errorf("parse numbers: %w", err)
			}

			var sum int64
			for _, n := range nums {
				sum += n
			}
			fmt.Printf("count=%d sum=%d\n", len(nums), sum)
			return nil
		},
	}
	return cmd
}

// numbersParser accepts a stream of signed decimals separated by whitespace
// or commas and requires the stream to contain nothing else.
func numbersParser() parse.Parser[[]int64] {
	isSep := func(c byte) bool { return ascii.IsWhitespace(c) || c == ',' }
	skipSep := parse.SkipWhile(isSep)
	sep := parse.TakeWhile1(isSep)
	number := ascii.Signed(ascii.Decimal[int64]())

	expectEnd := parse.Bind(parse.Parser[bool](parse.AtEnd), func(end bool) parse.Parser[struct{}] {
		if end {
			return parse.Ret(struct{}{})
		}
		return parse.Fail[struct{}]("end of input")
	})

	return parse.SkipNext(
		parse.Then(skipSep, parse.SepBy(number, sep)),
		parse.Then(skipSep, expectEnd))
}
