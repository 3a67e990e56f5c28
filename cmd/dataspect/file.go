package main

import (
	"errors"
	"fmt"
	"os"

	"dataspect/internal/fileinfo"

	"github.com/spf13/cobra"
)

func newFileCmd() *cobra.Command {
	var (
		info  bool
		lines bool
		size  bool
		headN int
	)

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Analyze and inspect plain file properties",
		Long:  `Report size, line count or leading lines of any file without opening the inspector.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			head := cmd.Flags().Changed("head")

			actions := 0
			for _, set := range []bool{info, lines, size, head} {
				if set {
					actions++
				}
			}
			if actions == 0 {
				return errors.New("Must specify at least one action (--info, --lines, --size, or --head)")
			}
			if actions > 1 {
				return errors.New("Can only specify one action at a time (--info, --lines, --size, or --head)")
			}

			var (
				out string
				err error
			)
			switch {
			case info:
				out, err = fileinfo.Info(path)
			case lines:
				out, err = fileinfo.Lines(path)
			case size:
				out, err = fileinfo.Size(path)
			default:
				out, err = fileinfo.Head(path, headN)
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return nil
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&info, "info", "i", false, "Display general file information (size, permissions)")
	cmd.Flags().BoolVarP(&lines, "lines", "l", false, "Show the total number of lines in the file")
	cmd.Flags().BoolVarP(&size, "size", "s", false, "Display the file size")
	cmd.Flags().IntVar(&headN, "head", 0, "Display the first N lines of the file")
	return cmd
}
