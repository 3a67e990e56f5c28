package main

import (
	"errors"
	"fmt"
	"os"

	"dataspect/internal/engine"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var (
		desc      bool
		rowCount  bool
		nullCount string
		convert   string
	)

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Inspect a CSV or Parquet file with DuckDB",
		Long:  `Query schema, row counts and null counts of a data file, optionally converting it afterwards.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actions := 0
			for _, set := range []bool{desc, rowCount, cmd.Flags().Changed("null-count")} {
				if set {
					actions++
				}
			}
			if actions == 0 {
				return errors.New("Must specify at least one action (--desc, --row-count, or --null-count)")
			}
			if actions > 1 {
				return errors.New("Can only specify one action at a time (--desc, --row-count, or --null-count)")
			}

			ins, err := engine.New(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error initializing DuckDB: %s\n", err)
				return nil
			}
			defer ins.Close()

			switch {
			case desc:
				schema, err := ins.Schema()
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error reading schema: %s\n", err)
					break
				}
				for _, col := range schema {
					fmt.Printf("%-20s %s\n", col.Name, col.Type)
				}
			case rowCount:
				count, err := ins.RowCount("")
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error counting rows: %s\n", err)
					break
				}
				fmt.Printf("Row count: %d\n", count)
			default:
				count, err := ins.NullCount(nullCount)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error counting nulls: %s\n", err)
					break
				}
				fmt.Printf("Null values in column '%s': %d\n", nullCount, count)
			}

			if convert != "" {
				path, err := ins.Convert(convert)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error converting file: %s\n", err)
					return nil
				}
				fmt.Printf("File converted to %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&desc, "desc", "d", false, "Display the file schema")
	cmd.Flags().BoolVarP(&rowCount, "row-count", "r", false, "Count total rows in the file")
	cmd.Flags().StringVarP(&nullCount, "null-count", "n", "", "Count null values in a specific column")
	cmd.Flags().StringVar(&convert, "convert", "", "Convert the file to csv or parquet afterwards")
	return cmd
}
