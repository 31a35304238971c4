// Command mysqlcat inspects a MySQL database the way an attached
// analytical engine sees it: schemas, tables, mapped column types, and
// table contents as Arrow records.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/mysqlcat-go"
	"github.com/hugr-lab/mysqlcat-go/typemap"
)

var (
	dsn     string
	schema  string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mysqlcat",
		Short: "Inspect a MySQL database as an attached analytical catalog",
		Long: "mysqlcat attaches to a MySQL database and shows its schemas, tables,\n" +
			"and column type mappings, and can stream table contents as Arrow records.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "connection string (host=... user=... db=...); unset keys fall back to MYSQL_* env")
	rootCmd.PersistentFlags().StringVar(&schema, "schema", "", "schema to use (defaults to the db from the connection string)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		schemasCmd(),
		tablesCmd(),
		describeCmd(),
		queryCmd(),
		sizeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func attach(ctx context.Context) (*mysqlcat.Catalog, error) {
	cfg := &mysqlcat.Config{}
	if verbose {
		level := slog.LevelDebug
		cfg.LogLevel = &level
	}
	return mysqlcat.Attach(ctx, dsn, cfg)
}

func schemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List schemas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := attach(ctx)
			if err != nil {
				return err
			}
			defer cat.Close()

			schemas, err := cat.Schemas(ctx)
			if err != nil {
				return err
			}
			for _, s := range schemas {
				fmt.Println(s.Name())
			}
			return nil
		},
	}
}

func tablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List tables of a schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := attach(ctx)
			if err != nil {
				return err
			}
			defer cat.Close()

			entry, err := cat.Schema(ctx, schema)
			if err != nil {
				return err
			}
			names, err := entry.Tables().Names(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Show a table's columns with their MySQL and host types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := attach(ctx)
			if err != nil {
				return err
			}
			defer cat.Close()

			table, err := cat.Table(ctx, schema, args[0])
			if err != nil {
				return err
			}
			for _, col := range table.Columns() {
				line := fmt.Sprintf("%s\t%s\t%s", col.Name, col.Remote.ColumnType, col.Type)
				if col.Annotation != typemap.AnnotationStandard {
					line += "\t" + col.Annotation.String()
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <table>",
		Short: "Stream a table's contents as Arrow records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := attach(ctx)
			if err != nil {
				return err
			}
			defer cat.Close()

			table, err := cat.Table(ctx, schema, args[0])
			if err != nil {
				return err
			}
			columnIDs := make([]int, len(table.Columns()))
			for i := range columnIDs {
				columnIDs[i] = i
			}
			reader, err := cat.Scan(ctx, table, columnIDs, nil)
			if err != nil {
				return err
			}
			defer reader.Release()

			for {
				rec, err := reader.Next()
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Print(rec)
				rec.Release()
			}
		},
	}
}

func sizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size",
		Short: "Show the on-disk size of a schema in bytes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cat, err := attach(ctx)
			if err != nil {
				return err
			}
			defer cat.Close()

			size, err := cat.DatabaseSize(ctx, schema)
			if err != nil {
				return err
			}
			fmt.Println(size)
			return nil
		},
	}
}
