package query

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Checks that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queryClient.Ping(); err != nil {
				return err
			}
			fmt.Println("pong")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [table] [key]",
		Short: "Reads a row by table and key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, key := args[0], args[1]
			if value, ok, err := queryClient.Get(table, key); err != nil {
				return err
			} else {
				fmt.Printf("table=%s, key=%s, found=%v, value=%s\n", table, key, ok, value)
			}
			return nil
		},
	}
	putCmd = &cobra.Command{
		Use:   "put [table] [key] [value]",
		Short: "Inserts or updates a row",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queryClient.Put(args[0], args[1], []byte(args[2])); err != nil {
				return err
			} else {
				fmt.Println("put successfully")
			}
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [table] [key]",
		Short: "Deletes a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := queryClient.Delete(args[0], args[1]); err != nil {
				return err
			} else {
				fmt.Println("delete successfully")
			}
			return nil
		},
	}
	metaCmd = &cobra.Command{
		Use:   "meta [table]",
		Short: "Prints the metadata of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := queryClient.TableMeta(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("table=%s, version=%d\n", meta.Name, meta.Version)
			for _, col := range meta.Columns {
				fmt.Printf("  %-20s %s\n", col.Name, col.Type)
			}
			return nil
		},
	}
)
