package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"cookbook-service/internal/client"
	"cookbook-service/internal/core/seed"
	"cookbook-service/internal/pkg/common"

	"github.com/spf13/cobra"
)

type options struct {
	server  string
	timeout time.Duration
}

func (o *options) client() *client.Client {
	return client.New(o.server, o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "cookbookctl",
		Short:         "Command line client for the cookbook service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("COOKBOOK_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	root.PersistentFlags().StringVarP(&opts.server, "server", "s", defaultServer,
		"cookbook service base URL (env COOKBOOK_SERVER)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second,
		"request timeout")

	root.AddCommand(
		newParseCmd(opts),
		newAddCmd(opts),
		newSummaryCmd(opts),
		newLoadCmd(opts),
	)
	return root
}

func newParseCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name...>",
		Short: "Normalize a handwritten recipe name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := opts.client().ParseName(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}

func newAddCmd(opts *options) *cobra.Command {
	var (
		cookTime int
		items    []string
	)

	cmd := &cobra.Command{
		Use:   "add <ingredient|recipe> <name>",
		Short: "Add an ingredient or recipe entry",
		Example: `  cookbookctl add ingredient Egg --cook-time 5
  cookbookctl add recipe Omelette --item Egg=3 --item Sauce=1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := common.EntryRequest{Type: args[0], Name: args[1]}
			if cmd.Flags().Changed("cook-time") {
				entry.CookTime = common.IntPtr(cookTime)
			}
			for _, raw := range items {
				item, err := parseItem(raw)
				if err != nil {
					return err
				}
				entry.RequiredItems = append(entry.RequiredItems, item)
			}

			if err := opts.client().CreateEntry(cmd.Context(), entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s %q\n", entry.Type, entry.Name)
			return nil
		},
	}

	cmd.Flags().IntVar(&cookTime, "cook-time", 0, "ingredient cook time")
	cmd.Flags().StringArrayVar(&items, "item", nil, "required item as name=quantity (repeatable)")
	return cmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <name>",
		Short: "Show total cook time and base ingredients of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := opts.client().Summary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}

func newLoadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Add every entry of a YAML or JSON seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			c := opts.client()
			for i, entry := range entries {
				if err := c.CreateEntry(cmd.Context(), entry); err != nil {
					return fmt.Errorf("entry %d (%q): %w", i, entry.Name, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d entries\n", len(entries))
			return nil
		},
	}
}

// parseItem 解析 name=quantity
func parseItem(raw string) (common.RequiredItemRequest, error) {
	name, qty, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return common.RequiredItemRequest{}, fmt.Errorf("invalid item %q, want name=quantity", raw)
	}
	quantity, err := strconv.Atoi(qty)
	if err != nil {
		return common.RequiredItemRequest{}, fmt.Errorf("invalid quantity in %q: %w", raw, err)
	}
	return common.RequiredItemRequest{Name: common.StringPtr(name), Quantity: common.IntPtr(quantity)}, nil
}
