package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ghuser/stockroom/services/catalog/application/handlers"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
)

func newItemCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage items",
	}
	cmd.AddCommand(
		newItemListCmd(opts),
		newItemShowCmd(opts),
		newItemCreateCmd(opts),
		newItemUpdateCmd(opts),
		newItemDeleteCmd(opts),
		newItemFormOptionsCmd(opts),
	)
	return cmd
}

func printItemRow(w io.Writer, it handlers.ItemResponse) {
	category, price := "-", "-"
	if it.Category != nil {
		category = it.Category.Name
	}
	if it.Price != nil {
		price = *it.Price
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", it.ID, it.Name, category, price, it.NIS, it.DateAdded)
}

func newItemListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items by name with their category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := opts.svcs.Item.List(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]handlers.ItemResponse, len(details))
			for i, d := range details {
				out[i] = handlers.NewItemDetailResponse(d)
			}
			return render(cmd, opts, out, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tADDED")
				for _, it := range out {
					printItemRow(w, it)
				}
			})
		},
	}
}

func newItemShowCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an item and its category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			detail, err := opts.svcs.Item.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := handlers.NewItemDetailResponse(detail)
			return render(cmd, opts, out, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK\tADDED")
				printItemRow(w, out)
			})
		},
	}
}

func itemFlags(cmd *cobra.Command, in *domainsvcs.ItemInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Item name (3-80 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Optional description (3-500 characters)")
	cmd.Flags().StringVar(&in.Category, "category", "", "Category ID")
	cmd.Flags().StringVar(&in.Price, "price", "", "Optional non-negative price")
	cmd.Flags().StringVar(&in.NIS, "nis", "", "Number in stock")
	cmd.Flags().StringVar(&in.DAdded, "d-added", "", "Date added, YYYY-MM-DD (default today)")
}

func newItemCreateCmd(opts *RootOptions) *cobra.Command {
	var in domainsvcs.ItemInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item in an existing category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := opts.svcs.Item.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return render(cmd, opts, handlers.NewItemResponse(it, nil), func(w io.Writer) {
				fmt.Fprintf(w, "created\t%s\t%s\n", it.ID, it.URL())
			})
		},
	}
	itemFlags(cmd, &in)
	return cmd
}

func newItemUpdateCmd(opts *RootOptions) *cobra.Command {
	var in domainsvcs.ItemInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace every field of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			it, err := opts.svcs.Item.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return render(cmd, opts, handlers.NewItemResponse(it, nil), func(w io.Writer) {
				fmt.Fprintf(w, "updated\t%s\t%s\n", it.ID, it.URL())
			})
		},
	}
	itemFlags(cmd, &in)
	return cmd
}

func newItemDeleteCmd(opts *RootOptions) *cobra.Command {
	var pass string
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.svcs.Item.Delete(cmd.Context(), id, pass); err != nil {
				return err
			}
			return render(cmd, opts, map[string]string{"deleted": id.String()}, func(w io.Writer) {
				fmt.Fprintf(w, "deleted\t%s\n", id)
			})
		},
	}
	cmd.Flags().StringVar(&pass, "pass", "", "Deletion pass")
	return cmd
}

func newItemFormOptionsCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "form-options",
		Short: "List the category choices and default date for new items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fo, err := opts.svcs.Item.FormOptions(cmd.Context())
			if err != nil {
				return err
			}
			out := handlers.FormOptionsResponse{Categories: make([]handlers.CategoryRef, len(fo.Categories)), Today: fo.Today}
			for i, c := range fo.Categories {
				out.Categories[i] = handlers.NewCategoryRef(c)
			}
			return render(cmd, opts, out, func(w io.Writer) {
				fmt.Fprintf(w, "today\t%s\n", out.Today)
				for _, c := range out.Categories {
					fmt.Fprintf(w, "category\t%s\t%s\n", c.ID, c.Name)
				}
			})
		},
	}
}
