package main

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ghuser/stockroom/services/catalog/application/handlers"
	domainsvcs "github.com/ghuser/stockroom/services/catalog/domain/services"
)

func newCategoryCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage categories",
	}
	cmd.AddCommand(
		newCategoryListCmd(opts),
		newCategoryShowCmd(opts),
		newCategoryCreateCmd(opts),
		newCategoryUpdateCmd(opts),
		newCategoryDeleteCmd(opts),
	)
	return cmd
}

func newCategoryListCmd(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := opts.svcs.Category.List(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]handlers.CategoryRef, len(cats))
			for i, c := range cats {
				out[i] = handlers.NewCategoryRef(c)
			}
			return render(cmd, opts, out, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tURL")
				for _, c := range out {
					fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.URL)
				}
			})
		},
	}
}

func newCategoryShowCmd(opts *RootOptions) *cobra.Command {
	var preview bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a category and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			get := opts.svcs.Category.Get
			if preview {
				get = opts.svcs.Category.DeletePreview
			}
			detail, err := get(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := handlers.NewCategoryDetailResponse(detail)
			return render(cmd, opts, out, func(w io.Writer) {
				fmt.Fprintf(w, "ID\t%s\nNAME\t%s\nDESCRIPTION\t%s\nURL\t%s\nITEMS\t%d\n",
					out.ID, out.Name, out.Description, out.URL, len(out.Items))
				for _, it := range out.Items {
					fmt.Fprintf(w, "  %s\t%s\n", it.ID, it.Name)
				}
			})
		},
	}
	cmd.Flags().BoolVar(&preview, "delete-preview", false, "Show what a delete would be blocked by")
	return cmd
}

func categoryFlags(cmd *cobra.Command, in *domainsvcs.CategoryInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Category name (3-50 characters)")
	cmd.Flags().StringVar(&in.Description, "description", "", "Category description (at least 5 characters)")
}

func newCategoryCreateCmd(opts *RootOptions) *cobra.Command {
	var in domainsvcs.CategoryInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.svcs.Category.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			return render(cmd, opts, handlers.NewCategoryResponse(c), func(w io.Writer) {
				fmt.Fprintf(w, "created\t%s\t%s\n", c.ID, c.URL())
			})
		},
	}
	categoryFlags(cmd, &in)
	return cmd
}

func newCategoryUpdateCmd(opts *RootOptions) *cobra.Command {
	var in domainsvcs.CategoryInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a category's name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := opts.svcs.Category.Update(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return render(cmd, opts, handlers.NewCategoryResponse(c), func(w io.Writer) {
				fmt.Fprintf(w, "updated\t%s\t%s\n", c.ID, c.URL())
			})
		},
	}
	categoryFlags(cmd, &in)
	return cmd
}

func newCategoryDeleteCmd(opts *RootOptions) *cobra.Command {
	var pass string
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category that has no items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := opts.svcs.Category.Delete(cmd.Context(), id, pass); err != nil {
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

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, usageErrorf("invalid id %q: must be a UUID", s)
	}
	return id, nil
}
