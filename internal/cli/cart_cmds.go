package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/nerocart/internal/view"
)

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &productFlags{}

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Long: `Add a product to the cart.

The product is looked up in the configured catalog. Products outside the
catalog need --name and --price. Adding a product already in the cart
only increases its quantity.`,
		Example: `  nerocart add case-01
  nerocart add case-01 --qty 3
  nerocart add cable-2m --name "USB-C Cable" --price 1200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.validate(); err != nil {
				return err
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.resolveProduct(cmd, args[0], flags)
			if err != nil {
				return err
			}
			return s.report(s.store.Add(commandContext(cmd), p, flags.Qty))
		},
	}

	flags.register(cmd)
	return cmd
}

// NewIncCommand creates the inc command.
func NewIncCommand(rootOpts *RootOptions) *cobra.Command {
	return newStepCommand(rootOpts, "inc", "Increase a cart item's quantity by one", 1)
}

// NewDecCommand creates the dec command. Decreasing below one removes the item.
func NewDecCommand(rootOpts *RootOptions) *cobra.Command {
	return newStepCommand(rootOpts, "dec", "Decrease a cart item's quantity by one", -1)
}

func newStepCommand(rootOpts *RootOptions, use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <product-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.report(s.store.ChangeQuantity(commandContext(cmd), args[0], delta))
		},
	}
}

// NewQtyCommand creates the qty command.
func NewQtyCommand(rootOpts *RootOptions) *cobra.Command {
	var delta int

	cmd := &cobra.Command{
		Use:   "qty <product-id> --delta N",
		Short: "Change a cart item's quantity by delta",
		Long: `Change a cart item's quantity by a signed delta.

The item is removed when its quantity drops below one. Unknown ids are
ignored.`,
		Example: `  nerocart qty case-01 --delta 2
  nerocart qty case-01 --delta -3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.report(s.store.ChangeQuantity(commandContext(cmd), args[0], delta))
		},
	}

	cmd.Flags().IntVarP(&delta, "delta", "d", 0, "signed quantity change (required)")
	_ = cmd.MarkFlagRequired("delta")

	return cmd
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <product-id>",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.report(s.store.Remove(commandContext(cmd), args[0]))
		},
	}
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.report(s.store.Clear(commandContext(cmd)))
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.out.Success(view.Build(s.store.Items(), s.store.Formatter()))
		},
	}
}
