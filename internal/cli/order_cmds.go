package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/order"
)

// orderResult is the printed form of a composed order.
type orderResult struct {
	order.Order
}

// String renders the message text; the link was already printed by the opener.
func (r orderResult) String() string {
	return "\n" + r.Text + "\n"
}

// newFlow builds an order flow for the session. In text mode the link is
// printed as soon as the order opens; in JSON mode it is part of the payload.
func (s *session) newFlow() *order.Flow {
	var opener order.Opener = order.PrintOpener{W: s.out.Writer}
	if s.out.Format == "json" {
		opener = order.OpenerFunc(func(context.Context, string) error { return nil })
	}
	return order.NewFlow(s.store, order.Options{
		Shop:             s.cfg.Shop.Name,
		Phone:            s.cfg.Shop.Phone,
		IncludeReference: s.cfg.Order.IncludeReference,
		Opener:           opener,
	})
}

// reportOrder prints a composed order or maps the flow error.
func (s *session) reportOrder(o order.Order, err error) error {
	if err == nil {
		return s.out.Success(orderResult{o})
	}
	if cart.IsEmptyCartError(err) {
		_ = s.out.Error(ErrCodeEmptyCart, cart.ErrEmptyCart.Message, nil)
		return WrapExitError(ExitFailure, "order rejected", err)
	}
	_ = s.out.Error(ErrCodeOpenFailed, err.Error(), nil)
	return WrapExitError(ExitFailure, "failed to open order", err)
}

// NewOrderCommand creates the order command.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Compose a WhatsApp order for the whole cart",
		Long: `Compose the order message for every item in the cart and print
its WhatsApp link. An empty cart is rejected and no link is produced.

The cart is left unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.reportOrder(s.newFlow().OrderCart(commandContext(cmd)))
		},
	}
}

// NewOrderNowCommand creates the order-now command.
func NewOrderNowCommand(rootOpts *RootOptions) *cobra.Command {
	flags := &productFlags{}

	cmd := &cobra.Command{
		Use:   "order-now <product-id>",
		Short: "Compose a WhatsApp order for a single product",
		Long: `Compose a single-product order message and print its WhatsApp link.

The cart is neither read nor changed.`,
		Example: `  nerocart order-now case-01 --qty 2`,
		Args:    cobra.ExactArgs(1),
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
			return s.reportOrder(s.newFlow().OrderNow(commandContext(cmd), p, flags.Qty))
		},
	}

	flags.register(cmd)
	return cmd
}

// ContactOptions holds flags for the contact command.
type ContactOptions struct {
	Name    string
	Email   string
	Message string
}

// NewContactCommand creates the contact command.
func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactOptions{}

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Compose a WhatsApp contact message to the shop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(opts.Message) == "" {
				return NewExitError(ExitCommandError, "--message must not be empty")
			}

			s, err := openSession(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer s.Close()

			return s.reportOrder(s.newFlow().Contact(commandContext(cmd), opts.Name, opts.Email, opts.Message))
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "your name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "your email")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "message text (required)")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
