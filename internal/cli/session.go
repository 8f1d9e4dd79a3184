package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/nerocart/internal/cart"
	"github.com/roach88/nerocart/internal/catalog"
	"github.com/roach88/nerocart/internal/codec"
	"github.com/roach88/nerocart/internal/config"
	"github.com/roach88/nerocart/internal/kv"
	"github.com/roach88/nerocart/internal/view"
)

// session is one CLI invocation's view of the cart: config, opened
// backend, initialized store and optional catalog.
type session struct {
	cfg     config.Config
	store   *cart.Store
	catalog *catalog.Catalog
	out     *OutputFormatter
	closer  func() error
}

// newOutput builds the formatter for cmd from the global flags.
func newOutput(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openSession loads config, opens the backend and initializes the store.
// Failures are reported through the formatter before they are returned.
// Callers must Close the session.
func openSession(cmd *cobra.Command, opts *RootOptions) (*session, error) {
	ctx := commandContext(cmd)
	out := newOutput(cmd, opts)

	cfg, err := config.Load(opts.Config)
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Database != "" {
		cfg.Storage.Backend = config.BackendSQLite
		cfg.Storage.Path = opts.Database
	}

	cartOpts, err := cfg.CartOptions()
	if err != nil {
		_ = out.Error(ErrCodeConfig, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "invalid shop settings", err)
	}
	cartOpts = append(cartOpts, cart.WithLogger(slog.Default()))

	backend, closer, err := openBackend(ctx, cfg.Storage)
	if err != nil {
		_ = out.Error(ErrCodeStorage, err.Error(), map[string]string{"backend": cfg.Storage.Backend})
		return nil, WrapExitError(ExitCommandError, "failed to open cart storage", err)
	}
	out.VerboseLog("storage: %s backend, key %q", cfg.Storage.Backend, cfg.Storage.Key)

	s := &session{
		cfg:    cfg,
		store:  cart.Initialize(ctx, kv.WithQuota(backend, cfg.Storage.QuotaBytes), cartOpts...),
		closer: closer,
		out:    out,
	}

	if cfg.Shop.Catalog != "" {
		c, err := catalog.Load(cfg.Shop.Catalog)
		if err != nil {
			_ = s.Close()
			_ = out.Error(ErrCodeCatalog, err.Error(), map[string]string{"path": cfg.Shop.Catalog})
			return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
		}
		s.catalog = c
		out.VerboseLog("catalog: %d products from %s", c.Len(), cfg.Shop.Catalog)
	}

	return s, nil
}

// openBackend opens the configured kv backend and returns its closer.
func openBackend(ctx context.Context, st config.Storage) (kv.Backend, func() error, error) {
	switch st.Backend {
	case config.BackendMemory:
		return kv.NewMemory(), func() error { return nil }, nil
	case config.BackendSQLite:
		db, err := kv.OpenSQLite(st.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.BackendRedis:
		r, err := kv.OpenRedis(ctx, kv.RedisOptions{
			Addr:     st.RedisAddr,
			Password: st.RedisPassword,
			DB:       st.RedisDB,
			TTL:      st.RedisTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", st.Backend)
	}
}

// Close releases the backend.
func (s *session) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer(); err != nil {
		slog.Error("error closing storage", "error", err)
		return err
	}
	return nil
}

// report prints the cart after a mutation and maps cart errors to exit codes.
func (s *session) report(ch cart.Change, err error) error {
	v := view.FromChange(ch, s.store.Formatter())
	if err == nil {
		return s.out.Success(v)
	}

	var cerr *cart.Error
	switch {
	case cart.IsInvalidItemError(err) && errors.As(err, &cerr):
		_ = s.out.Error(ErrCodeInvalidItem, cerr.Message, nil)
		return WrapExitError(ExitFailure, "invalid product", err)
	case cart.IsPersistError(err):
		_ = s.out.Warn(v, ErrCodePersistFailed, "cart was not saved and may not survive a reload")
		return WrapExitError(ExitFailure, "cart not saved", err)
	default:
		_ = s.out.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "cart update failed", err)
	}
}

// productFlags are the ad-hoc product fields accepted by add and order-now.
type productFlags struct {
	Qty   int
	Name  string
	Price int64
	Image string
}

// validate rejects quantities the cart could never store.
func (f *productFlags) validate() error {
	if f.Qty > codec.MaxQty {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid --qty %d: must be at most %d", f.Qty, codec.MaxQty))
	}
	return nil
}

func (f *productFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.Qty, "qty", "q", 1, "quantity")
	cmd.Flags().StringVar(&f.Name, "name", "", "product name (required if not in catalog)")
	cmd.Flags().Int64Var(&f.Price, "price", 0, "unit price in whole currency units")
	cmd.Flags().StringVar(&f.Image, "image", "", "image reference")
}

// resolveProduct looks id up in the catalog; flags that were set override
// catalog fields. Unknown ids need at least --name.
func (s *session) resolveProduct(cmd *cobra.Command, id string, f *productFlags) (cart.Product, error) {
	p, found := s.catalog.Lookup(id)
	if !found {
		if f.Name == "" {
			_ = s.out.Error(ErrCodeNotFound, fmt.Sprintf("product %q is not in the catalog; pass --name and --price", id), nil)
			return cart.Product{}, NewExitError(ExitFailure, fmt.Sprintf("unknown product %q", id))
		}
		p = cart.Product{ID: id}
	}

	if cmd.Flags().Changed("name") {
		p.Name = f.Name
	}
	if cmd.Flags().Changed("price") {
		p.Price = f.Price
	}
	if cmd.Flags().Changed("image") {
		p.Image = f.Image
	}
	return p, nil
}

// commandContext returns the command's context, or Background for
// commands executed without one (tests calling Execute directly).
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
