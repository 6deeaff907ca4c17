package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/product-catalog-editor/internal/catalog"
	"github.com/fairyhunter13/product-catalog-editor/internal/config"
	"github.com/fairyhunter13/product-catalog-editor/internal/effects"
	"github.com/fairyhunter13/product-catalog-editor/internal/form"
	"github.com/fairyhunter13/product-catalog-editor/internal/model"
	"github.com/fairyhunter13/product-catalog-editor/internal/service"
)

var errInvalidForm = errors.New("product form is invalid")

// session wires a store to the product service for one command run.
type session struct {
	store  *catalog.Store
	sel    *catalog.Selectors
	runner *effects.Runner
	cancel context.CancelFunc
	detach func()
}

func openSession(ctx context.Context, cfg config.Config) *session {
	ctx, cancel := context.WithCancel(ctx)
	r := effects.NewRunner(cfg, service.NewClient(cfg.ServiceURL, nil))
	r.Start(ctx)
	st := catalog.NewStore(nil)
	return &session{
		store:  st,
		sel:    catalog.NewSelectors(),
		runner: r,
		cancel: cancel,
		detach: r.Attach(st),
	}
}

func (s *session) close() {
	s.detach()
	s.runner.Stop()
	s.cancel()
}

// do dispatches a and waits until any request it started has been reduced.
func (s *session) do(ctx context.Context, a catalog.Action) error {
	if err := s.store.Dispatch(a); err != nil {
		return err
	}
	return s.runner.Settle(ctx, s.store)
}

func (s *session) load(ctx context.Context) error {
	if err := s.do(ctx, catalog.LoadProducts{}); err != nil {
		return err
	}
	if msg := s.sel.Error(s.store.Snapshot()); msg != "" {
		return fmt.Errorf("load products: %s", msg)
	}
	return nil
}

func newListCmd() *cobra.Command {
	var hideCode bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.Load()
			ses := openSession(ctx, cfg)
			defer ses.close()

			if err := ses.load(ctx); err != nil {
				return err
			}
			if hideCode {
				if err := ses.do(ctx, catalog.ToggleProductCode{}); err != nil {
					return err
				}
			}
			snap := ses.store.Snapshot()
			return writeProducts(cmd.OutOrStdout(), ses.sel.Products(snap), ses.sel.ShowProductCode(snap))
		},
	}
	cmd.Flags().BoolVar(&hideCode, "hide-code", false, "hide product codes")
	return cmd
}

func writeProducts(out io.Writer, products []model.Product, showCode bool) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if showCode {
		fmt.Fprintln(tw, "ID\tPRODUCT\tCODE\tRATING")
	} else {
		fmt.Fprintln(tw, "ID\tPRODUCT\tRATING")
	}
	for _, p := range products {
		if showCode {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", p.ID, p.ProductName, p.ProductCode, p.StarRating)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%d\n", p.ID, p.ProductName, p.StarRating)
		}
	}
	return tw.Flush()
}

type editFlags struct {
	id          int
	isNew       bool
	remove      bool
	name        string
	code        string
	description string
	rating      int
}

func newEditCmd() *cobra.Command {
	var f editFlags
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Add, change or delete a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !f.isNew && f.id <= 0 {
				return errors.New("either --id or --new is required")
			}
			return runEdit(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&f.id, "id", 0, "id of the product to edit")
	fl.BoolVar(&f.isNew, "new", false, "add a new product")
	fl.BoolVar(&f.remove, "delete", false, "delete the product")
	fl.StringVar(&f.name, "name", "", "product name")
	fl.StringVar(&f.code, "code", "", "product code")
	fl.StringVar(&f.description, "description", "", "product description")
	fl.IntVar(&f.rating, "rating", 0, "star rating, 1 to 5")
	cmd.MarkFlagsMutuallyExclusive("id", "new")
	return cmd
}

func runEdit(cmd *cobra.Command, f editFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cfg := config.Load()
	table, err := form.LoadTable(cfg.MessagesFile)
	if err != nil {
		return err
	}

	ses := openSession(ctx, cfg)
	defer ses.close()
	if err := ses.load(ctx); err != nil {
		return err
	}

	unsub := catalog.Select(ses.store, ses.sel.CurrentProduct, func(a, b catalog.Selection) bool { return a == b }, func(c catalog.Selection) {
		if c.Found {
			fmt.Fprintln(out, form.PageTitle(c.Product))
		}
	})
	defer unsub()

	var sel catalog.Action = catalog.SetCurrentProduct{ProductID: f.id}
	if f.isNew {
		sel = catalog.InitializeCurrentProduct{}
	}
	if err := ses.do(ctx, sel); err != nil {
		return err
	}
	selected := ses.sel.CurrentProduct(ses.store.Snapshot())
	if !selected.Found {
		return fmt.Errorf("product %d not found", f.id)
	}
	cur := selected.Product

	if f.remove {
		if err := ses.do(ctx, catalog.DeleteProduct{ProductID: cur.ID}); err != nil {
			return err
		}
		if msg := ses.sel.Error(ses.store.Snapshot()); msg != "" {
			return fmt.Errorf("delete product: %s", msg)
		}
		fmt.Fprintf(out, "Deleted product %d\n", cur.ID)
		return nil
	}

	values := form.FormFromProduct(cur)
	touched := map[string]bool{}
	flags := cmd.Flags()
	if flags.Changed("name") {
		values.ProductName, touched["productName"] = f.name, true
	}
	if flags.Changed("code") {
		values.ProductCode, touched["productCode"] = f.code, true
	}
	if flags.Changed("description") {
		values.Description, touched["description"] = f.description, true
	}
	if flags.Changed("rating") {
		values.StarRating, touched["starRating"] = form.Rating(f.rating), true
	}
	if len(touched) == 0 {
		return errors.New("nothing to save: no field changed")
	}
	if msgs := table.Process(form.Check(values, touched)); len(msgs) > 0 {
		writeMessages(out, msgs)
		return errInvalidForm
	}
	if !form.Valid(values) {
		writeMessages(out, table.Process(form.Check(values, nil)))
		return errInvalidForm
	}

	if err := ses.do(ctx, catalog.UpdateProduct{Product: values.Apply(cur)}); err != nil {
		return err
	}
	snap := ses.store.Snapshot()
	if msg := ses.sel.Error(snap); msg != "" {
		return fmt.Errorf("save product: %s", msg)
	}
	saved := ses.sel.CurrentProduct(snap)
	if !saved.Found {
		return errors.New("saved product is no longer in the catalog")
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(saved.Product)
}

func writeMessages(out io.Writer, msgs map[string]string) {
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "%s: %s\n", f, msgs[f])
	}
}
