package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"slices"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/govportal/portalctl/internal/config"
	"github.com/govportal/portalctl/internal/dao"
	"github.com/govportal/portalctl/internal/demo"
	"github.com/govportal/portalctl/internal/logging"
	"github.com/govportal/portalctl/internal/model1"
	"github.com/govportal/portalctl/internal/render"
)

func demoCmd() *cobra.Command {
	var port int
	cmd := cobra.Command{
		Use:   "demo",
		Short: "Serve the fixture portal API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logging.NewConsole(*flags.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return demo.NewServer(log).Run(ctx, ":"+strconv.Itoa(port))
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Listen port")

	return &cmd
}

func exportCmd() *cobra.Command {
	var (
		page   int
		search string
		all    bool
	)
	cmd := cobra.Command{
		Use:   "export <view>",
		Short: "Write a page of a resource as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			rid, err := resolveRID(args[0])
			if err != nil {
				return err
			}
			q := &model1.Query{Page: page, Search: search, Limit: s.cfg.Portalctl.PageSize()}
			if all {
				q = nil
			}

			return exportRID(cmd.Context(), cmd.OutOrStdout(), s.factory, rid, q)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page to export")
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().BoolVar(&all, "all", false, "Export every row instead of a single page")

	return &cmd
}

func describeCmd() *cobra.Command {
	var output string
	cmd := cobra.Command{
		Use:   "describe <view> <id>",
		Short: "Print a single record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			rid, err := resolveRID(args[0])
			if err != nil {
				return err
			}

			return describeRID(cmd.Context(), cmd.OutOrStdout(), s.factory, rid, args[1], output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (yaml, json, text)")

	return &cmd
}

// resolveRID maps a view name or alias to a known resource.
func resolveRID(name string) (*dao.ResourceID, error) {
	aliases := config.NewAliases()
	if err := aliases.Load(); err != nil {
		return nil, err
	}

	var rid dao.ResourceID
	if err := rid.Parse(aliases.Get(name)); err != nil {
		return nil, fmt.Errorf("unknown view %q", name)
	}
	if !slices.Contains(dao.AllRIDs, rid) {
		return nil, fmt.Errorf("unknown view %q", name)
	}

	return &rid, nil
}

func exportRID(ctx context.Context, w io.Writer, f dao.Factory, rid *dao.ResourceID, q *model1.Query) error {
	acc, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}
	r, err := render.For(rid)
	if err != nil {
		return err
	}
	p, err := acc.List(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", rid, err)
	}

	return model1.WriteCSV(w, r.Columns(), p.Data, model1.CSVOptions{})
}

func describeRID(ctx context.Context, w io.Writer, f dao.Factory, rid *dao.ResourceID, id, output string) error {
	acc, err := dao.AccessorFor(f, rid)
	if err != nil {
		return err
	}

	switch output {
	case "json", "text":
		d, ok := acc.(dao.Describer)
		if !ok {
			return fmt.Errorf("%s cannot be described", rid)
		}
		fn := d.Describe
		if output == "json" {
			fn = d.ToJSON
		}
		s, err := fn(ctx, id)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case "yaml":
		row, err := acc.Get(ctx, id)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any(row)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}
