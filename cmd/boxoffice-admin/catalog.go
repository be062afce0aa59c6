package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/target/boxoffice/internal/adapters/backend"
	"github.com/target/boxoffice/internal/service"
)

type listOptions struct {
	Scope   string
	Query   string
	Status  string
	EventID string
}

func parseListFlags(name string, args []string) (listOptions, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts listOptions
	fs.StringVar(&opts.Scope, "scope", defaultScope, "Session scope")
	switch name {
	case "events":
		fs.StringVar(&opts.Query, "q", "", "Only events whose name, category, status or venue contains this text")
	case "tickets":
		fs.StringVar(&opts.Status, "status", "", "Only tickets in this status")
		fs.StringVar(&opts.EventID, "event", "", "Only tickets for this event id")
	}
	if err := fs.Parse(args); err != nil {
		return listOptions{}, err
	}
	return opts, nil
}

func newTable(cmdCtx *commandContext) *tabwriter.Writer {
	return tabwriter.NewWriter(cmdCtx.Out, 0, 2, 2, ' ', 0)
}

func runEvents(cmdCtx *commandContext, args []string) error {
	opts, err := parseListFlags("events", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		tok, err := requireToken(cmdCtx, env, opts.Scope)
		if err != nil {
			return err
		}
		res := env.services.Catalog.ListEvents(cmdCtx.Ctx, tok)
		if err := backend.Err(res); err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		events := res.Data
		if opts.Query != "" {
			events = service.FilterEvents(events, opts.Query)
		}

		tw := newTable(cmdCtx)
		if err := writef(tw, "ID\tNAME\tVENUE\tSTARTS\tSTATUS\n"); err != nil {
			return err
		}
		for _, e := range events {
			venue := "Unknown venue"
			if e.Venue != nil {
				venue = e.Venue.Name
			}
			starts := "-"
			if !e.StartsAt.IsZero() {
				starts = e.StartsAt.UTC().Format("2006-01-02 15:04")
			}
			if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, venue, starts, orDash(string(e.Status))); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}

func runVenues(cmdCtx *commandContext, args []string) error {
	opts, err := parseListFlags("venues", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		tok, err := requireToken(cmdCtx, env, opts.Scope)
		if err != nil {
			return err
		}
		res := env.services.Catalog.ListVenues(cmdCtx.Ctx, tok)
		if err := backend.Err(res); err != nil {
			return fmt.Errorf("list venues: %w", err)
		}

		tw := newTable(cmdCtx)
		if err := writef(tw, "ID\tNAME\tCITY\tCAPACITY\n"); err != nil {
			return err
		}
		for _, v := range res.Data {
			if err := writef(tw, "%s\t%s\t%s\t%d\n", v.ID, v.Name, orDash(v.City), v.Capacity); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}

func runTickets(cmdCtx *commandContext, args []string) error {
	opts, err := parseListFlags("tickets", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		tok, err := requireToken(cmdCtx, env, opts.Scope)
		if err != nil {
			return err
		}
		res := env.services.Catalog.ListTickets(cmdCtx.Ctx, tok)
		if err := backend.Err(res); err != nil {
			return fmt.Errorf("list tickets: %w", err)
		}

		tw := newTable(cmdCtx)
		if err := writef(tw, "ID\tEVENT\tHOLDER\tPRICE\tSTATUS\n"); err != nil {
			return err
		}
		for _, t := range service.FilterTickets(res.Data, opts.Status, opts.EventID) {
			if err := writef(tw, "%s\t%s\t%s\t%.2f\t%s\n", t.ID, t.EventID, orDash(t.HolderName), t.Price, t.Status); err != nil {
				return err
			}
		}
		return tw.Flush()
	})
}

func runStats(cmdCtx *commandContext, args []string) error {
	opts, err := parseListFlags("stats", args)
	if err != nil {
		return err
	}
	return withEnv(cmdCtx, func(env *cliEnv) error {
		tok, err := requireToken(cmdCtx, env, opts.Scope)
		if err != nil {
			return err
		}
		res := env.services.Catalog.Dashboard(cmdCtx.Ctx, tok)
		if err := backend.Err(res); err != nil {
			return fmt.Errorf("load stats: %w", err)
		}
		return printStats(cmdCtx, res.Data)
	})
}

func printStats(cmdCtx *commandContext, s service.DashboardStats) error {
	t := s.Totals
	tw := newTable(cmdCtx)
	rows := [][2]string{
		{"Total tickets", fmt.Sprint(t.TotalTickets)},
		{"Revenue", fmt.Sprintf("%.2f", t.TotalRevenue)},
		{"Average price", fmt.Sprintf("%.2f", t.AveragePrice)},
		{"Sold", fmt.Sprint(t.Sold)},
		{"Reserved", fmt.Sprint(t.Reserved)},
		{"Cancelled", fmt.Sprint(t.Cancelled)},
		{"Checked in", fmt.Sprint(t.CheckedIn)},
	}
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.ByEvent) == 0 {
		return nil
	}

	if err := writef(cmdCtx.Out, "\nSales by event:\n"); err != nil {
		return err
	}
	tw = newTable(cmdCtx)
	for _, e := range s.ByEvent {
		if err := writef(tw, "  %s\t%d\t%.2f\n", e.EventName, e.Tickets, e.Revenue); err != nil {
			return err
		}
	}
	return tw.Flush()
}
