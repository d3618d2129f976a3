package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"invoice-dashboard-backend/internal/tui"
	"invoice-dashboard-backend/pkg/client"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func apiURL() string {
	if u := os.Getenv("INVOICE_API_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func run(args []string, out io.Writer) error {
	c := client.New(apiURL())

	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			printHelp(out)
			return nil
		case "summary":
			return printSummary(c, out)
		case "import":
			if len(args) < 2 {
				return fmt.Errorf("usage: invoicectl import <file.csv>")
			}
			return importFile(c, args[1], out)
		default:
			return fmt.Errorf("unknown command %q (try invoicectl help)", args[0])
		}
	}

	var p *tea.Program
	m, err := tui.New(c, tui.ListingPath, func(msg tea.Msg) { p.Send(msg) })
	if err != nil {
		return err
	}
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `invoicectl - invoice dashboard in the terminal

Usage:
  invoicectl                 browse and search invoices
  invoicectl summary         print dashboard totals
  invoicectl import <file>   bulk create invoices from CSV (customer_id,amount,status)

Environment:
  INVOICE_API_URL            API base URL (default http://localhost:8080)`)
}

func printSummary(c *client.Client, out io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s, err := c.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "invoices:  %d\n", s.InvoiceCount)
	fmt.Fprintf(out, "customers: %d\n", s.CustomerCount)
	fmt.Fprintf(out, "collected: %s\n", s.TotalPaid)
	fmt.Fprintf(out, "pending:   %s\n", s.TotalPending)
	return nil
}

func importFile(c *client.Client, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := c.ImportInvoices(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d invoices from %s\n", report.Inserted, report.File)
	for _, rej := range report.Rejected {
		fmt.Fprintf(out, "  row %d: %s", rej.Row, rej.Message)
		for field, msgs := range rej.Errors {
			fmt.Fprintf(out, " [%s: %v]", field, msgs)
		}
		fmt.Fprintln(out)
	}
	return nil
}
