// Command finctl is a terminal client for the finboard API.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"finboard/internal/aggregation"
	"finboard/internal/money"
)

const defaultAPI = "http://localhost:8080"

const usage = `Usage: finctl [-api URL] [-credentials PATH] <command> [flags]

Commands:
  login     sign in and store the session
  logout    end the session
  summary   show the dashboard figures (-from, -to as YYYY-MM-DD)
  returns   show the net return of every investment
`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli carries the global flags and streams into each command.
type cli struct {
	api         string
	credentials string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	now         func() time.Time
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("finctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	api := fs.String("api", os.Getenv("FINCTL_API"), "finboard API base URL")
	credentials := fs.String("credentials", os.Getenv("FINCTL_CREDENTIALS"), "credentials file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	path := *credentials
	if path == "" {
		var err error
		if path, err = defaultCredentialsPath(); err != nil {
			return err
		}
	}
	c := &cli{api: *api, credentials: path, stdin: stdin, stdout: stdout, stderr: stderr, now: time.Now}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout(ctx)
	case "summary":
		return c.summary(ctx, rest)
	case "returns":
		return c.returns(ctx)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(c.stdin)
	if *email == "" {
		fmt.Fprint(c.stdout, "Email: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("failed to read email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}
	fmt.Fprint(c.stdout, "Password: ")
	password, err := readPassword(c.stdin, reader)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(c.stdout)
	if *email == "" || password == "" {
		return errors.New("email and password are required")
	}

	base := c.baseURL(nil)
	resp, err := newAPIClient(base, "").Login(ctx, *email, password)
	if err != nil {
		return err
	}

	creds := &Credentials{
		API:       base,
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		User: Profile{
			ID:    resp.User.ID.String(),
			Name:  resp.User.Name,
			Email: resp.User.Email,
		},
	}
	if err := saveCredentials(c.credentials, creds); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Logged in as %s\n", creds.User.Name)
	return nil
}

// logout ends the server session and forgets the local one. The local file is
// removed even when the server call fails.
func (c *cli) logout(ctx context.Context) error {
	creds, err := loadCredentials(c.credentials, c.now())
	if errors.Is(err, errNotLoggedIn) {
		fmt.Fprintln(c.stdout, "Not logged in")
		return removeCredentials(c.credentials)
	}
	if err != nil {
		return err
	}

	callErr := newAPIClient(c.baseURL(creds), creds.Token).Logout(ctx)
	if err := removeCredentials(c.credentials); err != nil {
		return err
	}
	var reqErr *requestError
	if callErr != nil && !(errors.As(callErr, &reqErr) && reqErr.Status == 401) {
		return callErr
	}
	fmt.Fprintln(c.stdout, "Logged out")
	return nil
}

func (c *cli) summary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	from := fs.String("from", "", "first day (YYYY-MM-DD)")
	to := fs.String("to", "", "last day (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := c.authorized()
	if err != nil {
		return err
	}
	s, err := client.Summary(ctx, *from, *to)
	if err != nil {
		return c.forgetOnUnauthorized(err)
	}
	printSummary(c.stdout, s)
	return nil
}

func (c *cli) returns(ctx context.Context) error {
	client, err := c.authorized()
	if err != nil {
		return err
	}
	returns, err := client.Returns(ctx)
	if err != nil {
		return c.forgetOnUnauthorized(err)
	}
	if len(returns) == 0 {
		fmt.Fprintln(c.stdout, "No investments")
		return nil
	}

	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INVESTMENT\tDAYS\tGROSS\tTAX\tNET")
	for _, r := range returns {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", r.InvestmentID, r.HoldingDays,
			money.FormatBRL(r.Gross), money.FormatBRL(r.Tax), money.FormatBRL(r.Net))
	}
	return w.Flush()
}

func (c *cli) authorized() (*apiClient, error) {
	creds, err := loadCredentials(c.credentials, c.now())
	if err != nil {
		return nil, err
	}
	return newAPIClient(c.baseURL(creds), creds.Token), nil
}

// forgetOnUnauthorized drops the stored session once the server has
// revoked it.
func (c *cli) forgetOnUnauthorized(err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) && reqErr.Status == 401 {
		if rmErr := removeCredentials(c.credentials); rmErr != nil {
			return rmErr
		}
		return fmt.Errorf("%w, log in again", err)
	}
	return err
}

// baseURL prefers the -api flag, then the URL the session was created
// against.
func (c *cli) baseURL(creds *Credentials) string {
	if c.api != "" {
		return c.api
	}
	if creds != nil && creds.API != "" {
		return creds.API
	}
	return defaultAPI
}

func printSummary(out io.Writer, s *aggregation.Summary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Period\t%s to %s (%d days)\n",
		s.Range.From.Format("02/01/2006"), s.Range.To.Format("02/01/2006"), s.Days)
	fmt.Fprintf(w, "Account balance\t%s\n", money.FormatBRL(s.Balances.Account))
	fmt.Fprintf(w, "Projected balance\t%s\n", money.FormatBRL(s.Balances.Projected))
	fmt.Fprintf(w, "Earnings\t%s%s\n", money.FormatBRL(s.Period.Earnings), delta(s.Comparisons.Earnings))
	fmt.Fprintf(w, "Expenses\t%s%s\n", money.FormatBRL(s.Period.Expenses), delta(s.Comparisons.Expenses))
	fmt.Fprintf(w, "Investments\t%s%s\n", money.FormatBRL(s.Period.Investments), delta(s.Comparisons.Investments))
	fmt.Fprintf(w, "Balance\t%s\n", money.FormatBRL(s.Period.Balance))
	if s.OverdueCount > 0 {
		fmt.Fprintf(w, "Overdue\t%d (%s)\n", s.OverdueCount, money.FormatBRL(s.OverdueTotal))
	}
	_ = w.Flush()

	if len(s.ByCategory) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tTOTAL\tSHARE")
		for _, g := range s.ByCategory {
			fmt.Fprintf(w, "%s\t%s\t%s\n", g.Name, money.FormatBRL(g.Total), money.FormatPercent(g.Percent))
		}
		_ = w.Flush()
	}
}

func delta(cmp aggregation.Comparison) string {
	if !cmp.Available {
		return ""
	}
	sign := ""
	if cmp.Delta.IsPositive() {
		sign = "+"
	}
	return fmt.Sprintf("\t%s%s vs previous period", sign, money.FormatPercent(cmp.Delta))
}

// readPassword reads without echo from a terminal and falls back to a line
// read for pipes.
func readPassword(stdin io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := buffered.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
