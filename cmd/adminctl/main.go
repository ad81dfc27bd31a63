// Command adminctl is a terminal client for the CoKilo admin API. It covers
// the daily withdrawal workflow: list pending requests, inspect one, then
// approve or reject it.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"cokilo-admin/config"
	"cokilo-admin/pkg/adminclient"
)

const usage = `Usage: adminctl <command> [arguments]

Commands:
  withdrawals <userId>        list withdrawal requests of a user
  withdrawal <id>             show one withdrawal request
  approve <id>                approve a pending request (asks to confirm)
  reject <id> -reason <text>  reject a pending request and refund the wallet
  history <userId>            show a user's wallet ledger
  wallets [-page N]           list DZD wallets
  stats                       show wallet dashboard aggregates

Credentials are read from CKA_ADMIN_EMAIL; the password is prompted.
The API base URL comes from CKA_CLIENT_BASE_URL (default http://localhost:8080/api).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load("")
	if err != nil {
		fatal("load config: %v", err)
	}

	client := adminclient.New(cfg.Client.BaseURL, adminclient.WithTimeout(cfg.Client.Timeout))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := login(ctx, client); err != nil {
		fatal("login: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(ctx, client, cmd, args); err != nil {
		var apiErr *adminclient.APIError
		if errors.As(err, &apiErr) {
			fatal("%s", apiErr.Message)
		}
		fatal("%v", err)
	}
}

func run(ctx context.Context, client *adminclient.Client, cmd string, args []string) error {
	decisions := adminclient.NewDecisionController(client)

	switch cmd {
	case "withdrawals":
		userID, err := idArg(args, "userId")
		if err != nil {
			return err
		}
		list, err := client.WithdrawalsForUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Println(adminclient.MsgNoWithdrawals)
			return nil
		}
		for _, w := range list {
			printWithdrawalLine(w)
		}
		return nil

	case "withdrawal":
		id, err := idArg(args, "id")
		if err != nil {
			return err
		}
		w, err := client.Withdrawal(ctx, id)
		if adminclient.IsNotFound(err) {
			return errors.New(adminclient.MsgNotFound)
		}
		if err != nil {
			return err
		}
		printWithdrawalDetail(w)
		return nil

	case "approve":
		id, err := idArg(args, "id")
		if err != nil {
			return err
		}
		w, err := decisions.Approve(ctx, id, func() bool {
			return confirm(fmt.Sprintf("Approuver la demande #%d ?", id))
		})
		if errors.Is(err, adminclient.ErrDecisionAborted) {
			fmt.Println("Annulé")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(adminclient.MsgApproved)
		printWithdrawalDetail(w)
		return nil

	case "reject":
		fs := flag.NewFlagSet("reject", flag.ExitOnError)
		reason := fs.String("reason", "", "rejection reason shown to the user")
		id, err := idArgFlags(fs, args, "id")
		if err != nil {
			return err
		}
		if strings.TrimSpace(*reason) == "" {
			*reason = prompt("Motif du rejet: ")
		}
		w, err := decisions.Reject(ctx, id, *reason)
		if errors.Is(err, adminclient.ErrEmptyReason) {
			return errors.New("le motif du rejet est obligatoire")
		}
		if err != nil {
			return err
		}
		fmt.Println(adminclient.MsgRejected)
		printWithdrawalDetail(w)
		return nil

	case "history":
		userID, err := idArg(args, "userId")
		if err != nil {
			return err
		}
		history, err := client.UserHistory(ctx, userID)
		if err != nil {
			return err
		}
		for _, e := range history {
			sign := "+"
			if e.Type == "debit" {
				sign = "-"
			}
			fmt.Printf("%s  %s%s  %-20s %s\n",
				e.CreatedAt.Format("2006-01-02 15:04"),
				sign, adminclient.FormatAmount(e.Amount), e.Kind, e.Description)
		}
		return nil

	case "wallets":
		fs := flag.NewFlagSet("wallets", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(args); err != nil {
			return err
		}
		wp, err := client.DZDWallets(ctx, *page)
		if err != nil {
			return err
		}
		for _, w := range wp.Wallets {
			fmt.Printf("#%-6d %-30s %s %s  %s\n",
				w.UserID, w.Email, w.FirstName, w.LastName,
				adminclient.FormatAmount(w.Balance))
		}
		fmt.Printf("page %d/%d (%d wallets)\n", wp.Pagination.Page, wp.Pagination.Pages, wp.Pagination.Total)
		return nil

	case "stats":
		st, err := client.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Currency:             %s\n", st.Currency)
		fmt.Printf("Wallets:              %d\n", st.WalletCount)
		fmt.Printf("Total balance:        %s\n", adminclient.FormatAmount(st.TotalBalance))
		fmt.Printf("Pending withdrawals:  %d\n", st.PendingWithdrawals)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// login authenticates against the API using CKA_ADMIN_EMAIL and a
// prompted password. The password never appears in argv or env.
func login(ctx context.Context, client *adminclient.Client) error {
	email := os.Getenv("CKA_ADMIN_EMAIL")
	if email == "" {
		email = prompt("Email: ")
	}

	fmt.Fprint(os.Stderr, "Mot de passe: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	admin, err := client.Login(ctx, email, string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Connecté: %s (%s)\n", admin.Name, admin.Role)
	return nil
}

func printWithdrawalLine(w adminclient.Withdrawal) {
	fmt.Printf("#%-6d %-12s %s  %s  %s\n",
		w.ID,
		adminclient.StatusLabel(w.Status),
		adminclient.FormatAmount(w.Amount),
		w.CreatedAt.Format("2006-01-02"),
		w.UserName)
}

func printWithdrawalDetail(w *adminclient.Withdrawal) {
	fmt.Printf("Demande:        #%d\n", w.ID)
	fmt.Printf("Statut:         %s\n", adminclient.StatusLabel(w.Status))
	fmt.Printf("Montant:        %s\n", adminclient.FormatAmount(w.Amount))
	fmt.Printf("Utilisateur:    %s <%s>\n", w.UserName, w.UserEmail)
	fmt.Printf("Banque:         %s\n", w.BankName)
	fmt.Printf("Compte:         %s (%s)\n", w.AccountNumber, w.AccountHolder)
	if w.Iban != nil {
		fmt.Printf("IBAN:           %s\n", *w.Iban)
	}
	if w.SwiftBic != nil {
		fmt.Printf("SWIFT/BIC:      %s\n", *w.SwiftBic)
	}
	if w.Notes != nil {
		fmt.Printf("Notes:          %s\n", *w.Notes)
	}
	if w.RejectionReason != nil {
		fmt.Printf("Motif du rejet: %s\n", *w.RejectionReason)
	}
	fmt.Printf("Créée le:       %s\n", w.CreatedAt.Format("2006-01-02 15:04"))
	if w.ProcessedAt != nil {
		fmt.Printf("Traitée le:     %s\n", w.ProcessedAt.Format("2006-01-02 15:04"))
	}
}

func idArg(args []string, name string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing <%s> argument", name)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, args[0])
	}
	return id, nil
}

// idArgFlags parses "<id> [flags]" for commands that mix a positional id
// with flag arguments.
func idArgFlags(fs *flag.FlagSet, args []string, name string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing <%s> argument", name)
	}
	id, err := idArg(args, name)
	if err != nil {
		return 0, err
	}
	return id, fs.Parse(args[1:])
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}

func confirm(question string) bool {
	answer := prompt(question + " [o/N] ")
	answer = strings.ToLower(answer)
	return answer == "o" || answer == "oui" || answer == "y" || answer == "yes"
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
