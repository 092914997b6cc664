// Command cli is a small operator console against the banking services. It
// talks to the database directly through the same service layer the HTTP
// API uses, so behavior (PIN checks, balance guards) is identical.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/coreledger/banking/infra/initializer"
	"github.com/coreledger/banking/pkg/config"
	"github.com/coreledger/banking/pkg/dto"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	cmd := os.Args[1]
	args := os.Args[2:]

	cfg, err := config.Load(".env")
	if err != nil {
		fail("Failed to load configuration: %v", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fail("Failed to initialize: %v", err)
	}
	ctx := context.Background()

	switch cmd {
	case "create":
		requireArgs(args, 2, "create <account_number> <name>")
		pin := readPin("Choose a PIN: ")
		read, err := deps.AccountService.Create(ctx, dto.AccountCreate{
			Number: args[0],
			Name:   args[1],
			Pin:    pin,
		})
		if err != nil {
			fail("Error creating account: %v", err)
		}
		color.Green("Account %s created. Balance: %.2f %s", read.Number, read.Balance, read.Currency)

	case "balance":
		requireArgs(args, 1, "balance <account_number>")
		pin := readPin("PIN: ")
		read, err := deps.AccountService.GetBalance(ctx, args[0], pin)
		if err != nil {
			fail("Error fetching balance: %v", err)
		}
		color.Cyan("Balance for %s: %.2f %s", read.Number, read.Balance, read.Currency)

	case "deposit":
		requireArgs(args, 2, "deposit <account_number> <amount>")
		amount := parseAmount(args[1])
		pin := readPin("PIN: ")
		read, err := deps.TransactionService.Deposit(ctx, args[0], pin, amount)
		if err != nil {
			fail("Error depositing: %v", err)
		}
		color.Green("Deposited %.2f. New balance: %.2f %s", amount, read.Balance, read.Currency)

	case "withdraw":
		requireArgs(args, 2, "withdraw <account_number> <amount>")
		amount := parseAmount(args[1])
		pin := readPin("PIN: ")
		read, err := deps.TransactionService.Withdraw(ctx, args[0], pin, amount)
		if err != nil {
			fail("Error withdrawing: %v", err)
		}
		color.Green("Withdrew %.2f. New balance: %.2f %s", amount, read.Balance, read.Currency)

	case "transfer":
		requireArgs(args, 3, "transfer <from_account> <to_account> <amount>")
		amount := parseAmount(args[2])
		pin := readPin("PIN for " + args[0] + ": ")
		if err := deps.TransactionService.Transfer(ctx, args[0], pin, args[1], amount); err != nil {
			fail("Error transferring: %v", err)
		}
		color.Green("Transferred %.2f from %s to %s", amount, args[0], args[1])

	case "history":
		requireArgs(args, 1, "history <account_number>")
		pin := readPin("PIN: ")
		entries, err := deps.TransactionService.History(ctx, args[0], pin)
		if err != nil {
			fail("Error fetching history: %v", err)
		}
		for _, e := range entries {
			line := fmt.Sprintf("%s  %-14s  %10.2f", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Type, e.Amount)
			if e.ToAccount != "" {
				line += "  -> " + e.ToAccount
			}
			fmt.Println(line)
		}

	case "apply":
		requireArgs(args, 4, "apply <account_number> <amount> <interest_rate> <tenure_months>")
		amount := parseAmount(args[1])
		rate := parseAmount(args[2])
		tenure, err := strconv.Atoi(args[3])
		if err != nil {
			fail("Invalid tenure: %v", err)
		}
		pin := readPin("PIN: ")
		loanID, err := deps.LoanService.Apply(ctx, dto.LoanApply{
			AccountNumber: args[0],
			Pin:           pin,
			LoanAmount:    amount,
			InterestRate:  rate,
			TenureMonths:  tenure,
		})
		if err != nil {
			fail("Error applying for loan: %v", err)
		}
		color.Green("Loan approved: %s", loanID)

	case "repay":
		requireArgs(args, 3, "repay <account_number> <loan_id> <amount>")
		loanID, err := uuid.Parse(args[1])
		if err != nil {
			fail("Invalid loan ID: %v", err)
		}
		amount := parseAmount(args[2])
		pin := readPin("PIN: ")
		remaining, err := deps.LoanService.Repay(ctx, args[0], loanID, pin, amount)
		if err != nil {
			fail("Error repaying loan: %v", err)
		}
		color.Green("Repaid %.2f. Remaining due: %.2f", amount, remaining)

	case "loans":
		requireArgs(args, 1, "loans <account_number>")
		pin := readPin("PIN: ")
		loans, err := deps.LoanService.List(ctx, args[0], pin)
		if err != nil {
			fail("Error listing loans: %v", err)
		}
		for _, l := range loans {
			fmt.Printf("%s  %-6s  amount=%.2f  rate=%.2f%%  due=%.2f\n",
				l.ID, l.Status, l.LoanAmount, l.InterestRate, l.RemainingDue)
		}

	case "close":
		requireArgs(args, 1, "close <account_number>")
		pin := readPin("PIN: ")
		if err := deps.AccountService.Close(ctx, args[0], pin); err != nil {
			fail("Error closing account: %v", err)
		}
		color.Yellow("Account %s closed", args[0])

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  create <account_number> <name>")
	fmt.Println("  balance <account_number>")
	fmt.Println("  deposit <account_number> <amount>")
	fmt.Println("  withdraw <account_number> <amount>")
	fmt.Println("  transfer <from_account> <to_account> <amount>")
	fmt.Println("  history <account_number>")
	fmt.Println("  apply <account_number> <amount> <interest_rate> <tenure_months>")
	fmt.Println("  repay <account_number> <loan_id> <amount>")
	fmt.Println("  loans <account_number>")
	fmt.Println("  close <account_number>")
}

func requireArgs(args []string, n int, usageLine string) {
	if len(args) < n {
		fail("Usage: cli %s", usageLine)
	}
}

func parseAmount(s string) float64 {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fail("Invalid amount %q: %v", s, err)
	}
	return amount
}

// readPin reads the PIN without echoing when stdin is a terminal, falling
// back to a plain line read when it is piped.
func readPin(prompt string) string {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pin, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			fail("Failed to read PIN: %v", err)
		}
		return string(pin)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		fail("Failed to read PIN: %v", err)
	}
	return strings.TrimSpace(line)
}

func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
