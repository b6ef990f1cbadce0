package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/ngongtopro/love-story-chat/auth"
	"github.com/ngongtopro/love-story-chat/repositories"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", ".chatctl", "Path to the chatctl badger store")
	flag.Parse()

	// BypassLockGuard lets the inspector run next to a live chatctl
	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(nil))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	store := repositories.NewCredentialRepository(db, logs.GetLoggerFromLevel(slog.LevelError))
	pair, err := store.Read(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if pair == nil {
		fmt.Println("No credentials stored")
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Slot", "Value", "User", "Type", "Expires"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	table.Append(describe("access", pair.AccessToken))
	table.Append(describe("refresh", pair.RefreshToken))
	table.Render()
}

// describe masks the token and decodes its claims when it is a JWT.
func describe(slot, token string) []string {
	row := []string{slot, mask(token), "-", "-", "-"}
	claims, err := auth.ParseClaims(token)
	if err != nil {
		return row
	}
	row[2] = fmt.Sprintf("%s (%d)", claims.Username, claims.UserID)
	row[3] = claims.TokenType
	if claims.ExpiresAt != nil {
		expires := claims.ExpiresAt.Time
		row[4] = expires.Format(time.RFC822)
		if expires.Before(time.Now()) {
			row[4] += " (expired)"
		}
	}
	return row
}

func mask(token string) string {
	switch {
	case token == "":
		return "<empty>"
	case len(token) <= 12:
		return "****"
	default:
		return token[:6] + "..." + token[len(token)-4:]
	}
}
