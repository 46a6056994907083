// Package main provides a CLI tool for minting admin tokens for the sponsor
// write routes. Tokens are signed with ADMIN_JWT_SECRET (or --secret).
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"weddingapi/internal/admintoken"
)

const defaultTokenTTL = 24 * time.Hour

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	Subject   string            `json:"subject"`
	ExpiresIn string            `json:"expires_in"`
	Usage     map[string]string `json:"usage"`
}

type adminOptions struct {
	secret     string
	subject    string
	ttl        time.Duration
	jsonOutput bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "tokengen",
		Short:        "Generate admin tokens for the weddingapi write routes",
		SilenceUsage: true,
	}
	root.AddCommand(newAdminCmd())
	return root
}

func newAdminCmd() *cobra.Command {
	opts := adminOptions{}
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Mint an admin bearer token",
		Example: `  # Token for the dashboard, valid one day
  tokengen admin --subject dashboard

  # Machine-readable output
  tokengen admin --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.secret == "" {
				opts.secret = os.Getenv("ADMIN_JWT_SECRET")
			}
			return runAdmin(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.secret, "secret", "", "HS256 secret (default: $ADMIN_JWT_SECRET)")
	cmd.Flags().StringVar(&opts.subject, "subject", "admin", "Token subject, logged on every write")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", defaultTokenTTL, "Token time-to-live")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runAdmin(w io.Writer, opts adminOptions) error {
	if opts.secret == "" {
		return errors.New("no secret: set ADMIN_JWT_SECRET or pass --secret")
	}
	token, err := admintoken.New(opts.secret).Issue(opts.subject, opts.ttl)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	curl := `curl -X POST -H "Authorization: Bearer ` + token + `" -H "Content-Type: application/json" ` +
		`-d '{"MalePrincipalSponsor":"..."}' http://localhost:8080/api/principal-sponsor`

	if opts.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tokenOutput{
			Token:     token,
			Type:      "admin_token",
			Subject:   opts.subject,
			ExpiresIn: opts.ttl.String(),
			Usage:     map[string]string{"curl": curl},
		})
	}

	fmt.Fprintln(w, "Admin Token (JWT)")
	fmt.Fprintln(w, "=================")
	fmt.Fprintf(w, "Subject:    %s\n", opts.subject)
	fmt.Fprintf(w, "Expires in: %s\n", opts.ttl)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Token:")
	fmt.Fprintln(w, token)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  "+curl)
	return nil
}

func main() {
	_ = godotenv.Load()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
