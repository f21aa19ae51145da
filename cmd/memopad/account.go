// ABOUTME: Account subcommands for signing up, logging in and out.
// ABOUTME: Email/password goes through Firebase; SSO uses the Charm account.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/harper/memopad/internal/auth"
	"github.com/harper/memopad/internal/ui"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your memopad account",
	Long: `Sign up, log in and log out.

Email and password accounts need firebase_api_key and firebase_project_id in
the config. SSO login uses the Charm account tied to your SSH key.

Commands:
  signup  - Create an email/password account
  login   - Log in with email and password
  sso     - Log in with your Charm account
  logout  - Forget the current session
  status  - Show who is logged in

Examples:
  memopad account signup --email me@example.com --name Harper
  memopad account login --email me@example.com
  memopad account sso`,
}

var accountSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")

		sess, err := identity.SignUp(cmd.Context(), email, password, name)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Signed up as %s", sess.Email)))
		return nil
	},
}

var accountLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password, err := credentials(cmd)
		if err != nil {
			return err
		}

		sess, err := identity.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Logged in as %s", sess.Email)))
		return nil
	},
}

var accountSSOCmd = &cobra.Command{
	Use:   "sso",
	Short: "Log in with your Charm account",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := identity.LoginWithSSO(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Logged in as %s", valueOrNone(sess.Name))))
		return nil
	},
}

var accountLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := identity.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(ui.Success("Logged out"))
		return nil
	},
}

var accountStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show login status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := identity.Current(cmd.Context())
		if errors.Is(err, auth.ErrNotLoggedIn) {
			fmt.Printf("Status:    %s\n", color.YellowString("not logged in"))
			fmt.Println("\nRun 'memopad account login' or 'memopad account sso'.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("Status:    %s\n", color.GreenString("logged in"))
		fmt.Printf("Method:    %s\n", sess.Method)
		fmt.Printf("User ID:   %s\n", sess.UserID)
		fmt.Printf("Email:     %s\n", valueOrNone(sess.Email))
		fmt.Printf("Name:      %s\n", valueOrNone(sess.Name))
		fmt.Printf("Since:     %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

// credentials reads --email and --password, prompting for whichever is missing.
func credentials(cmd *cobra.Command) (string, string, error) {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if email == "" {
		fmt.Print("Email: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", "", fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}

	if password == "" {
		fmt.Print("Password: ")
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("read password: %w", err)
		}
		password = string(b)
	}
	return email, password, nil
}

func valueOrNone(s string) string {
	if s == "" {
		return color.New(color.Faint).Sprint("(none)")
	}
	return s
}

func init() {
	for _, c := range []*cobra.Command{accountSignupCmd, accountLoginCmd} {
		c.Flags().String("email", "", "account email")
		c.Flags().String("password", "", "account password (prompted when omitted)")
	}
	accountSignupCmd.Flags().String("name", "", "display name")

	accountCmd.AddCommand(accountSignupCmd)
	accountCmd.AddCommand(accountLoginCmd)
	accountCmd.AddCommand(accountSSOCmd)
	accountCmd.AddCommand(accountLogoutCmd)
	accountCmd.AddCommand(accountStatusCmd)
	rootCmd.AddCommand(accountCmd)
}
