package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ndhoang/newsdesk/internal/api"
	"github.com/ndhoang/newsdesk/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and persist the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}

		username, err := promptLine("Username: ")
		if err != nil {
			return err
		}
		password, err := promptSecret("Password: ")
		if err != nil {
			return err
		}

		data, err := client.Login(cmd.Context(), api.LoginRequest{Username: username, Password: password})
		if err != nil {
			return err
		}
		if data.Token == "" {
			return fmt.Errorf("login: no token in response")
		}
		if err := sessions.Set(session.Credential{Token: data.Token}); err != nil {
			return err
		}

		if cred := sessions.Credential(); cred != nil && cred.User != nil && cred.User.Username != "" {
			fmt.Printf("Signed in as %s.\n", cred.User.Username)
		} else {
			fmt.Println("Signed in.")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the persisted session",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, _, err := setup()
		if err != nil {
			return err
		}
		if sessions.Token() == "" {
			fmt.Println("Not signed in.")
			return nil
		}
		if err := sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}

		var req api.RegisterRequest
		if req.FirstName, err = promptLine("First name: "); err != nil {
			return err
		}
		if req.LastName, err = promptLine("Last name: "); err != nil {
			return err
		}
		if req.Username, err = promptLine("Username: "); err != nil {
			return err
		}
		if req.Email, err = promptLine("Email: "); err != nil {
			return err
		}
		if req.Password, err = promptSecret("Password: "); err != nil {
			return err
		}

		data, err := client.Register(cmd.Context(), req)
		if err != nil {
			return err
		}
		if data.Token == "" {
			return fmt.Errorf("register: no token in response")
		}
		cred := session.Credential{Token: data.Token}
		if data.Username != "" {
			cred.User = &session.Identity{ID: data.ID, Username: data.Username, Email: data.Email, Role: data.Role}
		}
		if err := sessions.Set(cred); err != nil {
			return err
		}
		fmt.Printf("Account created. Signed in as %s.\n", req.Username)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, sessions, client, err := setup()
		if err != nil {
			return err
		}
		if err := requireAuth(cmd.Context(), sessions, client); err != nil {
			return err
		}
		cred := sessions.Credential()
		if cred.User == nil {
			fmt.Println("Signed in (no cached identity).")
			return nil
		}
		fmt.Printf("Username: %s\n", cred.User.Username)
		if cred.User.Email != "" {
			fmt.Printf("Email:    %s\n", cred.User.Email)
		}
		if cred.User.Role != "" {
			fmt.Printf("Role:     %s\n", cred.User.Role)
		}
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Request and confirm a password reset",
	Long: `Request a reset code for an email address, then redeem it for a new
password. Run once to request the code, answer the prompts to confirm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, client, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}

		haveCode, err := promptLine("Already have a code? [y/N]: ")
		if err != nil {
			return err
		}
		if !strings.EqualFold(haveCode, "y") {
			msg, err := client.RequestPasswordReset(ctx, email)
			if err != nil {
				return err
			}
			if msg == "" {
				msg = "If an account exists, a code was sent"
			}
			fmt.Println(msg)
		}

		code, err := promptLine("Code: ")
		if err != nil {
			return err
		}
		newPassword, err := promptSecret("New password: ")
		if err != nil {
			return err
		}

		msg, err := client.ConfirmPasswordReset(ctx, email, code, newPassword)
		if err != nil {
			return err
		}
		if msg == "" {
			msg = "Password reset successfully"
		}
		fmt.Println(msg)
		return nil
	},
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
