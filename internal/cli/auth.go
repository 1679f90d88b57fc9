package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vietddude/godad/internal/core/domain"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and cache the session locally",
	Args:  cobra.ExactArgs(1),
	Run:   runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and clear cached state",
	Run:   runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Run:   runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, args []string) {
	app, _ := setup()
	defer func() { _ = app.Close() }()

	pw := os.Getenv("GODAD_PASSWORD")
	if pw == "" {
		fmt.Print("Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			slog.Error("Failed to read password", "error", err)
			os.Exit(1)
		}
		pw = strings.TrimSpace(line)
	}

	user, err := app.Auth.Login(context.Background(), domain.LoginRequest{
		Username: args[0],
		Password: pw,
	})
	if err != nil {
		slog.Error("Login failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s (%s)\n", user.Username, user.Nickname)
}

func runLogout(cmd *cobra.Command, args []string) {
	app, _ := setup()
	defer func() { _ = app.Close() }()

	if err := app.Auth.Logout(context.Background()); err != nil {
		// Local state is already cleared; the backend call is best effort.
		slog.Warn("Logout call failed", "error", err)
	}
	fmt.Println("Logged out")
}

func runWhoami(cmd *cobra.Command, args []string) {
	app, _ := setup()
	defer func() { _ = app.Close() }()

	user, err := app.Auth.Init(context.Background())
	if err != nil {
		fmt.Println("Not logged in")
		os.Exit(1)
	}
	fmt.Printf("%s (%s) role=%s\n", user.Username, user.Nickname, user.Role)
}
