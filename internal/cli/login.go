package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	username string
	password string
)

const (
	envUsername = "ATCODER_USERNAME"
	envPassword = "ATCODER_PASSWORD"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session.",
	Long: `Log in to AtCoder and store the session cookies in the session file.

Credentials come from --username / --password, or from the ATCODER_USERNAME
and ATCODER_PASSWORD environment variables.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, pass := credentials()
		if user == "" || pass == "" {
			return errors.New("username and password are required")
		}
		return runWithAtCoder(cmd, func(a app) error {
			if err := a.atcoder.Login(a.ctx, user, pass); err != nil {
				return err
			}
			if outputFormat == formatJSON {
				return writeJSON(a.out, map[string]any{"loggedIn": true, "username": user})
			}
			_, err := fmt.Fprintf(a.out, "Logged in as %s\n", user)
			return err
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the stored session is logged in.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithAtCoder(cmd, func(a app) error {
			loggedIn, err := a.atcoder.IsLoggedIn(a.ctx)
			if err != nil {
				return err
			}
			if outputFormat == formatJSON {
				return writeJSON(a.out, map[string]bool{"loggedIn": loggedIn})
			}
			state := "not logged in"
			if loggedIn {
				state = "logged in"
			}
			_, err = fmt.Fprintln(a.out, state)
			return err
		})
	},
}

func credentials() (string, string) {
	user, pass := username, password
	if user == "" {
		user = os.Getenv(envUsername)
	}
	if pass == "" {
		pass = os.Getenv(envPassword)
	}
	return user, pass
}

func init() {
	loginCmd.Flags().StringVarP(&username, "username", "u", "", "AtCoder user name")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "AtCoder password")
}
