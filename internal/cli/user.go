package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"feedbackanalysis/internal/auth"
	"feedbackanalysis/internal/db"
	"feedbackanalysis/internal/models"
	"feedbackanalysis/internal/validation"
)

func init() {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard login users",
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a user, or reset the password of an existing one",
		Long:  "Create a login user. The password is taken from --password or read from stdin and stored as an argon2id hash.",
		Args:  cobra.ExactArgs(1),
		Run:   runUserAdd,
	}
	addCmd.Flags().StringP("password", "p", "", "Password (default: read from stdin)")
	addCmd.Flags().Bool("reset", false, "Update the password if the user already exists")

	userCmd.AddCommand(addCmd)
	RootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) {
	name := args[0]
	password, _ := cmd.Flags().GetString("password")
	reset, _ := cmd.Flags().GetBool("reset")

	if !validation.ValidateUserName(name) {
		exitErr("user add", fmt.Errorf("invalid name %q: use letters, digits, dots, hyphens or underscores", name))
	}

	if password == "" {
		p, err := readPassword(cmd.InOrStdin())
		if err != nil {
			exitErr("read password", err)
		}
		password = p
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		exitErr("hash password", err)
	}

	ctx := cmd.Context()
	database, err := openDB(ctx, loadConfig())
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	err = database.CreateUser(ctx, &models.User{Name: name, PasswordHash: hash})
	switch {
	case err == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "created user %s\n", name)
	case errors.Is(err, db.ErrDuplicateUser) && reset:
		if err := database.UpdateUserPassword(ctx, name, hash); err != nil {
			exitErr("reset password", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated password for %s\n", name)
	default:
		exitErr("create user", err)
	}
}

// readPassword reads the first line of r, prompting when r is a terminal.
func readPassword(r io.Reader) (string, error) {
	if f, ok := r.(*os.File); ok {
		if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			fmt.Fprint(os.Stderr, "Password: ")
		}
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", auth.ErrEmptyPassword
	}
	return line, nil
}
