package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrijs2005/jiratime/internal/config"
)

// readToken reads the API token without echoing when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func readToken(reader *bufio.Reader) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func newLoginCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "login <jira-base-url>",
		Short: "Store Jira credentials",
		Long: `Prompt for the account email and API token and save them, together
with the site URL, to the config file. The token is read without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())

			fmt.Fprint(cmd.OutOrStdout(), "Email: ")
			email, err := reader.ReadString('\n')
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), "API token: ")
			token, err := readToken(reader)
			if err != nil {
				return err
			}

			app.cfg.JiraBaseURL = strings.TrimRight(args[0], "/")
			app.cfg.JiraEmail = strings.TrimSpace(email)
			app.cfg.JiraAPIToken = token

			path := config.DefaultConfigPath()
			if err := config.Save(app.cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved credentials to %s\n", path)
			return nil
		},
	}
}
