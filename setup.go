package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/muhammadolammi/resumestatus/internal/store"
	"github.com/spf13/cobra"
)

var setupEnvFile string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive wizard that writes the .env file",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup(cmd.InOrStdin(), cmd.OutOrStdout(), setupEnvFile)
	},
}

func init() {
	setupCmd.Flags().StringVar(&setupEnvFile, "env-file", ".env", "file to write")
}

var errSetupCancelled = errors.New("setup cancelled")

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p prompter) ask(question, fallback string) (string, error) {
	if fallback != "" {
		fmt.Fprintf(p.out, "%s (default: %s): ", question, fallback)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback, nil
	}
	return line, nil
}

func runSetup(in io.Reader, out io.Writer, envPath string) error {
	p := prompter{in: bufio.NewReader(in), out: out}

	color.New(color.FgCyan).Fprintln(out, "Resume Status Setup Wizard")
	fmt.Fprintln(out, "This wizard writes the configuration for the resume status service.")

	if _, err := os.Stat(envPath); err == nil {
		answer, err := p.ask(fmt.Sprintf("%s already exists. Overwrite it? (y/N)", envPath), "n")
		if err != nil {
			return err
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			fmt.Fprintln(out, "Setup cancelled.")
			return errSetupCancelled
		}
	}

	env := map[string]string{}

	backend, err := p.ask("Store backend (sheets, xlsx, postgres, memory)", backendSheets)
	if err != nil {
		return err
	}
	env["STORE_BACKEND"] = backend

	switch backend {
	case backendSheets:
		fields := []struct{ key, question string }{
			{"GOOGLE_SHEET_ID", "Google Sheet ID"},
			{"GOOGLE_SERVICE_ACCOUNT_EMAIL", "Service Account Email"},
			{"GOOGLE_PRIVATE_KEY", `Private Key (one line, newlines written as \n)`},
		}
		for _, f := range fields {
			v, err := p.ask(f.question, "")
			if err != nil {
				return err
			}
			if v == "" {
				return fmt.Errorf("%s is required", f.key)
			}
			env[f.key] = v
		}
	case backendXLSX:
		path, err := p.ask("Workbook path", "resumes.xlsx")
		if err != nil {
			return err
		}
		env["XLSX_PATH"] = path
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			if err := store.WriteWorkbook(path, store.DefaultTab, store.SampleRecords()); err != nil {
				return fmt.Errorf("creating starter workbook: %w", err)
			}
			fmt.Fprintf(out, "Created starter workbook %s with sample records\n", path)
		}
	case backendPostgres:
		dbURL, err := p.ask("Postgres URL", "")
		if err != nil {
			return err
		}
		if dbURL == "" {
			return fmt.Errorf("DB_URL is required")
		}
		env["DB_URL"] = dbURL
	case backendMemory:
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}

	port, err := p.ask("Port", "3000")
	if err != nil {
		return err
	}
	env["PORT"] = port

	if err := godotenv.Write(env, envPath); err != nil {
		return fmt.Errorf("writing %s: %w", envPath, err)
	}

	color.New(color.FgGreen).Fprintln(out, "\nConfiguration saved successfully!")
	fmt.Fprintln(out, "Next steps:")
	if backend == backendSheets {
		fmt.Fprintf(out, "- Make sure your Google Sheet has a tab named %q\n", store.DefaultTab)
		fmt.Fprintln(out, "- Give the service account Editor access to the sheet")
		fmt.Fprintln(out, "- Run `resumestatus check-sheet --write-test` to verify access")
	}
	fmt.Fprintf(out, "- Run `resumestatus serve` and visit http://localhost:%s\n", port)
	return nil
}
