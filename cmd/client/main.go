// Command client is a small CLI for the note-keeper server. Authentication
// commands print the session token; note commands expect it via the -token
// flag or the NOTE_KEEPER_TOKEN environment variable.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `Usage: client <command> [flags]

Commands:
  send-otp   -email <email> -name <name>
  signup     -email <email> -otp <code> -password <password>
  login      -email <email> -password <password>
  google     -credential <id-token>
  me         -token <token>
  create     -token <token> -title <title> -content <content>
  list       -token <token>
  get        -token <token> -id <note-id>
  update     -token <token> -id <note-id> -title <title> -content <content>
  delete     -token <token> -id <note-id>
`

func main() {
	printBuildInfo()

	log := logger.NewLogger("note-keeper-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err = runCommand(context.Background(), serverAdapter, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func runCommand(ctx context.Context, a adapter.ServerAdapter, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	email := fs.String("email", "", "account email")
	name := fs.String("name", "", "display name")
	otp := fs.String("otp", "", "one-time code from the signup email")
	password := fs.String("password", "", "account password")
	credential := fs.String("credential", "", "Google ID token")
	token := fs.String("token", os.Getenv("NOTE_KEEPER_TOKEN"), "session token")
	id := fs.String("id", "", "note id")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.SetToken(*token)

	switch command {
	case "send-otp":
		mr, err := a.SendSignupOTP(ctx, *email, *name)
		if err != nil {
			return err
		}
		return printJSON(mr)
	case "signup":
		ar, err := a.VerifyOTPAndSignup(ctx, *email, *otp, *password)
		if err != nil {
			return err
		}
		return printJSON(ar)
	case "login":
		ar, err := a.Login(ctx, *email, *password)
		if err != nil {
			return err
		}
		return printJSON(ar)
	case "google":
		ar, err := a.GoogleLogin(ctx, *credential)
		if err != nil {
			return err
		}
		return printJSON(ar)
	case "me":
		user, err := a.Me(ctx)
		if err != nil {
			return err
		}
		return printJSON(user)
	case "create":
		note, err := a.CreateNote(ctx, *title, *content)
		if err != nil {
			return err
		}
		return printJSON(note)
	case "list":
		notes, err := a.GetNotes(ctx)
		if err != nil {
			return err
		}
		return printJSON(notes)
	case "get":
		note, err := a.GetNote(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(note)
	case "update":
		note, err := a.UpdateNote(ctx, *id, *title, *content)
		if err != nil {
			return err
		}
		return printJSON(note)
	case "delete":
		if err := a.DeleteNote(ctx, *id); err != nil {
			return err
		}
		fmt.Println("note deleted")
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
