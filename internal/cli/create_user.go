package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shialibrary/hadith-server/internal/auth"
	"github.com/shialibrary/hadith-server/internal/config"
	"github.com/shialibrary/hadith-server/internal/database"
)

// CreateUserCommand creates an account from the terminal, bypassing the HTTP
// registration flow.
type CreateUserCommand struct {
	Email        string
	Password     string
	DatabasePath string
}

// NewCreateUserCommand creates a new CreateUserCommand.
func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{}
}

// ParseFlags parses command line flags.
func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email address for the new account (required)")
	fs.StringVar(&cmd.Password, "password", "", "Password for the new account (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -email <email> -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an account without going through the HTTP registration endpoint.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" || cmd.Password == "" {
		fs.Usage()
		return fmt.Errorf("-email and -password are required")
	}
	return nil
}

// Run executes the create-user command.
func (cmd *CreateUserCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	cfg := config.NewConfig()
	service := auth.NewService(db.DB, cfg.Auth)

	user, err := service.Register(cmd.Email, cmd.Password)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Printf("Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}
