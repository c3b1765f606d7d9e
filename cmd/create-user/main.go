package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5"
	"github.com/marinai/marinai-backend/internal/config"
	"github.com/marinai/marinai-backend/internal/database"
	"github.com/marinai/marinai-backend/internal/logger"
	"github.com/marinai/marinai-backend/internal/model"
	"github.com/marinai/marinai-backend/internal/repository"
	"github.com/marinai/marinai-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	var disable, enable string
	flag.StringVar(&disable, "disable", "", "Disable the account with this email instead of creating one")
	flag.StringVar(&enable, "enable", "", "Re-enable the account with this email")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log, _ := logger.Setup(cfg.LogLevel, cfg.LogFormat, "")

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	if disable != "" || enable != "" {
		email, disabled := enable, false
		if disable != "" {
			email, disabled = disable, true
		}
		if err := setDisabled(ctx, userRepo, email, disabled); err != nil {
			log.Fatal().Err(err).Str("email", email).Msg("Failed to update account")
		}
		fmt.Printf("Account %s disabled=%t\n", email, disabled)
		return
	}

	authService := service.NewAuthService(cfg, userRepo, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New User ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		fmt.Println("Error: A valid email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	user, err := authService.SignUp(ctx, model.SignUpRequest{
		Username:  email,
		IndivName: name,
		Password:  password,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			fmt.Printf("Error: %s is already registered\n", email)
			return
		}
		log.Fatal().Err(err).Msg("Failed to create user")
	}

	fmt.Printf("\nSuccess! User '%s' (%s) created with ID: %d\n", user.IndivName, user.Username, user.ID)
}

func setDisabled(ctx context.Context, users *repository.UserRepository, email string, disabled bool) error {
	u, err := users.GetByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("no user with email %s", email)
		}
		return err
	}
	return users.SetDisabled(ctx, u.ID, disabled)
}
