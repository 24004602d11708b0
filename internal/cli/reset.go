package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/HarshitaThota/Flow-State/internal/db"
	"github.com/HarshitaThota/Flow-State/internal/logger"
	"github.com/HarshitaThota/Flow-State/internal/security"
	"github.com/HarshitaThota/Flow-State/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

type ResetPasswordOptions struct {
	DBPath string
	Email  string
	// Prompt reads the new password from Stdin without echo instead of
	// generating a temporary one.
	Prompt   bool
	Stdin    *os.File
	Out      io.Writer
	Log      *zap.Logger
	HashCost int
}

// RunResetPasswordCommand replaces a user's password. A generated temporary
// password must be changed on the next login; a prompted one does not.
func RunResetPasswordCommand(options ResetPasswordOptions) error {
	email := services.NormalizeAuthEmail(options.Email)
	if email == "" {
		return errors.New("a valid email is required")
	}
	out := options.Out
	if out == nil {
		out = os.Stdout
	}
	log := logger.OrNop(options.Log).Named("cli")
	cost := options.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	database, err := db.OpenSQLite(options.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	users := db.NewRepositories(database).Users
	user, err := users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, mustChange, err := nextPassword(options, out)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash), mustChange); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	log.Info("password reset", zap.Uint("user_id", user.ID), zap.String("email", logger.MaskEmail(email)), zap.Bool("must_change", mustChange))

	fmt.Fprintln(out, "Password reset successful")
	if mustChange {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "User must change password on next login.")
	}
	return nil
}

func nextPassword(options ResetPasswordOptions, out io.Writer) (string, bool, error) {
	if !options.Prompt {
		password, err := security.TemporaryPassword(temporaryPasswordLength)
		if err != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", err)
		}
		return password, true, nil
	}

	stdin := options.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	fmt.Fprint(out, "New password: ")
	raw, err := readPasswordNoEcho(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}
	password := string(raw)
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", false, fmt.Errorf("password rejected: %w", err)
	}
	return password, false, nil
}
