package main

import (
	"fmt"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/auth"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/config"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/console"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/repository"

	"github.com/spf13/cobra"
)

var (
	tokenMode     string
	tokenEmail    string
	tokenPassword string
	tokenName     string
	tokenVerify   bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Obtain a bearer token for manual API testing",
	Long: `Obtains a short-lived bearer token, either by signing in against the
running API's password-grant endpoint (--mode signin) or by minting one
directly against the database (--mode mint).

Minting creates the principal when it does not exist yet; an already
registered email is success and the existing principal is reused.

The token is printed to stdout and never written to disk.`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenMode, "mode", "signin", "signin or mint")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "principal email")
	tokenCmd.Flags().StringVar(&tokenPassword, "password", "", "principal password")
	tokenCmd.Flags().StringVar(&tokenName, "name", "Test User", "display name used when minting creates the principal")
	tokenCmd.Flags().BoolVar(&tokenVerify, "verify", false, "make one authenticated API call with the fresh token")
	_ = tokenCmd.MarkFlagRequired("email")
	_ = tokenCmd.MarkFlagRequired("password")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	var result *auth.TokenResult
	switch tokenMode {
	case "signin":
		issuer := auth.NewIssuer(nil, cfg.APIBaseURL, cfg.JWTExpiry)
		r, err := issuer.SignIn(ctx, tokenEmail, tokenPassword)
		if err != nil {
			return err
		}
		result = r
	case "mint":
		db, err := openDB(cfg)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		issuer := auth.NewIssuer(repository.NewUserRepository(db), cfg.APIBaseURL, cfg.JWTExpiry)
		r, err := issuer.Mint(ctx, tokenEmail, tokenPassword, tokenName)
		if err != nil {
			return err
		}
		result = r
	default:
		return fmt.Errorf("unknown mode %q, use signin or mint", tokenMode)
	}

	if result.Existing {
		fmt.Println(console.Format(console.LevelInfo, "principal already registered, reusing its identifier"))
	}
	fmt.Println(console.Formatf(console.LevelSuccess, "token issued for user %s, expires in %s", result.UserID, result.ExpiresIn))
	fmt.Println(result.Token)

	if tokenVerify {
		issuer := auth.NewIssuer(nil, cfg.APIBaseURL, cfg.JWTExpiry)
		verdict, err := issuer.Verify(ctx, result.Token)
		if err != nil {
			return fmt.Errorf("token verification failed: %w", err)
		}
		level := console.LevelSuccess
		if verdict.Status == auth.VerifyWarn {
			level = console.LevelWarning
		}
		fmt.Println(console.Format(level, verdict.Detail))
	}
	return nil
}
