package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nfrund/askboard/internal/app"
	"github.com/nfrund/askboard/internal/config"
	"github.com/nfrund/askboard/internal/domain"
	"github.com/nfrund/askboard/internal/handlers"
	"github.com/nfrund/askboard/internal/profile"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// profileService is the part of profile.Service the CLI drives.
type profileService interface {
	Get(ctx context.Context, session *domain.Session) (*domain.Profile, error)
	Update(ctx context.Context, session *domain.Session, patch domain.ProfilePatch) profile.Result
}

// openService wires the profile service from the environment. The returned
// func releases everything the service holds.
var openService = func(ctx context.Context) (profileService, func(), error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	injector := app.New(ctx, cfg, afero.NewOsFs())
	svc, err := do.Invoke[*profile.Service](injector)
	if err != nil {
		injector.Shutdown()
		return nil, nil, err
	}
	return svc, func() { injector.Shutdown() }, nil
}

func newProfileCmd() *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update a user's profile",
		Long: `The profile command runs the same profile operations as the web application,
acting for the user named by --user.

Examples:
  askboard-cli profile show --user u1
  askboard-cli profile update --user u1 --display-name "Ada"
  askboard-cli profile update --user u1 --bio ""      # clears the bio

Flags that are not given are left unchanged.`,
	}
	profileCmd.AddCommand(newProfileShowCmd(), newProfileUpdateCmd())
	return profileCmd
}

func newProfileShowCmd() *cobra.Command {
	var (
		userID       string
		outputFormat string
	)
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored profile for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, release, err := openService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open profile service: %w", err)
			}
			defer release()

			p, err := svc.Get(cmd.Context(), operatorSession(userID))
			if err != nil {
				return fmt.Errorf("failed to load profile for %q: %w", userID, err)
			}
			return writeProfile(cmd.OutOrStdout(), p, outputFormat)
		},
	}
	showCmd.Flags().StringVar(&userID, "user", "", "User ID whose profile to show")
	showCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")
	_ = showCmd.MarkFlagRequired("user")
	return showCmd
}

func newProfileUpdateCmd() *cobra.Command {
	var (
		userID       string
		displayName  string
		bio          string
		outputFormat string
	)
	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update a user's display name and/or bio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProfilePatch
			if cmd.Flags().Changed("display-name") {
				patch.DisplayName = &displayName
			}
			if cmd.Flags().Changed("bio") {
				patch.Bio = &bio
			}

			svc, release, err := openService(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to open profile service: %w", err)
			}
			defer release()

			result := svc.Update(cmd.Context(), operatorSession(userID), patch)
			if !result.OK() {
				return fmt.Errorf("update failed (%s): %s", result.Kind, result.Message)
			}
			return writeProfile(cmd.OutOrStdout(), result.Profile, outputFormat)
		},
	}
	updateCmd.Flags().StringVar(&userID, "user", "", "User ID whose profile to update")
	updateCmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	updateCmd.Flags().StringVar(&bio, "bio", "", "New bio")
	updateCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")
	_ = updateCmd.MarkFlagRequired("user")
	return updateCmd
}

// operatorSession stands in for a signed-in user; the CLI is trusted to act
// for anyone.
func operatorSession(userID string) *domain.Session {
	return &domain.Session{UserID: userID, Email: "operator"}
}

func writeProfile(w io.Writer, p *domain.Profile, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(handlers.NewProfileResponse(p))
	case "table":
		if p == nil {
			_, err := fmt.Fprintln(w, "(no profile)")
			return err
		}
		_, err := fmt.Fprintf(w, "ID:           %s\nDisplay name: %s\nBio:          %s\nUpdated at:   %s\n",
			p.ID, orNone(p.DisplayName), orNone(p.Bio), updatedAt(p))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return fmt.Sprintf("%q", *s)
}

func updatedAt(p *domain.Profile) string {
	if p.UpdatedAt == nil {
		return "(never)"
	}
	return p.UpdatedAt.UTC().Format("2006-01-02 15:04:05Z")
}
