package cli

import (
	"github.com/spf13/cobra"

	"github.com/erikadonato/to-do-list/internal/domain"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the store schema",
		Long: `Create or update the store schema for the selected driver.

Every command already migrates before it runs; this one only migrates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rootOpts.config()
			store, err := rootOpts.open(cmd.Context(), cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "migrate", err)
			}
			defer store.Close()
			return writeEnvelope(cmd.OutOrStdout(), map[string]string{
				"driver": cfg.StoreDriver,
				"status": "migrated",
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print one activity",
		Example: `  activityctl search --id 1
  activityctl --driver postgres --dsn postgres://localhost/activities search --id 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd, func(svc *domain.Service) error {
				result, err := svc.SearchActivityByID(cmd.Context(), id)
				if err != nil {
					return serviceError(err)
				}
				return writeEnvelope(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "activity id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	var input domain.SaveActivityInput

	cmd := &cobra.Command{
		Use:     "save",
		Short:   "Create an activity",
		Example: `  activityctl save --title Run --subtitle "Morning jog" --pending`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd, func(svc *domain.Service) error {
				result, err := svc.SaveActivity(cmd.Context(), input)
				if err != nil {
					return serviceError(err)
				}
				return writeEnvelope(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().StringVar(&input.Title, "title", "", "activity title")
	cmd.Flags().StringVar(&input.Subtitle, "subtitle", "", "activity subtitle")
	cmd.Flags().BoolVar(&input.Pending, "pending", false, "mark the activity as pending")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("subtitle")
	return cmd
}

// NewUpdateCommand creates the update command. Only flags given on the command line are applied.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		id       int64
		title    string
		subtitle string
		pending  bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply a partial update to an activity",
		Example: `  activityctl update --id 1 --pending=false
  activityctl update --id 1 --subtitle ""`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := domain.UpdateActivityInput{ID: id}
			flags := cmd.Flags()
			if flags.Changed("title") {
				input.Title = &title
			}
			if flags.Changed("subtitle") {
				input.Subtitle = &subtitle
			}
			if flags.Changed("pending") {
				input.Pending = &pending
			}

			return rootOpts.withService(cmd, func(svc *domain.Service) error {
				result, err := svc.UpdateActivity(cmd.Context(), input)
				if err != nil {
					return serviceError(err)
				}
				return writeEnvelope(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "activity id")
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "new subtitle")
	cmd.Flags().BoolVar(&pending, "pending", false, "new pending state")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withService(cmd, func(svc *domain.Service) error {
				result, err := svc.DeleteActivity(cmd.Context(), id)
				if err != nil {
					return serviceError(err)
				}
				return writeEnvelope(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "activity id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
