package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stobind/internal/config"
	"github.com/zjrosen/stobind/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage keybind profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an empty profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		name := args[0]
		if _, err := svc.Repo.FindByName(name); err == nil {
			return &profile.AlreadyExistsError{Name: name}
		} else {
			var notFound *profile.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
		}

		prof := profile.New(name)
		if err := svc.Repo.Save(prof); err != nil {
			return err
		}
		cmd.Printf("Created profile %q (%s)\n", prof.Name, prof.GUID)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		profiles, err := svc.Repo.List()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			cmd.Println("No profiles. Create one with 'stobind profile create <name>'.")
			return nil
		}
		for _, p := range profiles {
			marker := " "
			if p.Name == cfg.ActiveProfile {
				marker = "*"
			}
			cmd.Printf("%s %-20s space:%-3d ground:%-3d aliases:%d\n",
				marker, p.Name,
				len(p.Bindings(profile.EnvSpace)),
				len(p.Bindings(profile.EnvGround)),
				len(p.Aliases))
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		name := args[0]
		if _, err := svc.Repo.FindByName(name); err != nil {
			return err
		}
		if err := config.SaveActiveProfile(configFilePath(), name); err != nil {
			return err
		}
		cmd.Printf("Active profile is now %q\n", name)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile and all its bindings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		if err := svc.Repo.Delete(args[0]); err != nil {
			return err
		}
		cmd.Printf("Deleted profile %q\n", args[0])
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileDeleteCmd)

	rootCmd.AddCommand(profileCmd)
}
