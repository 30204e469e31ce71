package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hmcts/rse-idam-collection/internal/collection"
)

func main() {
	var output string

	var rootCmd = &cobra.Command{
		Use:   "collectiongen",
		Short: "Generate the RSE IDAM Simulator Postman collection",
		Long: `Generates a Postman v2.1.0 collection for exercising the RSE IDAM Simulator.

The collection covers:
  - Health and OpenID Connect discovery, token and userinfo endpoints
  - User management and testing-support account endpoints
  - PIN authentication and the deprecated OAuth2 endpoints
  - Session logout

Each request carries pm.test assertions for use with Postman or Newman.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(output)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVarP(&output, "output", "o", collection.DefaultOutputPath(), "Path of the generated collection file")

	rootCmd.AddCommand(createValidateCmd())
	rootCmd.AddCommand(createListCmd())

	if err := rootCmd.Execute(); err != nil {
		color.Red("❌ %v", err)
		os.Exit(1)
	}
}

func generate(output string) error {
	c := collection.IDAMSimulator()
	if err := collection.Write(c, output); err != nil {
		return err
	}

	location, err := filepath.Abs(output)
	if err != nil {
		location = output
	}

	color.Green("\n✅ Postman collection generated successfully!")
	fmt.Printf("Location: %s\n", location)
	fmt.Println("\nTo use this collection:")
	fmt.Printf("1. Import into Postman: %s\n", location)
	fmt.Printf("2. Run with Newman: newman run %s\n", location)
	fmt.Println("3. Set the baseUrl, clientId, clientSecret, and redirectUri variables")
	fmt.Println()
	color.Yellow("Note: Default port for IDAM Simulator is 5000")
	return nil
}

func createValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a generated collection file",
		Long: `Checks a collection file against the collection schema, compiles every
test script and verifies that each request URL is consistent.
Defaults to the generator's output path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fileArg(args)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read collection: %w", err)
			}

			if err := collection.Validate(data); err != nil {
				var verr *collection.ValidationError
				if errors.As(err, &verr) {
					for _, issue := range verr.Issues {
						color.Yellow("  - %s", issue)
					}
					return fmt.Errorf("%s has %d problem(s)", path, len(verr.Issues))
				}
				return err
			}

			color.Green("✅ %s is valid", path)
			return nil
		},
		SilenceUsage: true,
	}
}

func createListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file]",
		Short: "List the folders and requests of a collection file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(fileArg(args))
			if err != nil {
				return fmt.Errorf("failed to read collection: %w", err)
			}

			folders, err := collection.Summarize(data)
			if err != nil {
				return err
			}

			for _, f := range folders {
				color.Cyan("%s (%d)", f.Name, len(f.Items))
				for _, item := range f.Items {
					fmt.Printf("  %-7s %-32s %s\n", item.Method, item.Name, item.URL)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}
}

func fileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return collection.DefaultOutputPath()
}
