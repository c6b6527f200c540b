package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"brandkit/internal/adapter/repo"
	"brandkit/internal/bootstrap"
	"brandkit/internal/generation"
	"brandkit/internal/infra"
	"brandkit/internal/infra/credentials"
)

type cli struct {
	logLevel string
	services *bootstrap.Services
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "brandctl",
		Short:         "Generate business names, logos, slogans and brandbooks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(
		c.namesCmd(),
		c.logoCmd(),
		c.sloganCmd(),
		c.brandbookCmd(),
		c.getCmd(),
		c.apiKeyCmd(),
	)
	return root
}

// setup builds the shared services once per invocation.
func (c *cli) setup(cmd *cobra.Command) (*bootstrap.Services, error) {
	if c.services != nil {
		return c.services, nil
	}
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := infra.NewLoggerTo(cmd.ErrOrStderr(), "cli", c.logLevel).With().Str("cmd", cmd.Name()).Logger()
	services, err := bootstrap.Build(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	c.services = services
	cobra.OnFinalize(services.Close)
	return services, nil
}

func (c *cli) namesCmd() *cobra.Command {
	var req generation.NameRequest
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Generate business name candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(req.Industry) == "" {
				return errors.New("--industry is required")
			}
			svc, err := c.setup(cmd)
			if err != nil {
				return err
			}
			names, err := svc.Generator.GenerateNames(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"names": names})
		},
	}
	cmd.Flags().StringVar(&req.Industry, "industry", "", "business industry")
	cmd.Flags().StringVar(&req.Keywords, "keywords", "", "comma separated keywords")
	cmd.Flags().StringVar(&req.Style, "style", "", "naming style")
	cmd.Flags().StringVar(&req.Preferences, "preferences", "", "free-form preferences")
	return cmd
}

func (c *cli) logoCmd() *cobra.Command {
	var req generation.LogoRequest
	cmd := &cobra.Command{
		Use:   "logo",
		Short: "Generate a logo and print its URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(req.Name) == "" {
				return errors.New("--name is required")
			}
			svc, err := c.setup(cmd)
			if err != nil {
				return err
			}
			url, err := svc.Generator.GenerateLogo(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"url": url})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "business name")
	cmd.Flags().StringVar(&req.Keywords, "keywords", "", "comma separated keywords")
	return cmd
}

func (c *cli) sloganCmd() *cobra.Command {
	var req generation.SloganRequest
	cmd := &cobra.Command{
		Use:   "slogan",
		Short: "Generate a slogan, falling back to a default one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(req.Name) == "" {
				return errors.New("--name is required")
			}
			svc, err := c.setup(cmd)
			if err != nil {
				return err
			}
			slogan := svc.Generator.GenerateSlogan(cmd.Context(), req)
			return printJSON(cmd.OutOrStdout(), map[string]string{"slogan": slogan})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "business name")
	cmd.Flags().StringVar(&req.Keywords, "keywords", "", "comma separated keywords")
	return cmd
}

func (c *cli) brandbookCmd() *cobra.Command {
	var name, keywords, logoURL string
	cmd := &cobra.Command{
		Use:   "brandbook",
		Short: "Assemble a brandbook; generates a logo first when --logo-url is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" {
				return errors.New("--name is required")
			}
			svc, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if strings.TrimSpace(logoURL) == "" {
				logoURL, err = svc.Generator.GenerateLogo(cmd.Context(), generation.LogoRequest{Name: name, Keywords: keywords})
				if err != nil {
					return fmt.Errorf("generate logo: %w", err)
				}
			}
			book := svc.Assembler.Assemble(cmd.Context(), name, keywords, logoURL)
			return printJSON(cmd.OutOrStdout(), book)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "business name")
	cmd.Flags().StringVar(&keywords, "keywords", "", "comma separated keywords")
	cmd.Flags().StringVar(&logoURL, "logo-url", "", "absolute URL of an existing logo")
	return cmd
}

func (c *cli) getCmd() *cobra.Command {
	var archivePath string
	cmd := &cobra.Command{
		Use:   "get <brandbook-id>",
		Short: "Print a recorded brandbook, or save it as a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.setup(cmd)
			if err != nil {
				return err
			}
			if archivePath != "" {
				data, err := svc.Assembler.Archive(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := os.WriteFile(archivePath, data, 0o644); err != nil {
					return fmt.Errorf("write archive: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "archive written to %s\n", archivePath)
				return nil
			}
			book, err := svc.Assembler.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), book)
		},
	}
	cmd.Flags().StringVar(&archivePath, "archive", "", "write a zip with the brandbook and its logo files to this path")
	return cmd
}

func (c *cli) apiKeyCmd() *cobra.Command {
	parent := &cobra.Command{
		Use:   "apikey",
		Short: "Manage the stored gen-api key",
	}
	var key string
	set := &cobra.Command{
		Use:   "set",
		Short: "Store the gen-api key in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			key = strings.TrimSpace(key)
			if key == "" {
				key = strings.TrimSpace(os.Getenv("GEN_API_KEY"))
			}
			if key == "" {
				return errors.New("api key is required via --key or GEN_API_KEY")
			}
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.PersistenceEnabled() {
				return errors.New("DATABASE_URL is required")
			}
			pool, err := infra.NewDBPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			logger := infra.NewLoggerTo(cmd.ErrOrStderr(), "cli", c.logLevel).With().Str("cmd", "apikey").Logger()
			runner := infra.NewSQLRunner(pool, logger)
			if err := repo.NewBrandbookRepository(runner).EnsureSchema(cmd.Context()); err != nil {
				return err
			}
			store := credentials.NewStore(runner)
			props := map[string]any{"updated_at": time.Now().UTC().Format(time.RFC3339)}
			if err := store.SetToken(cmd.Context(), credentials.ProviderGenAPI, key, props); err != nil {
				return fmt.Errorf("store api key: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "gen-api key stored")
			return nil
		},
	}
	set.Flags().StringVar(&key, "key", "", "gen-api key (defaults to GEN_API_KEY)")
	parent.AddCommand(set)
	return parent
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
