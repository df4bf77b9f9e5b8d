package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fogz-io/fogz/src/internal/client"
	"github.com/fogz-io/fogz/src/internal/config"
	"github.com/fogz-io/fogz/src/internal/fberr"
	"github.com/fogz-io/fogz/src/internal/model"
	"github.com/fogz-io/fogz/src/internal/transport"
)

var rootCmd = &cobra.Command{
	Use:   "fogz",
	Short: "FogBugz tracker CLI",
	Long:  "fogz queries and edits cases, milestones, people, projects and time intervals over the tracker's XML API.",
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("FOGZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", "fogz.yml", "config file")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "debug logging")
	rootCmd.PersistentFlags().String("url", "", "tracker base URL (overrides config)")
	rootCmd.PersistentFlags().String("token", "", "API token (overrides config)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

func registerCommands() {
	rootCmd.AddCommand(caseCmd())
	rootCmd.AddCommand(milestoneCmd())
	rootCmd.AddCommand(peopleCmd())
	rootCmd.AddCommand(projectCmd())
	rootCmd.AddCommand(intervalCmd())
}

func buildClient() (*client.Client, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("url"); v != "" {
		cfg.URL = v
	}
	if v := viper.GetString("token"); v != "" {
		cfg.Token = v
	}

	logger := zap.NewNop()
	if viper.GetBool("debug") {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	fetcher := transport.New(cfg.URL, cfg.Token, logger)
	return client.New(fetcher, cfg.Catalog(), cfg.Roles.Mergekeeper, cfg.Roles.Gatekeeper, logger), nil
}

func withClient(run func(ctx context.Context, c *client.Client) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		return run(ctx, c)
	}
}

func caseCmd() *cobra.Command {
	cs := &cobra.Command{Use: "case", Short: "Work with cases"}
	cs.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one case by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("case id must be a number: %q", args[0])
			}
			return withClient(func(ctx context.Context, c *client.Client) error {
				fbCase, err := c.GetCaseByID(ctx, id)
				if err != nil {
					return err
				}
				return printCases([]model.Case{fbCase})
			})(cmd, args)
		},
	})
	cs.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search cases",
		Args:  cobra.ExactArgs(1),
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, args []string) error {
			cases, err := c.SearchCases(ctx, args[0])
			if err != nil {
				return err
			}
			return printCases(cases)
		}),
	})
	cs.AddCommand(&cobra.Command{
		Use:   "events <id>",
		Short: "List the event history of a case",
		Args:  cobra.ExactArgs(1),
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("case id must be a number: %q", args[0])
			}
			events, err := c.EventsForCase(ctx, id)
			if err != nil {
				return err
			}
			return printEvents(events)
		}),
	})
	cs.AddCommand(&cobra.Command{
		Use:   "last-assigned <case-id> <user-id>",
		Short: "Show when a case was last assigned to a user by a human",
		Args:  cobra.ExactArgs(2),
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, args []string) error {
			caseID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("case id must be a number: %q", args[0])
			}
			userID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("user id must be a number: %q", args[1])
			}
			ev, err := c.LastAssignedTo(ctx, caseID, userID)
			if err != nil {
				return err
			}
			if ev == nil {
				fmt.Println("no qualifying assignment found")
				return nil
			}
			fmt.Println(ev.Describe())
			return nil
		}),
	})
	return cs
}

func milestoneCmd() *cobra.Command {
	ms := &cobra.Command{Use: "milestone", Short: "Work with milestones"}
	ms.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List milestones",
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, _ []string) error {
			milestones, err := c.Milestones(ctx)
			if err != nil {
				return err
			}
			return printMilestones(milestones)
		}),
	})
	ms.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a milestone unless it already exists",
		Args:  cobra.ExactArgs(1),
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, args []string) error {
			err := c.CreateMilestoneIfNotExists(ctx, args[0])
			if fberr.Is(err, fberr.MilestoneExists) {
				fmt.Printf("milestone %q already exists\n", args[0])
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("milestone %q created\n", args[0])
			return nil
		}),
	})
	return ms
}

func peopleCmd() *cobra.Command {
	p := &cobra.Command{Use: "people", Short: "Work with tracker accounts"}
	p.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, _ []string) error {
			users, err := c.Users(ctx)
			if err != nil {
				return err
			}
			return printUsers(users)
		}),
	})
	p.AddCommand(&cobra.Command{
		Use:   "view <id>",
		Short: "View one account",
		Args:  cobra.ExactArgs(1),
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("user id must be a number: %q", args[0])
			}
			u, err := c.UserByID(ctx, id)
			if err != nil {
				return err
			}
			if u == nil {
				fmt.Println("no such person")
				return nil
			}
			return printUsers([]model.User{*u})
		}),
	})
	return p
}

func projectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, _ []string) error {
			projects, err := c.Projects(ctx)
			if err != nil {
				return err
			}
			return printProjects(projects)
		}),
	}
}

func intervalCmd() *cobra.Command {
	var caseID, personID int
	var from, till string
	cmd := &cobra.Command{
		Use:   "intervals",
		Short: "List tracked time intervals",
		RunE: withClientArgs(func(ctx context.Context, c *client.Client, _ []string) error {
			q := client.IntervalQuery{CaseID: caseID, PersonID: personID}
			var err error
			if q.From, err = parseDate(from); err != nil {
				return err
			}
			if q.Till, err = parseDate(till); err != nil {
				return err
			}
			intervals, err := c.SearchIntervals(ctx, q)
			if err != nil {
				return err
			}
			return printIntervals(intervals)
		}),
	}
	cmd.Flags().IntVar(&caseID, "case", 0, "filter by case id")
	cmd.Flags().IntVar(&personID, "person", 0, "filter by person id")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&till, "till", "", "end date, inclusive (YYYY-MM-DD)")
	return cmd
}

func withClientArgs(run func(ctx context.Context, c *client.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return withClient(func(ctx context.Context, c *client.Client) error {
			return run(ctx, c, args)
		})(cmd, args)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}
