package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/CodeStranger-Fred/narmbandit/bandit"
	"github.com/CodeStranger-Fred/narmbandit/report"
	"github.com/CodeStranger-Fred/narmbandit/testbed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var (
	cfg         = testbed.DefaultConfig()
	policyNames []string
	color       bool
	addr        string
	chartDir    string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "narmbandit",
		Short: "N-armed bandit testbed for random and greedy agents",
		Long: `Generates bandits with hidden reward profiles, runs simple agents against them
and scores each agent against the bandit's ground truth, averaged over many trials.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVar(&cfg.Arms, "arms", getEnvInt("NARMBANDIT_ARMS", cfg.Arms), "Arms per bandit")
	rootCmd.PersistentFlags().Int64Var(&cfg.Seed, "seed", int64(getEnvInt("NARMBANDIT_SEED", int(cfg.Seed))), "Seed of the first trial")
	rootCmd.PersistentFlags().IntVar(&cfg.SampledTruth, "sampled-truth", 0, "Estimate ground truth from N draws per arm (0 uses the arm means)")
	rootCmd.PersistentFlags().BoolVar(&color, "color", true, "Colored output")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(armsCmd())
	return rootCmd
}

func addTrialFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cfg.Pulls, "pulls", getEnvInt("NARMBANDIT_PULLS", cfg.Pulls), "Pulls per policy run")
	cmd.Flags().IntVar(&cfg.Trials, "trials", getEnvInt("NARMBANDIT_TRIALS", cfg.Trials), "Number of trials to average over")
	cmd.Flags().IntVar(&cfg.Workers, "workers", getEnvInt("NARMBANDIT_WORKERS", cfg.Workers), "Trials run in parallel")
	cmd.Flags().StringSliceVar(&policyNames, "policy", []string{"random", "greedy"}, "Policies to run")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every trial")
}

func simulate(ctx context.Context, reg prometheus.Registerer) (*testbed.Result, error) {
	cfg.Policies = nil
	for _, name := range policyNames {
		k, err := bandit.ParseKind(name)
		if err != nil {
			return nil, err
		}
		cfg.Policies = append(cfg.Policies, k)
	}

	runner, err := testbed.NewRunner(cfg, reg)
	if err != nil {
		return nil, fmt.Errorf("failed to configure testbed: %w", err)
	}
	return runner.Run(ctx)
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the trials and print a summary per policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := simulate(ctx, nil)
			if err != nil {
				return err
			}
			report.NewConsole(cmd.OutOrStdout(), color).Summary(res)
			return nil
		},
	}
	addTrialFlags(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trials, render the reward chart and serve it with the metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			res, err := simulate(ctx, reg)
			if err != nil {
				return err
			}
			report.NewConsole(cmd.OutOrStdout(), color).Summary(res)

			path, err := report.WriteChart(res, chartDir)
			if err != nil {
				return err
			}
			log.Printf("chart written to %s", path)

			srv := &http.Server{Addr: addr, Handler: report.Handler(chartDir, reg)}
			go func() {
				<-ctx.Done()
				srv.Close()
			}()
			log.Printf("running server at http://%s/%s", addr, report.ChartFile)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	addTrialFlags(cmd)
	cmd.Flags().StringVar(&addr, "addr", getEnv("NARMBANDIT_ADDR", "localhost:8089"), "Listen address")
	cmd.Flags().StringVar(&chartDir, "dir", "charts", "Chart output directory")
	return cmd
}

func armsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "arms",
		Short: "Print the arms of one generated bandit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			b, err := bandit.NewBandit(rand.New(rand.NewSource(cfg.Seed)), cfg.Arms, cfg.BanditOptions()...)
			if err != nil {
				return err
			}
			report.NewConsole(cmd.OutOrStdout(), color).Arms(b)
			return nil
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		log.Printf("ignoring %s: %v", key, err)
		return fallback
	}
	return v
}
