package main

import (
	"context"
	"fmt"

	"codeberg.org/mutker/zbxreport/internal/config"
	"codeberg.org/mutker/zbxreport/internal/errors"
	"codeberg.org/mutker/zbxreport/internal/logger"
	"codeberg.org/mutker/zbxreport/internal/report"
	"codeberg.org/mutker/zbxreport/internal/sink"
	"codeberg.org/mutker/zbxreport/internal/zabbix"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zbxreport",
		Short: "Export host CPU and memory usage with their alert thresholds",
		Long: `zbxreport lists the hosts of a Zabbix host group and writes one row per
host with its current CPU and memory usage and the effective values of the
{$CPU.UTIL.WARN}, {$CPU.UTIL.CRIT}, {$MEMORY.UTIL.WARN} and {$MEMORY.UTIL.MAX}
macros, resolved across global, template and host level.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	config.RegisterFlags(cmd.Flags())

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	if err := logger.Init(cmd.ErrOrStderr(), cfg.LogLevel, logger.IsService()); err != nil {
		return err
	}
	logger.WithRunID(uuid.NewString())
	logger.Debug().
		Str("url", cfg.URL).
		Str("group_id", cfg.GroupID).
		Str("format", cfg.Format).
		Msg("Config loaded")

	out, err := sink.New(cfg.Format)
	if err != nil {
		return err
	}

	res, err := generate(cmd.Context(), cfg, out)
	if report.IsEmpty(err) {
		logger.Info().Err(err).Msg("Nothing to report")
		fmt.Fprintln(cmd.OutOrStdout(), err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s (%d hosts)\n", res.Path, res.Rows)

	return nil
}

// generate runs one report inside a single API session. The session is
// logged out on every path once login succeeded.
func generate(ctx context.Context, cfg *config.Config, out report.Sink) (*report.Result, error) {
	client, err := zabbix.New(zabbix.Config{
		URL:        cfg.URL,
		Timeout:    cfg.RequestTimeout(),
		Insecure:   cfg.Insecure,
		LegacyAuth: cfg.LegacyAuth,
	})
	if err != nil {
		return nil, err
	}

	session, err := client.Login(ctx, cfg.User, cfg.Password)
	if err != nil {
		return nil, err
	}
	defer func() {
		// Log out even if the run was cancelled.
		logoutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.RequestTimeout())
		defer cancel()

		if err := session.Close(logoutCtx); err != nil {
			var appErr errors.Error
			if errors.As(err, &appErr) {
				logger.Default().ErrorWithCode(appErr).Msg("Failed to log out")
			}
		}
	}()

	return report.NewGenerator(session, out, logger.Default()).Generate(ctx, report.Request{
		GroupID: cfg.GroupID,
		Output:  cfg.Output,
	})
}
