package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	liquidityapp "github.com/tokenestate/backend/internal/application/liquidity"
	"github.com/tokenestate/backend/internal/domain/liquidity"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"golang.org/x/text/language"
)

type options struct {
	configPath string
	tiers      []string
	asJSON     bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "feecalc",
		Short:         "Redemption fee calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "read liquidity.default_tiers from this TOML file")
	root.PersistentFlags().StringArrayVar(&opts.tiers, "tier", nil, `fee tier as "min:max:percent", empty max for open-ended (repeatable)`)
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")

	root.AddCommand(newTiersCommand(opts), newQuoteCommand(opts), newTableCommand(opts))
	return root
}

func newTiersCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "Print the fee schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, schedule.Tiers())
			}
			for _, t := range schedule.Tiers() {
				fmt.Fprintln(out, t.String())
			}
			if !schedule.Covers() {
				fmt.Fprintln(out, "warning: tiers do not cover [0, ∞) contiguously; gaps fall back to the last tier")
			}
			return nil
		},
	}
}

func newQuoteCommand(opts *options) *cobra.Command {
	var (
		tokens int64
		value  string
		months int
	)
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote one redemption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			tokenValue, err := parseValue(value)
			if err != nil {
				return err
			}
			q, err := liquidity.CalculatePayout(schedule.Tiers(), liquidity.QuoteRequest{
				Tokens: tokens, TokenValue: tokenValue, HoldingMonths: months,
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, q)
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "tier\t%s\n", q.Tier)
			fmt.Fprintf(w, "gross\t%s\n", q.GrossValue.Format(language.English))
			fmt.Fprintf(w, "fee\t%s\n", q.FeeAmount.Format(language.English))
			fmt.Fprintf(w, "net\t%s\n", q.NetPayout.Format(language.English))
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&tokens, "tokens", 0, "tokens to redeem")
	cmd.Flags().StringVar(&value, "value", "", "value of one token in USD")
	cmd.Flags().IntVar(&months, "months", 0, "whole months the tokens were held")
	_ = cmd.MarkFlagRequired("tokens")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

type tableRow struct {
	Months     int             `json:"holding_months"`
	FeePercent decimal.Decimal `json:"fee_percent"`
	Fee        string          `json:"fee_amount"`
	Net        string          `json:"net_payout"`
}

func newTableCommand(opts *options) *cobra.Command {
	var (
		tokens    int64
		value     string
		maxMonths int
		step      int
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print net payouts across holding periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if step <= 0 {
				return fmt.Errorf("--step must be positive")
			}
			schedule, err := opts.schedule()
			if err != nil {
				return err
			}
			tokenValue, err := parseValue(value)
			if err != nil {
				return err
			}
			var rows []tableRow
			for m := 0; m <= maxMonths; m += step {
				q, err := schedule.Quote(liquidity.QuoteRequest{Tokens: tokens, TokenValue: tokenValue, HoldingMonths: m})
				if err != nil {
					return err
				}
				rows = append(rows, tableRow{
					Months:     m,
					FeePercent: q.Tier.FeePercent,
					Fee:        q.FeeAmount.Amount().StringFixed(2),
					Net:        q.NetPayout.Amount().StringFixed(2),
				})
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return writeJSON(out, rows)
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "months\tfee %\tfee\tnet\t")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", r.Months, r.FeePercent, r.Fee, r.Net)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&tokens, "tokens", 0, "tokens to redeem")
	cmd.Flags().StringVar(&value, "value", "", "value of one token in USD")
	cmd.Flags().IntVar(&maxMonths, "max-months", 48, "last holding period to print")
	cmd.Flags().IntVar(&step, "step", 6, "months between rows")
	_ = cmd.MarkFlagRequired("tokens")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

// schedule resolves tiers from --tier flags, then --config, then the
// built-in defaults
func (o *options) schedule() (*liquidity.FeeSchedule, error) {
	var tiers []liquidity.FeeTier
	switch {
	case len(o.tiers) > 0:
		for _, raw := range o.tiers {
			t, err := parseTier(raw)
			if err != nil {
				return nil, err
			}
			tiers = append(tiers, t)
		}
	case o.configPath != "":
		cfg, err := config.LoadFile(o.configPath)
		if err != nil {
			return nil, err
		}
		tiers = liquidityapp.TiersFromConfig(cfg.Liquidity.DefaultTiers)
	default:
		tiers = liquidityapp.TiersFromConfig(config.DefaultFeeTiers())
	}
	return liquidity.NewFeeSchedule(tiers)
}

// parseTier reads "min:max:percent"; "36::3" is open-ended
func parseTier(raw string) (liquidity.FeeTier, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return liquidity.FeeTier{}, fmt.Errorf("tier %q: want min:max:percent", raw)
	}
	minMonths, err := strconv.Atoi(parts[0])
	if err != nil {
		return liquidity.FeeTier{}, fmt.Errorf("tier %q: min months: %w", raw, err)
	}
	var maxMonths *int
	if parts[1] != "" {
		m, err := strconv.Atoi(parts[1])
		if err != nil {
			return liquidity.FeeTier{}, fmt.Errorf("tier %q: max months: %w", raw, err)
		}
		maxMonths = &m
	}
	fee, err := decimal.NewFromString(parts[2])
	if err != nil {
		return liquidity.FeeTier{}, fmt.Errorf("tier %q: fee percent: %w", raw, err)
	}
	return liquidity.NewFeeTier(minMonths, maxMonths, fee), nil
}

func parseValue(raw string) (valueobject.Money, error) {
	m, err := valueobject.NewMoneyFromString(raw, valueobject.USD)
	if err != nil {
		return valueobject.Money{}, fmt.Errorf("--value: %w", err)
	}
	return m, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
