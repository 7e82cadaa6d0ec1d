package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/eventpubsub"
	"github.com/zzprice/optionrisk/src/pricing"
	"github.com/zzprice/optionrisk/src/refdata"
	"github.com/zzprice/optionrisk/src/riskengine/models"
	"github.com/zzprice/optionrisk/src/riskengine/services"
	"github.com/zzprice/optionrisk/src/utils"
)

type RunArgs struct {
	GoEnv      string
	ConfigPath string
	QuotesCSV  string
	FillsCSV   string
}

type RunResult struct {
	Report string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/risk_report/main.go --config risk.yaml --quotes quotes.csv --fills fills.csv",
	Short: "Replay recorded quotes and fills through the risk engine and print a greeks report",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		quotesCSV, err := cmd.Flags().GetString("quotes")
		if err != nil {
			log.Fatalf("error getting quotes: %v", err)
		}

		fillsCSV, err := cmd.Flags().GetString("fills")
		if err != nil {
			log.Fatalf("error getting fills: %v", err)
		}

		result, err := Run(RunArgs{
			GoEnv:      goEnv,
			ConfigPath: configPath,
			QuotesCSV:  quotesCSV,
			FillsCSV:   fillsCSV,
		})

		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(result.Report)
	},
}

// replayEvent carries either a quote or a fill; the timeline is replayed in
// timestamp order so theo greeks see the underlying ticks in sequence.
type replayEvent struct {
	timestamp time.Time
	quote     *eventmodels.QuoteTick
	fill      *eventmodels.Fill
}

func Run(args RunArgs) (RunResult, error) {
	if args.GoEnv != "" {
		os.Setenv("GO_ENV", args.GoEnv)
	}

	if err := utils.InitEnvironmentVariables(""); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	eventpubsub.Init()

	config, err := eventmodels.NewRiskConfigYAML(args.ConfigPath)
	if err != nil {
		return RunResult{}, err
	}

	model, err := pricing.Get(config.PricingModel)
	if err != nil {
		return RunResult{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	wg := sync.WaitGroup{}

	portfolio := models.NewPortfolio(config.Portfolio)
	svc := services.NewRiskService(&wg, portfolio, time.Hour)

	if config.ContractsCSV != "" {
		contracts, loadErr := refdata.LoadContractsCSV(config.ContractsCSV)
		if loadErr != nil {
			return RunResult{}, loadErr
		}

		svc.LoadUniverse(contracts)
	}

	if err := svc.ActivateFromConfig(config, model); err != nil {
		return RunResult{}, err
	}

	if err := svc.Start(ctx); err != nil {
		return RunResult{}, err
	}

	quotes, err := refdata.LoadQuotesCSV(args.QuotesCSV)
	if err != nil {
		return RunResult{}, err
	}

	var fills []*eventmodels.Fill
	if args.FillsCSV != "" {
		if fills, err = refdata.LoadFillsCSV(args.FillsCSV); err != nil {
			return RunResult{}, err
		}
	}

	var timeline []replayEvent
	for _, quote := range quotes {
		timeline = append(timeline, replayEvent{timestamp: quote.Timestamp, quote: quote})
	}
	for _, fill := range fills {
		timeline = append(timeline, replayEvent{timestamp: fill.Timestamp, fill: fill})
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		return timeline[i].timestamp.Before(timeline[j].timestamp)
	})

	// subscriptions are synchronous, so each publish applies before the next
	for _, event := range timeline {
		if event.quote != nil {
			eventpubsub.Publish("risk_report", eventpubsub.NewQuoteEvent, event.quote)
		} else {
			eventpubsub.Publish("risk_report", eventpubsub.NewFillEvent, event.fill)
		}
	}

	svc.RefreshAtm(ctx)

	var chains []*eventmodels.ChainRiskDTO
	for _, chainConfig := range config.Chains {
		if chain, found := svc.ChainSnapshot(chainConfig.ChainSymbol); found {
			chains = append(chains, chain)
		}
	}

	report := renderReport(svc.PortfolioSnapshot(), chains)

	cancel()
	wg.Wait()

	return RunResult{Report: report}, nil
}

func renderReport(portfolio *eventmodels.PortfolioRiskDTO, chains []*eventmodels.ChainRiskDTO) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	display.WriteString(fmt.Sprintf("Portfolio: %s\n", portfolio.Name))

	summary := tablewriter.NewWriter(display)
	summary.SetAlignment(tablewriter.ALIGN_CENTER)
	summary.SetColumnSeparator("")
	summary.SetHeader([]string{"Long", "Short", "Net", "Value", "Delta", "Gamma", "Theta", "Vega"})
	summary.Append(positionRow(p, portfolio.Position))
	summary.Render()

	for _, chain := range chains {
		display.WriteString(fmt.Sprintf("\nChain %s  atm=%s  adjustment=%s\n",
			chain.ChainSymbol,
			p.Sprintf("%.2f", chain.AtmPrice),
			p.Sprintf("%.2f", chain.UnderlyingAdjustment),
		))

		table := tablewriter.NewWriter(display)
		table.SetAlignment(tablewriter.ALIGN_CENTER)
		table.SetColumnSeparator("")
		table.SetHeader([]string{"Option", "Type", "Strike", "Mid", "Mid IV", "Theo", "Delta", "Net", "Pos Delta"})

		for _, option := range chain.Options {
			table.Append([]string{
				option.Symbol.String(),
				string(option.OptionType),
				p.Sprintf("%.2f", option.Strike),
				p.Sprintf("%.2f", option.MidPrice),
				p.Sprintf("%.4f", option.MidImpv),
				p.Sprintf("%.2f", option.TheoPrice),
				p.Sprintf("%.2f", option.TheoDelta),
				p.Sprintf("%.0f", option.Position.NetPos),
				p.Sprintf("%.2f", option.Position.PosDelta),
			})
		}

		table.Render()
	}

	return display.String()
}

func positionRow(p *message.Printer, position eventmodels.PositionGreeksDTO) []string {
	return []string{
		p.Sprintf("%.0f", position.LongPos),
		p.Sprintf("%.0f", position.ShortPos),
		p.Sprintf("%.0f", position.NetPos),
		p.Sprintf("%.2f", position.PosValue),
		p.Sprintf("%.2f", position.PosDelta),
		p.Sprintf("%.2f", position.PosGamma),
		p.Sprintf("%.2f", position.PosTheta),
		p.Sprintf("%.2f", position.PosVega),
	}
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in.")
	runCmd.PersistentFlags().String("config", "risk.yaml", "Path to the risk engine config.")
	runCmd.PersistentFlags().String("quotes", "", "Path to the recorded quotes CSV.")
	runCmd.PersistentFlags().String("fills", "", "Path to the recorded fills CSV.")

	runCmd.MarkPersistentFlagRequired("quotes")

	runCmd.Execute()
}
