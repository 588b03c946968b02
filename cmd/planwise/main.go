package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/planwise/retirement-planner/internal/breakeven"
	"github.com/planwise/retirement-planner/internal/calculation"
	"github.com/planwise/retirement-planner/internal/compare"
	"github.com/planwise/retirement-planner/internal/config"
	"github.com/planwise/retirement-planner/internal/domain"
	"github.com/planwise/retirement-planner/internal/output"
	"github.com/planwise/retirement-planner/internal/score"
	"github.com/planwise/retirement-planner/internal/server"
	"github.com/planwise/retirement-planner/internal/tui"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "planwise",
	Short: "Retirement planning calculator",
	Long:  "Projects retirement savings across pension, training fund, portfolio, crypto and real estate, and scores financial health",
}

// loadEngine assembles the rules, engine and scorer shared by every
// command, honoring --rules and --debug.
func loadEngine(cmd *cobra.Command) (*calculation.CalculationEngine, *score.HealthScorer, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")

	var rules *domain.EngineRules
	var err error
	if rulesFile != "" {
		rules, err = config.NewInputParser().LoadRulesFromFile(rulesFile)
	} else {
		rules, err = config.DefaultRules()
	}
	if err != nil {
		return nil, nil, err
	}

	engine := calculation.NewCalculationEngine(rules)
	scorer := score.NewHealthScorer(rules)

	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
		engine.Debug = true
		scorer.SetLogger(simpleCLILogger{})
	}
	return engine, scorer, nil
}

func loadPlan(path string) (*domain.PlanInput, error) {
	return config.NewInputParser().LoadPlanFromFile(path)
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [plan-file]",
	Short: "Project retirement savings for a plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, scorer, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}
		plan, err := loadPlan(args[0])
		if err != nil {
			log.Fatal(err)
		}

		projection, err := engine.RunProjection(cmd.Context(), plan)
		if err != nil {
			log.Fatal(err)
		}

		report := &output.Report{GeneratedAt: time.Now(), Projection: projection}
		if withScore, _ := cmd.Flags().GetBool("with-score"); withScore {
			health := scorer.Score(plan.Record)
			report.Health = &health
		}

		printReport(cmd, report)
	},
}

var scoreCmd = &cobra.Command{
	Use:   "score [plan-file]",
	Short: "Score a household's financial health",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, scorer, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}
		plan, err := loadPlan(args[0])
		if err != nil {
			log.Fatal(err)
		}

		health := scorer.Score(plan.Record)
		printReport(cmd, &output.Report{GeneratedAt: time.Now(), Health: &health})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [plan-file]",
	Short: "Compare a plan against built-in what-if templates",
	Long: `Compare the base plan against alternative strategies.

Examples:
  planwise compare plan.yaml --with conservative,aggressive
  planwise compare plan.yaml --with postpone_2yr,market_stress --format csv
  planwise compare --list-templates`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			registry := compare.BuiltInTemplates()
			fmt.Println("Available templates:")
			for _, name := range registry.Names() {
				template, _ := registry.Get(name)
				fmt.Printf("  %-20s %s\n", name, template.Description)
			}
			return
		}
		if len(args) != 1 {
			log.Fatal("plan file required unless --list-templates is given")
		}

		engine, _, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}
		plan, err := loadPlan(args[0])
		if err != nil {
			log.Fatal(err)
		}

		with, _ := cmd.Flags().GetString("with")
		templates := []string{}
		for _, name := range strings.Split(with, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				templates = append(templates, trimmed)
			}
		}

		compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), plan, templates)
		if err != nil {
			log.Fatal(err)
		}

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(compSet)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
		case "json":
			out, err := (&compare.JSONFormatter{}).Format(compSet)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
		default:
			fmt.Print((&compare.TableFormatter{}).Format(compSet))
		}
	},
}

var breakevenCmd = &cobra.Command{
	Use:   "breakeven [plan-file]",
	Short: "Find the monthly contribution needed for a target retirement income",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}
		plan, err := loadPlan(args[0])
		if err != nil {
			log.Fatal(err)
		}

		target, _ := cmd.Flags().GetFloat64("target-income")
		constraints := breakeven.Constraints{
			TargetMonthlyIncome: decimal.NewFromFloat(target),
		}

		result, err := breakeven.NewDefaultSolver(engine).Solve(cmd.Context(), plan, constraints)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Println("CONTRIBUTION BREAK-EVEN ANALYSIS")
		fmt.Println(strings.Repeat("=", 40))
		fmt.Printf("Target monthly income:   %s\n", output.FormatCurrency(result.TargetMonthlyIncome))
		fmt.Printf("Required contribution:   %s/month\n", output.FormatCurrency(result.RequiredMonthlyContribution))
		fmt.Printf("Achieved monthly income: %s\n", output.FormatCurrency(result.AchievedMonthlyIncome))
		if !result.Converged {
			fmt.Println("Warning: search did not converge; the target may be out of reach within the contribution bounds")
		}
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [plan-file]",
	Short: "Validate a plan file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := loadPlan(args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Plan file %s is valid\n", args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the projection and scoring API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		engine, scorer, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		srv := server.New(engine, scorer)
		srv.SetLogger(simpleCLILogger{})

		log.Printf("planwise API listening on %s", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	},
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Collect a plan interactively and show the projection",
	Run: func(cmd *cobra.Command, args []string) {
		engine, scorer, err := loadEngine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		program := tea.NewProgram(tui.NewModel(engine, scorer))
		if _, err := program.Run(); err != nil {
			log.Fatal(err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "planwise %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Path)
			}
		},
	}
}

// printReport renders via the formatter selected by --format.
func printReport(cmd *cobra.Command, report *output.Report) {
	format, _ := cmd.Flags().GetString("format")
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		log.Fatalf("unsupported format: %s", format)
	}
	data, err := formatter.Format(report)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
}

func init() {
	rootCmd.PersistentFlags().String("rules", "", "Engine rules YAML (defaults to built-in rules)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	calculateCmd.Flags().String("format", "console", "Output format (console, json, csv)")
	calculateCmd.Flags().Bool("with-score", false, "Append the financial health score to the report")
	scoreCmd.Flags().String("format", "console", "Output format (console, json, csv)")
	compareCmd.Flags().String("with", "", "Comma-separated template names to compare against")
	compareCmd.Flags().String("format", "table", "Output format (table, csv, json)")
	compareCmd.Flags().Bool("list-templates", false, "List available templates")
	breakevenCmd.Flags().Float64("target-income", 0, "Target monthly retirement income")
	serveCmd.Flags().String("addr", ":8080", "Listen address")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(breakevenCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wizardCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
