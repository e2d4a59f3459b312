package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/database"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/staking"
	"github.com/futurecast/futurecast/web"
	"github.com/futurecast/futurecast/web/service"

	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	reader, err := web.NewStakeReader(context.Background())
	if err != nil {
		log.Fatal("unable to reach the staking contract: ", err)
	}

	server := web.NewServer(reader)
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(reader)
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			database.CloseDB()
			return
		}
	}
}

func generateForecasts(ai bool) {
	initLogger()

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	forecastService := service.NewForecastService(service.NewStakeService(nil))
	seedService, err := service.NewSeedServiceFromConfig(ctx, forecastService)
	if err != nil {
		fmt.Println("forecast generator setup failed:", err)
		return
	}
	defer seedService.Close()

	var report *service.SeedReport
	if ai {
		fmt.Println("Generating AI-powered forecasts...")
		report, err = seedService.SeedGenerated(ctx)
	} else {
		fmt.Println("Creating sample forecasts...")
		report, err = seedService.SeedSample(ctx)
	}
	if err != nil {
		fmt.Println("forecast generation failed, existing forecasts were kept:", err)
		return
	}
	fmt.Printf("Forecast generation completed! %d forecasts written", report.Written)
	if report.Fallbacks > 0 {
		fmt.Printf(" (%d fallbacks)", report.Fallbacks)
	}
	fmt.Println()
}

func stakeForecast(forecastId string, amount int64) {
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chain := config.GetChainConfig()
	if chain.RPCURL == "" {
		fmt.Println("FUTURECAST_RPC_URL is not set")
		return
	}
	client, err := staking.Dial(ctx, chain.RPCURL)
	if err != nil {
		fmt.Println("connect to RPC endpoint failed:", err)
		return
	}
	defer client.Close()

	cfg := staking.Config{
		TokenAddress:   chain.TokenAddress,
		StakingAddress: chain.StakingAddress,
		Reader:         staking.ReaderKind(chain.ReaderMethod),
		OnProgress: func(p staking.Progress) {
			if p.Message != "" {
				logger.Infof("[%s] %s", p.State, p.Message)
			}
		},
	}
	flow, err := staking.Bind(ctx, cfg, client, chain.StakerKey)
	if err != nil {
		fmt.Println("staking setup failed:", err)
		return
	}

	res, err := flow.Run(ctx, staking.Request{ForecastID: forecastId, Amount: amount})
	if err != nil {
		fmt.Printf("Staking failed (%s): %v\n", staking.CodeOf(err), err)
		os.Exit(1)
	}
	fmt.Printf("Forecast %s unlocked via %s payment, tier %d\n", res.ForecastID, res.Path, res.Tier)
	for _, hash := range res.Transactions {
		fmt.Println("tx:", hash.Hex())
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()
	fmt.Println("Migration done!")
}

func main() {
	var envFile string

	var rootCmd = &cobra.Command{
		Use:   "futurecast",
		Short: "Economic forecasts unlocked by on-chain stake",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnvFile(envFile)
		},
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before running")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var forecastCmd = &cobra.Command{
		Use:   "forecast",
		Short: "Manage forecasts",
	}

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Replace all forecasts with the sample set, or with generated ones (--ai)",
		Run: func(cmd *cobra.Command, args []string) {
			ai, _ := cmd.Flags().GetBool("ai")
			generateForecasts(ai)
		},
	}
	generateCmd.Flags().Bool("ai", false, "generate with Gemini or the external generator command")

	var stakeCmd = &cobra.Command{
		Use:   "stake",
		Short: "Stake tokens to unlock a forecast",
		Run: func(cmd *cobra.Command, args []string) {
			forecastId, _ := cmd.Flags().GetString("forecast-id")
			amount, _ := cmd.Flags().GetInt64("amount")
			stakeForecast(forecastId, amount)
		},
	}
	stakeCmd.Flags().String("forecast-id", "", "on-chain forecast id")
	stakeCmd.Flags().Int64("amount", staking.LevelBasic, "whole tokens to stake")
	_ = stakeCmd.MarkFlagRequired("forecast-id")

	forecastCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, forecastCmd, stakeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
