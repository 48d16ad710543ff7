package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"StockLens/internal/recorder"
	"StockLens/internal/universe"
)

var (
	configPath string
	runsLimit  int
	exportPath string

	rootCmd = &cobra.Command{
		Use:   "stockctl",
		Short: "Manage the stock universe tracked by StockLens",
		Long: `stockctl edits the universe file the tracker follows and inspects
recorded analysis runs. Changes are picked up on the tracker's next cycle.`,
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List tracked stocks with their sectors",
		Run:   runList,
	}
	addCmd = &cobra.Command{
		Use:   "add SYMBOL SECTOR",
		Short: "Start tracking a stock (e.g. add RELIANCE.NS Energy)",
		Args:  cobra.ExactArgs(2),
		Run:   runAdd,
	}
	removeCmd = &cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Stop tracking a stock",
		Args:  cobra.ExactArgs(1),
		Run:   runRemove,
	}
	bulkCmd = &cobra.Command{
		Use:   "bulk SECTOR SYMBOL...",
		Short: "Track several stocks under one sector at once",
		Args:  cobra.MinimumNArgs(2),
		Run:   runBulk,
	}
	sectorsCmd = &cobra.Command{
		Use:   "sectors",
		Short: "Show sectors with their tracked stock counts",
		Run:   runSectors,
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export the stock list as a plain-text table",
		Run:   runExport,
	}
	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "Show recent recorded analysis runs",
		Run:   runRuns,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default $CONFIG_PATH or configs/config.yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(bulkCmd)
	rootCmd.AddCommand(sectorsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(runsCmd)
	exportCmd.Flags().StringVarP(&exportPath, "out", "o", "stocks_list.txt", "Output file")
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "How many runs to show")
}

func mustUniverse() *universe.Manager {
	um, err := universe.NewManager(cfg.Data.UniverseFile)
	if err != nil {
		log.Fatalf("open universe %s: %v", cfg.Data.UniverseFile, err)
	}
	return um
}

func sectorLabel(s universe.Stock) string {
	if s.Sector == "" {
		return universe.SectorUnknown
	}
	return s.Sector
}

func runList(cmd *cobra.Command, args []string) {
	stocks := mustUniverse().Stocks()
	if len(stocks) == 0 {
		fmt.Println("No stocks tracked yet. Add one with: stockctl add RELIANCE.NS Energy")
		return
	}
	for _, s := range stocks {
		fmt.Printf("%-16s %s\n", universe.DisplaySymbol(s.Symbol), sectorLabel(s))
	}
	fmt.Printf("\n%d stocks tracked\n", len(stocks))
}

func runAdd(cmd *cobra.Command, args []string) {
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	sector := strings.TrimSpace(args[1])
	if err := mustUniverse().Add(symbol, sector); err != nil {
		log.Fatalf("add %s: %v", symbol, err)
	}
	fmt.Printf("Added %s (%s)\n", universe.DisplaySymbol(symbol), sector)
}

func runRemove(cmd *cobra.Command, args []string) {
	symbol := strings.ToUpper(strings.TrimSpace(args[0]))
	if err := mustUniverse().Remove(symbol); err != nil {
		log.Fatalf("remove %s: %v", symbol, err)
	}
	fmt.Printf("Removed %s\n", symbol)
}

func runBulk(cmd *cobra.Command, args []string) {
	sector := strings.TrimSpace(args[0])
	symbols := make([]string, 0, len(args)-1)
	for _, sym := range args[1:] {
		symbols = append(symbols, strings.ToUpper(strings.TrimSpace(sym)))
	}
	added, err := mustUniverse().BulkAdd(symbols, sector)
	if err != nil {
		log.Fatalf("bulk add: %v", err)
	}
	fmt.Printf("Added %d of %d symbols under %s\n", added, len(symbols), sector)
}

func runSectors(cmd *cobra.Command, args []string) {
	um := mustUniverse()
	counts := make(map[string]int)
	for _, s := range um.Stocks() {
		counts[sectorLabel(s)]++
	}
	if len(counts) == 0 {
		fmt.Println("No stocks tracked yet.")
		return
	}
	for _, sector := range um.Sectors() {
		fmt.Printf("%-20s %d\n", sector, counts[sector])
	}
}

func runExport(cmd *cobra.Command, args []string) {
	stocks := mustUniverse().Stocks()
	if len(stocks) == 0 {
		fmt.Println("No stocks to export.")
		return
	}
	var b strings.Builder
	b.WriteString("STOCK LIST\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	fmt.Fprintf(&b, "Total: %d stocks\n\n", len(stocks))
	fmt.Fprintf(&b, "%-20s %-25s\n", "Symbol", "Sector")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for _, s := range stocks {
		fmt.Fprintf(&b, "%-20s %-25s\n", s.Symbol, sectorLabel(s))
	}
	if err := os.WriteFile(exportPath, []byte(b.String()), 0o644); err != nil {
		log.Fatalf("export: %v", err)
	}
	fmt.Printf("Exported %d stocks to %s\n", len(stocks), exportPath)
}

func runRuns(cmd *cobra.Command, args []string) {
	// Stat first so a read command never creates an empty database.
	if _, err := os.Stat(cfg.Database.SQLitePath); err != nil {
		fmt.Println("No runs recorded yet.")
		return
	}
	rec, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, zerolog.Nop())
	if err != nil {
		log.Fatalf("open database %s: %v", cfg.Database.SQLitePath, err)
	}
	defer rec.Close()

	runs, err := rec.RecentRuns(runsLimit)
	if err != nil {
		log.Fatalf("read runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	fmt.Printf("%-19s  %-8s %-10s %6s  %-8s %14s\n",
		"RECORDED", "KIND", "DATE", "STOCKS", "MOOD", "PORTFOLIO")
	for _, r := range runs {
		fmt.Printf("%-19s  %-8s %-10s %6d  %-8s %14.2f\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Date,
			r.TotalStocks, r.Mood, r.PortfolioValue)
	}
}
