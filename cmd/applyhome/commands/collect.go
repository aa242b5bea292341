package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"applyhome/internal/collector"
	"applyhome/internal/config"
	"applyhome/internal/crawler"
	"applyhome/internal/endpoint"
	"applyhome/internal/exporter"
	"applyhome/internal/fetcher"
	"applyhome/internal/logger"
	"applyhome/internal/models"
	"applyhome/internal/pacing"
	"applyhome/internal/report"
	"applyhome/internal/timezone"
)

// ErrNoListings is returned when no category produced an open listing.
var ErrNoListings = errors.New("no open subscriptions")

var (
	withNotices    bool
	withoutNotices bool
)

var collectCmd = &cobra.Command{
	Use:   "collect [--notices | --no-notices]",
	Short: "Collects open subscriptions from every category and exports them.",
	Args:  cobra.NoArgs,
	RunE:  runCollect,
}

func init() {
	addNoticeFlags(collectCmd)
	rootCmd.AddCommand(collectCmd)
}

func addNoticeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&withNotices, "notices", false, "Scrape notice pages without asking")
	cmd.Flags().BoolVar(&withoutNotices, "no-notices", false, "Skip notice pages without asking")
	cmd.MarkFlagsMutuallyExclusive("notices", "no-notices")
}

// loadConfig loads the settings file, writing a template when it does not exist yet.
func loadConfig(out io.Writer) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err == nil {
		return cfg, nil
	}

	if !errors.Is(err, config.ErrConfigNotFound) {
		return nil, err
	}

	if writeErr := config.WriteTemplate(configPath); writeErr != nil {
		return nil, fmt.Errorf("%w (template could not be written: %w)", err, writeErr)
	}

	fmt.Fprintf(out, "📝 설정 파일이 없어 템플릿을 생성했습니다: %s\n", configPath)
	fmt.Fprintln(out, "   api.service_key 에 공공데이터포털에서 발급받은 인증키를 입력한 뒤 다시 실행하세요.")
	fmt.Fprintf(out, "   (환경변수 %s 로도 지정할 수 있습니다)\n", config.ServiceKeyEnv)

	return nil, err
}

// newLogger builds the run logger at logging.level; --log-level wins when given.
func newLogger(cfg *config.Config) *logger.Logger {
	log := logger.NewLogger(cfg.Logging.Level)
	if logLevel != "" {
		log.SetLevel(logLevel)
	}

	return log
}

func runCollect(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(out)
	if err != nil {
		return err
	}

	log := newLogger(cfg)

	fmt.Fprintln(out, "🏠 청약홈 전체 주택유형 청약정보 수집")
	fmt.Fprintf(out, "🔑 API 키: %s\n", cfg.MaskedServiceKey())

	if err := os.MkdirAll(cfg.Paths.OutputFolder, 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	if abs, absErr := filepath.Abs(cfg.Paths.OutputFolder); absErr == nil {
		fmt.Fprintf(out, "📁 결과 폴더: %s\n", abs)
	}

	fmt.Fprintln(out)

	client := fetcher.NewClient(
		cfg.API.BaseURL,
		cfg.API.ServiceKey,
		cfg.API.RequestTimeout(),
		log,
		fetcher.WithPageFunc(func(label string, page, count int) {
			fmt.Fprintf(out, "  ✅ %s %d페이지: %d건\n", label, page, count)
		}),
	)

	var reports []collector.CategoryReport

	c := collector.New(client, collector.Options{
		Categories:    endpoint.All(),
		MaxPages:      cfg.Settings.MaxPages,
		CategoryDelay: cfg.API.CategoryDelay(),
		Sleep:         pacing.Sleep,
		Now:           timezone.Now,
		Logger:        log,
		OnCategory: func(r collector.CategoryReport) {
			reports = append(reports, r)
		},
	})

	res, err := c.Collect(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	report.Categories(out, reports)

	if res.Total() == 0 {
		fmt.Fprintln(out, "⚠️ 현재 진행 중인 청약이 없습니다.")

		return ErrNoListings
	}

	fmt.Fprintf(out, "\n📊 총 %d건의 청약정보를 수집했습니다.\n\n", res.Total())

	var notices *crawler.EnrichStats

	if shouldScrapeNotices(cmd) {
		stats, err := scrapeNotices(cmd, cfg, log, res.Listings)
		if err != nil {
			return err
		}

		notices = &stats
	}

	now := timezone.Now()
	stamp := timezone.Stamp(now)
	targets := exporter.Targets{
		JSON:     cfg.OutputPath(stamp, "json"),
		XLSX:     cfg.OutputPath(stamp, "xlsx"),
		Markdown: cfg.OutputPath(stamp, "md"),
	}

	fmt.Fprintln(out, "💾 파일 저장 중...")

	meta, err := exporter.Export(res, targets, exporter.Options{
		GeneratedAt:  now,
		ExcerptChars: cfg.Notice.ExcerptChars,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Fprintln(out)
	report.Final(out, report.Summary{
		Result:   res,
		Upcoming: len(exporter.Upcoming(res.Listings, timezone.Today(now))),
		Notices:  notices,
		Files:    targets,
		RunID:    meta.RunID,
	})

	fmt.Fprintln(out, "\n🎉 완료!")

	return nil
}

func shouldScrapeNotices(cmd *cobra.Command) bool {
	switch {
	case withNotices:
		return true
	case withoutNotices:
		return false
	default:
		return Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), noticePrompt)
	}
}

func scrapeNotices(cmd *cobra.Command, cfg *config.Config, log *logger.Logger, listings []models.Listing) (crawler.EnrichStats, error) {
	out := cmd.OutOrStdout()

	scraper := crawler.NewScraper(cfg.Notice.Retry, cfg.Notice.MaxChars, crawler.WithLogger(log))
	enricher := crawler.NewEnricher(scraper, cfg.Notice.Delay(), pacing.Sleep, log)

	fmt.Fprintf(out, "\n📄 모집공고문 크롤링 시작 (%d건)\n", len(listings))

	stats, err := enricher.Enrich(cmd.Context(), listings, func(i, n int, l *models.Listing) {
		fmt.Fprintf(out, "%s [%d/%d] 크롤링: %s\n", report.Bar(i, n, 20), i, n, l.HouseName)
	})

	scraper.Attempts().LogSummary(log)

	if err != nil {
		return stats, err
	}

	fmt.Fprintf(out, "✅ 모집공고문 크롤링 완료: 성공 %d건, 실패 %d건, URL 없음 %d건\n\n", stats.Fetched, stats.Failed, stats.NoURL)

	return stats, nil
}
