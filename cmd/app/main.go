package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"springer_downloader/internal/config"
	"springer_downloader/internal/logger"
	"springer_downloader/internal/models"
	"springer_downloader/internal/naming"
	"springer_downloader/internal/network"
	"springer_downloader/internal/notify"
	"springer_downloader/internal/service"
	"springer_downloader/internal/version"
)

func main() {
	l := logger.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := fang.Execute(ctx, newRootCmd(l), fang.WithVersion(version.GetVersion()))
	stop()
	_ = l.Sync()

	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(l *zap.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "springer-dl",
		Short: "Springer book downloader",
		Long:  "Walks Springer Link search results and downloads every PDF/EPUB the book pages offer.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Version: version.GetVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newRunCmd(l))
	rootCmd.AddCommand(newFilenameCmd())
	return rootCmd
}

func newRunCmd(l *zap.Logger) *cobra.Command {
	var (
		query     string
		startPage int
		dir       string
		proxyAddr string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Download every book of the search results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, envLoaded, err := config.Load()
			if err != nil {
				l.Error("Configuration error", zap.Error(err))
				return fmt.Errorf("load config: %w", err)
			}
			if !envLoaded {
				l.Info("No .env file found, using process environment")
			}
			if err := logger.SetLevel(cfg.LogLevel); err != nil {
				l.Warn("Unknown LOG_LEVEL, keeping info", zap.String("level", cfg.LogLevel))
			}

			flags := cmd.Flags()
			if flags.Changed("query") {
				cfg.QuerySuffix = query
			}
			if flags.Changed("dir") {
				cfg.DownloadDir = dir
			}
			if flags.Changed("proxy") {
				cfg.ProxyAddr = proxyAddr
			}

			httpClient, err := network.NewClient(cfg.ProxyAddr)
			if err != nil {
				return err
			}

			var notifier notify.Notifier = notify.Nop{}
			if cfg.TelegramEnabled() {
				tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramEndpoint, httpClient, cfg.TelegramChatID, l)
				if err != nil {
					return err
				}
				notifier = tg
			}

			client := service.NewSpringerClient(httpClient, cfg.BaseURL, cfg.QuerySuffix, l)
			downloader := service.NewDownloader(client, cfg.DownloadDir, notifier, l)

			l.Info("Starting download",
				zap.String("firstPage", client.SearchPageURL(startPage)),
				zap.Int("startPage", startPage),
				zap.String("dir", cfg.DownloadDir),
				zap.Bool("proxy", cfg.ProxyAddr != ""),
				zap.Bool("telegram", cfg.TelegramEnabled()),
			)

			stats, err := downloader.Run(cmd.Context(), startPage)
			if err != nil {
				l.Error("Download run failed", zap.Error(err))
				return fmt.Errorf("download run: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pages: %d, books: %d, downloaded: %d, skipped: %d\n",
				stats.Pages, stats.Books, stats.Downloaded, stats.Skipped)
			return nil
		},
	}

	runCmd.Flags().StringVar(&query, "query", config.DefaultQuerySuffix, "Query string appended to every search page URL (overrides SPRINGER_QUERY_SUFFIX)")
	runCmd.Flags().IntVar(&startPage, "start-page", 1, "First result page to process")
	runCmd.Flags().StringVar(&dir, "dir", config.DefaultDownloadDir, "Download directory (overrides DOWNLOAD_DIR)")
	runCmd.Flags().StringVar(&proxyAddr, "proxy", "", "SOCKS5 proxy address, e.g. 127.0.0.1:9050 (overrides PROXY_ADDR)")

	return runCmd
}

func newFilenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filename [author] [title] [format]",
		Short: "Print the filename a book would be saved under",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := models.Format(args[2])
			if format != models.FormatPDF && format != models.FormatEPUB {
				return fmt.Errorf("%w: %q", service.ErrUnknownFormat, args[2])
			}

			fmt.Fprintln(cmd.OutOrStdout(), naming.Filename(args[0], args[1], format))
			return nil
		},
	}
}
