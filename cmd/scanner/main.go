package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"stockscan/internal/commons"
	"stockscan/internal/dto"
	"stockscan/internal/infrastructure/logger"
	"stockscan/internal/infrastructure/metrics"
	"stockscan/internal/scan"
)

// The scanner reads one barcode per line, as keyboard-wedge scanners type
// them. Lookups overlap freely; only the latest scan is printed.
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := commons.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.NewConsole(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := metrics.NewRegistry()
	if addr := cfg.Scanner.MetricsAddr; addr != "" {
		metricsSrv := &http.Server{Addr: addr, Handler: reg.Handler()}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLogger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer metricsSrv.Close()
	}

	client := scan.NewClient(cfg.Scanner.ServerURL, cfg.Scanner.APIKey, nil)
	session := scan.NewSession(client, scan.NewBellNotifier(os.Stdout), reg.StaleDiscarded, zapLogger)
	defer session.Close()

	zapLogger.Info("scanner ready", zap.String("server", cfg.Scanner.ServerURL))
	run(ctx, os.Stdin, os.Stdout, session)
}

func run(ctx context.Context, in io.Reader, out io.Writer, session *scan.Session) {
	var (
		wg    sync.WaitGroup
		outMu sync.Mutex
	)
	printf := func(format string, args ...any) {
		outMu.Lock()
		defer outMu.Unlock()
		fmt.Fprintf(out, format, args...)
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				return
			}
			code := strings.TrimSpace(line)
			switch code {
			case "":
				continue
			case "reset":
				session.Reset()
				printf("ready\n")
				continue
			}

			wg.Add(1)
			go func() {
				defer wg.Done()
				view, err := session.Scan(ctx, code)
				switch {
				case errors.Is(err, scan.ErrStale):
					return
				case err != nil:
					printf("%s: %v\n", view.Barcode, err)
				default:
					printf("%s", render(view.Stock))
				}
			}()
		}
	}
}

func render(s *dto.StockResponse) string {
	var b strings.Builder
	name := ""
	if s.ProductName != nil {
		name = " " + *s.ProductName
	}
	unit := ""
	if s.BaseUom != nil {
		unit = " " + *s.BaseUom
	}
	fmt.Fprintf(&b, "%s  %s%s\n", s.Barcode, s.Product, name)
	fmt.Fprintf(&b, "  stock: %g%s\n", s.Stock, unit)
	for _, alt := range s.AlternateUnits {
		if alt.Quantity == nil {
			fmt.Fprintf(&b, "  %s: n/a\n", alt.Uom)
			continue
		}
		fmt.Fprintf(&b, "  %s: %.3f\n", alt.Uom, *alt.Quantity)
	}
	return b.String()
}
