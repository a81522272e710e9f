// tlq-purge is an offline one-shot CLI that purges a running TLQ
// instance over HTTP, analogous to the teacher's cmd/bulk-delete.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	addr := flag.String("addr", "http://127.0.0.1:1337", "base URL of the running TLQ server")
	timeout := flag.Duration("timeout", 5*time.Second, "request timeout")
	flag.Parse()

	if *addr == "" {
		fmt.Println("Usage: ./tlq-purge -addr=http://host:port")
		os.Exit(1)
	}

	log := buildLogger()
	log = log.Named("main")

	client := &http.Client{Timeout: *timeout}

	start := time.Now()
	resp, err := client.Post(*addr+"/purge", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		log.Fatal("purge request failed", zap.Error(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		log.Fatal("purge rejected by server",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
	}

	log.Info("queue purged", zap.Duration("took", time.Since(start)))
}

func buildLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.TimeKey = ""
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logConfig.DisableStacktrace = true
	logConfig.DisableCaller = true
	logConfig.Level.SetLevel(zap.DebugLevel)
	return zap.Must(logConfig.Build())
}
