// Command apicall issues one REST request and prints the decoded response.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	apierrors "github.com/milan604/api-handler/pkg/errors"
	apihttp "github.com/milan604/api-handler/pkg/http"
	"github.com/milan604/api-handler/pkg/logger"
	"github.com/milan604/api-handler/pkg/observability"
	"github.com/milan604/api-handler/pkg/token"
	"github.com/milan604/api-handler/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if v, _ := fs.GetBool("version"); v {
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	cfg, s, err := loadSettings(fs)
	if err != nil {
		fmt.Fprintf(stderr, "apicall: %v\n", err)
		return 2
	}

	log, err := logger.NewLogger(logger.LoggerOptions{
		Level:       s.LogLevel,
		Encoding:    "console",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(stderr, "apicall: init logger: %v\n", err)
		return 1
	}
	defer log.Sync()
	log.DebugF("settings: %v", cfg.MaskedSettings())

	store := token.NewStore()
	if s.Token != "" {
		store.Set(s.Token)
	}

	clientOpts := []apihttp.ClientOption{
		apihttp.WithHTTPClient(&http.Client{Timeout: s.Timeout}),
		apihttp.WithTokenStore(store),
		apihttp.WithLogger(log),
	}
	if s.OTLPEndpoint != "" {
		obs, err := observability.New(log, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "apicall: %v\n", err)
			return 1
		}
		defer obs.Shutdown(context.Background())
		clientOpts = append(clientOpts, apihttp.WithTracer(obs.Tracer()))
	}

	opts, err := s.requestOptions()
	if err != nil {
		fmt.Fprintf(stderr, "apicall: %v\n", err)
		return 2
	}

	resp, err := apihttp.NewClient(clientOpts...).Invoke(ctx, opts)
	if err != nil {
		writeFailure(stderr, err)
		return 1
	}

	if err := writeResponse(stdout, s.Out, resp); err != nil {
		fmt.Fprintf(stderr, "apicall: %v\n", err)
		return 1
	}
	return 0
}

func writeResponse(stdout io.Writer, out string, resp *apihttp.Response) error {
	if !resp.IsBinary() {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.JSON)
	}
	if out == "" {
		_, err := stdout.Write(resp.Binary)
		return err
	}
	return os.WriteFile(out, resp.Binary, 0o644)
}

func writeFailure(stderr io.Writer, err error) {
	se, ok := apierrors.AsStructured(err)
	if !ok {
		fmt.Fprintf(stderr, "apicall: %v\n", err)
		return
	}
	payload := map[string]any{
		"code":    se.Code,
		"message": se.Message,
	}
	if se.Details != nil {
		payload["details"] = se.Details.Error()
	}
	var status *apierrors.StatusError
	if errors.As(err, &status) {
		payload["status"] = status.StatusCode
	}
	if stage, ok := apierrors.StageOf(err); ok {
		payload["stage"] = stage
	}
	enc := json.NewEncoder(stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
