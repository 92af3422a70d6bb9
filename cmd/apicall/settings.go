package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"

	"github.com/milan604/api-handler/pkg/config"
	apihttp "github.com/milan604/api-handler/pkg/http"
	"github.com/milan604/api-handler/pkg/validator"
)

// settings is the effective configuration of one apicall run.
type settings struct {
	URL          string            `mapstructure:"url"`
	Method       string            `mapstructure:"method" validate:"httpmethod"`
	Body         string            `mapstructure:"body" validate:"omitempty,json"`
	FileType     string            `mapstructure:"file-type"`
	Query        string            `mapstructure:"query"`
	Token        string            `mapstructure:"token"`
	Headers      map[string]string `mapstructure:"header"`
	Out          string            `mapstructure:"out"`
	Timeout      time.Duration     `mapstructure:"timeout" validate:"gte=0"`
	LogLevel     string            `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	OTLPEndpoint string            `mapstructure:"otlp-endpoint" validate:"omitempty,url"`
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("apicall", pflag.ContinueOnError)
	fs.String("url", "", "target URL")
	fs.StringP("method", "X", "", "HTTP method")
	fs.StringP("body", "d", "", "JSON request body (POST and PATCH only)")
	fs.String("file-type", "", "expected response media type")
	fs.StringP("query", "q", "", "pre-encoded query string")
	fs.String("token", "", "bearer token")
	fs.StringToStringP("header", "H", nil, "extra header name=value")
	fs.StringP("out", "o", "", "write binary responses to this file")
	fs.Duration("timeout", 0, "transport timeout")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.String("otlp-endpoint", "", "export traces to this OTLP HTTP endpoint")
	fs.String("config", "", "config file")
	fs.String("env-file", ".env", "dotenv file")
	fs.Bool("version", false, "print version and exit")
	return fs
}

// loadSettings layers built-in defaults, the dotenv file, the config file,
// APICALL_* env and flags (highest wins), then validates the result.
func loadSettings(fs *pflag.FlagSet) (*config.Config, *settings, error) {
	cfgFile, _ := fs.GetString("config")
	envFile, _ := fs.GetString("env-file")

	cfg, err := config.New(
		config.WithDefaults(map[string]interface{}{
			"method":    "GET",
			"file-type": apihttp.DefaultFileType,
			"log-level": "info",
		}),
		config.WithFile(cfgFile),
		config.WithEnv("APICALL"),
		config.WithPFlags(fs),
		config.WithDotEnv(envFile),
		config.WithSensitiveKeys("token"),
	)
	if err != nil {
		return nil, nil, err
	}

	if err := cfg.ValidateRequired("url"); err != nil {
		return nil, nil, err
	}

	var s settings
	if err := cfg.Unmarshal(&s); err != nil {
		return nil, nil, fmt.Errorf("decode settings: %w", err)
	}
	s.Timeout = cfg.GetDurationD("timeout", defaultTimeout)

	if err := newSettingsValidator().Struct(s); err != nil {
		return nil, nil, err
	}
	return cfg, &s, nil
}

const defaultTimeout = 30 * time.Second

// newSettingsValidator accepts any method that is an HTTP token, so
// extension methods such as PURGE and lower-case spellings still pass
// through to the executor unchanged.
func newSettingsValidator() *validator.Validator {
	vi := validator.New()
	_ = vi.RegisterValidation("httpmethod", func(fl gvalidator.FieldLevel) bool {
		return isToken(fl.Field().String())
	})
	vi.RegisterTagMessage("httpmethod", func(fe gvalidator.FieldError) string {
		return fmt.Sprintf("%s %q is not a valid HTTP method", fe.Field(), fe.Value())
	})
	return vi
}

func isToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("!#$%&'*+-.^_`|~", r):
		default:
			return false
		}
	}
	return true
}

// requestOptions maps settings onto a request. The token is not set here;
// it reaches the request through the token store.
//
// Header names are canonicalised because viper lower-cases keys read from
// config files, and the executor matches header names exactly.
func (s *settings) requestOptions() (apihttp.RequestOptions, error) {
	opts := apihttp.RequestOptions{
		URL:         s.URL,
		Method:      s.Method,
		FileType:    s.FileType,
		QueryParams: s.Query,
	}
	if len(s.Headers) > 0 {
		opts.Headers = make(map[string]string, len(s.Headers))
		for k, v := range s.Headers {
			opts.Headers[http.CanonicalHeaderKey(k)] = v
		}
	}
	if s.Body != "" {
		if err := json.Unmarshal([]byte(s.Body), &opts.Body); err != nil {
			return opts, fmt.Errorf("decode body: %w", err)
		}
	}
	return opts, nil
}
