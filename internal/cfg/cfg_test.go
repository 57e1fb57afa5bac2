package cfg

import (
	"flag"
	"math"
	"strings"
	"testing"
)

// validBase returns a Config with all required fields set to valid values.
func validBase() Config {
	return Config{
		DrainSeconds:          60,
		ShutdownBudgetSeconds: 90,
		APIPort:               8080,
		ClaudeAPIKey:          "sk-test-key",
		ClaudeModel:           "claude-sonnet-4-20250514",
		ExtractTimeoutSeconds: 15,
		FeedBufferSize:        16,
	}
}

func TestRegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse empty args: %v", err)
	}

	if c.DrainSeconds != 60 {
		t.Errorf("DrainSeconds = %d, want 60", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 90 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 90", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 8080 {
		t.Errorf("APIPort = %d, want 8080", c.APIPort)
	}
	if c.ClaudeModel != "claude-sonnet-4-20250514" {
		t.Errorf("ClaudeModel = %q, want %q", c.ClaudeModel, "claude-sonnet-4-20250514")
	}
	if c.ExtractTimeoutSeconds != 15 {
		t.Errorf("ExtractTimeoutSeconds = %d, want 15", c.ExtractTimeoutSeconds)
	}
	if c.FeedBufferSize != 16 {
		t.Errorf("FeedBufferSize = %d, want 16", c.FeedBufferSize)
	}
	if c.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", c.DatabaseURL)
	}
}

func TestRegisterFlags_Override(t *testing.T) {
	t.Parallel()

	var c Config
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.RegisterFlags(fs)

	args := []string{
		"-drain-seconds", "30",
		"-shutdown-budget-seconds", "120",
		"-http-port", "9090",
		"-claude-api-key", "sk-override",
		"-claude-model", "claude-opus-4-20250514",
		"-extract-timeout-seconds", "30",
		"-database-url", "postgres://localhost/beacon",
		"-slack-webhook-url", "https://hooks.slack.com/services/x",
		"-feed-buffer-size", "64",
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if c.DrainSeconds != 30 {
		t.Errorf("DrainSeconds = %d, want 30", c.DrainSeconds)
	}
	if c.ShutdownBudgetSeconds != 120 {
		t.Errorf("ShutdownBudgetSeconds = %d, want 120", c.ShutdownBudgetSeconds)
	}
	if c.APIPort != 9090 {
		t.Errorf("APIPort = %d, want 9090", c.APIPort)
	}
	if c.ClaudeAPIKey != "sk-override" {
		t.Errorf("ClaudeAPIKey = %q, want %q", c.ClaudeAPIKey, "sk-override")
	}
	if c.ClaudeModel != "claude-opus-4-20250514" {
		t.Errorf("ClaudeModel = %q, want %q", c.ClaudeModel, "claude-opus-4-20250514")
	}
	if c.ExtractTimeoutSeconds != 30 {
		t.Errorf("ExtractTimeoutSeconds = %d, want 30", c.ExtractTimeoutSeconds)
	}
	if c.DatabaseURL != "postgres://localhost/beacon" {
		t.Errorf("DatabaseURL = %q", c.DatabaseURL)
	}
	if c.SlackWebhookURL != "https://hooks.slack.com/services/x" {
		t.Errorf("SlackWebhookURL = %q", c.SlackWebhookURL)
	}
	if c.FeedBufferSize != 64 {
		t.Errorf("FeedBufferSize = %d, want 64", c.FeedBufferSize)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	withField := func(mutate func(*Config)) Config {
		c := validBase()
		mutate(&c)
		return c
	}

	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr []string // substrings that must appear in error message
	}{
		{
			name:    "defaults are valid",
			cfg:     validBase(),
			wantErr: false,
		},
		{
			name: "minimum valid values",
			cfg: Config{
				DrainSeconds: 1, ShutdownBudgetSeconds: 2, APIPort: 1,
				ClaudeModel: "m", ExtractTimeoutSeconds: 1, FeedBufferSize: 1,
			},
			wantErr: false,
		},
		{
			name: "maximum valid values",
			cfg: Config{
				DrainSeconds: 299, ShutdownBudgetSeconds: 300, APIPort: 65535,
				ClaudeModel: "m", ExtractTimeoutSeconds: 120, FeedBufferSize: 1024,
			},
			wantErr: false,
		},
		{
			name:    "empty api key allowed",
			cfg:     withField(func(c *Config) { c.ClaudeAPIKey = "" }),
			wantErr: false,
		},
		// DrainSeconds boundaries
		{
			name:      "drain zero",
			cfg:       withField(func(c *Config) { c.DrainSeconds = 0 }),
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name:      "drain negative",
			cfg:       withField(func(c *Config) { c.DrainSeconds = -1 }),
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		{
			name: "drain above max",
			cfg: withField(func(c *Config) {
				c.DrainSeconds = 301
				c.ShutdownBudgetSeconds = 302
			}),
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS"},
		},
		// ShutdownBudgetSeconds boundaries
		{
			name:      "budget zero",
			cfg:       withField(func(c *Config) { c.ShutdownBudgetSeconds = 0 }),
			wantErr:   true,
			errSubstr: []string{"SHUTDOWN_BUDGET_SECONDS"},
		},
		{
			name:      "budget above max",
			cfg:       withField(func(c *Config) { c.ShutdownBudgetSeconds = 301 }),
			wantErr:   true,
			errSubstr: []string{"SHUTDOWN_BUDGET_SECONDS"},
		},
		// Cross-field: budget vs drain
		{
			name:      "budget equals drain",
			cfg:       withField(func(c *Config) { c.ShutdownBudgetSeconds = c.DrainSeconds }),
			wantErr:   true,
			errSubstr: []string{"must be greater than"},
		},
		{
			name:      "budget less than drain",
			cfg:       withField(func(c *Config) { c.ShutdownBudgetSeconds = 30 }),
			wantErr:   true,
			errSubstr: []string{"must be greater than"},
		},
		// APIPort boundaries
		{
			name:      "port zero",
			cfg:       withField(func(c *Config) { c.APIPort = 0 }),
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		{
			name:      "port above max",
			cfg:       withField(func(c *Config) { c.APIPort = 65536 }),
			wantErr:   true,
			errSubstr: []string{"HTTP_PORT"},
		},
		// Extraction
		{
			name:      "empty claude model",
			cfg:       withField(func(c *Config) { c.ClaudeModel = "" }),
			wantErr:   true,
			errSubstr: []string{"CLAUDE_MODEL"},
		},
		{
			name:      "extract timeout zero",
			cfg:       withField(func(c *Config) { c.ExtractTimeoutSeconds = 0 }),
			wantErr:   true,
			errSubstr: []string{"EXTRACT_TIMEOUT_SECONDS"},
		},
		{
			name:      "extract timeout above max",
			cfg:       withField(func(c *Config) { c.ExtractTimeoutSeconds = 121 }),
			wantErr:   true,
			errSubstr: []string{"EXTRACT_TIMEOUT_SECONDS"},
		},
		// Feed buffer
		{
			name:      "feed buffer zero",
			cfg:       withField(func(c *Config) { c.FeedBufferSize = 0 }),
			wantErr:   true,
			errSubstr: []string{"FEED_BUFFER_SIZE"},
		},
		{
			name:      "feed buffer above max",
			cfg:       withField(func(c *Config) { c.FeedBufferSize = 1025 }),
			wantErr:   true,
			errSubstr: []string{"FEED_BUFFER_SIZE"},
		},
		// Error accumulation: all fields invalid
		{
			name:    "all fields invalid",
			cfg:     Config{},
			wantErr: true,
			errSubstr: []string{
				"DRAIN_SECONDS", "SHUTDOWN_BUDGET_SECONDS", "HTTP_PORT",
				"CLAUDE_MODEL", "EXTRACT_TIMEOUT_SECONDS", "FEED_BUFFER_SIZE",
			},
		},
		// Extreme values
		{
			name: "extreme negative values",
			cfg: Config{
				DrainSeconds: math.MinInt32, ShutdownBudgetSeconds: math.MinInt32,
				APIPort: math.MinInt32, ExtractTimeoutSeconds: math.MinInt32, FeedBufferSize: math.MinInt32,
			},
			wantErr:   true,
			errSubstr: []string{"DRAIN_SECONDS", "SHUTDOWN_BUDGET_SECONDS", "HTTP_PORT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				errMsg := err.Error()
				for _, sub := range tt.errSubstr {
					if !strings.Contains(errMsg, sub) {
						t.Errorf("error %q does not contain %q", errMsg, sub)
					}
				}
			}
		})
	}
}

func FuzzValidate(f *testing.F) {
	// Seeds: defaults, boundaries, extremes
	seeds := []struct {
		drain, budget, port, extract, buf int
		model                             string
	}{
		{60, 90, 8080, 15, 16, "claude-sonnet"},
		{1, 2, 1, 1, 1, "m"},
		{299, 300, 65535, 120, 1024, "m"},
		{0, 0, 0, 0, 0, ""},
		{-1, -1, -1, -1, -1, ""},
		{150, 100, 8080, 15, 16, "m"},
		{math.MinInt32, math.MinInt32, math.MinInt32, math.MinInt32, math.MinInt32, ""},
		{math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32, math.MaxInt32, ""},
	}
	for _, s := range seeds {
		f.Add(s.drain, s.budget, s.port, s.extract, s.buf, s.model)
	}

	f.Fuzz(func(t *testing.T, drain, budget, port, extract, buf int, model string) {
		c := Config{
			DrainSeconds:          drain,
			ShutdownBudgetSeconds: budget,
			APIPort:               port,
			ClaudeModel:           model,
			ExtractTimeoutSeconds: extract,
			FeedBufferSize:        buf,
		}
		err := c.Validate()

		drainOK := drain >= 1 && drain <= 300
		budgetOK := budget >= 1 && budget <= 300
		portOK := port >= 1 && port <= 65535
		crossOK := budget > drain
		modelOK := model != ""
		extractOK := extract >= 1 && extract <= 120
		bufOK := buf >= 1 && buf <= 1024

		allValid := drainOK && budgetOK && portOK && crossOK && modelOK && extractOK && bufOK

		if allValid && err != nil {
			t.Errorf("expected no error for valid config %+v, got: %v", c, err)
		}
		if !allValid && err == nil {
			t.Errorf("expected error for invalid config %+v, got nil", c)
		}
	})
}
