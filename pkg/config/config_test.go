package config

import "testing"

func validSolverConfig() SolverConfig {
	return SolverConfig{
		DeltaFn:              "linear_medium",
		RelativeDrawFn:       "none",
		SlackFn:              "balance_min",
		CostFn:               "max",
		RemainderSolveMethod: "greedy",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: Config{
				App:    AppConfig{Name: "test-service"},
				Log:    LogConfig{Level: "info"},
				Solver: validSolverConfig(),
			},
			wantErr: false,
		},
		{
			name: "missing app name",
			cfg: Config{
				Log:    LogConfig{Level: "info"},
				Solver: validSolverConfig(),
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "invalid"},
				Solver: validSolverConfig(),
			},
			wantErr: true,
		},
		{
			name: "valid debug level",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "debug"},
				Solver: validSolverConfig(),
			},
			wantErr: false,
		},
		{
			name: "negative max rounds",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "info"},
				Solver: func() SolverConfig { s := validSolverConfig(); s.MaxRounds = -1; return s }(),
			},
			wantErr: true,
		},
		{
			name: "unknown delta_fn",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "info"},
				Solver: func() SolverConfig { s := validSolverConfig(); s.DeltaFn = "bogus"; return s }(),
			},
			wantErr: true,
		},
		{
			name: "unsupported remainder solve method",
			cfg: Config{
				App:    AppConfig{Name: "test"},
				Log:    LogConfig{Level: "info"},
				Solver: func() SolverConfig { s := validSolverConfig(); s.RemainderSolveMethod = "ilp"; return s }(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"dev", true},
		{"production", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{"development", false},
		{"staging", false},
	}

	for _, tt := range tests {
		cfg := &Config{App: AppConfig{Environment: tt.env}}
		if got := cfg.IsProduction(); got != tt.want {
			t.Errorf("IsProduction() for %s = %v, want %v", tt.env, got, tt.want)
		}
	}
}

func TestSolverConfig_ToOptions(t *testing.T) {
	delta, draw, slack, cost, remainder, err := validSolverConfig().ToOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if delta != "linear_medium" || draw != "none" || slack != "balance_min" || cost != "max" || remainder != "greedy" {
		t.Errorf("unexpected parsed options: %v %v %v %v %v", delta, draw, slack, cost, remainder)
	}
}

func TestSolverConfig_ToOptionsRejectsUnknownValues(t *testing.T) {
	s := validSolverConfig()
	s.SlackFn = "not_a_real_slack_fn"
	if _, _, _, _, _, err := s.ToOptions(); err == nil {
		t.Error("expected an error for an unknown slack_fn")
	}
}
