package logger

import "log/slog"

type Backend string

const (
	BackendStd Backend = "std" // text in dev; JSON in stage/prod
	BackendZap Backend = "zap" // slog-zap
)

type Config struct {
	// logger metadata
	Service    string
	Version    string
	InstanceID string

	// output control
	Level   slog.Level
	Env     Env
	Backend Backend // default: zap for stage/prod, std for dev
	Debug   bool

	// zap sampling
	SampleInitial    int
	SampleThereafter int
	SampleTick       int

	// AddSource in dev
	AddSource bool
}
