package hrvm

import (
	base "github.com/Nick-P-Adams/hrvm/pkg/hrvm"
)

// Re-exported errors for convenience.
var (
	ErrChannelSubscriberClosed = base.ErrChannelSubscriberClosed
)

// Type aliases so consumers can import github.com/Nick-P-Adams/hrvm directly.
type (
	Config          = base.Config
	SamplingConfig  = base.SamplingConfig
	SourceConfig    = base.SourceConfig
	SQLConfig       = base.SQLConfig
	RedisConfig     = base.RedisConfig
	NATSConfig      = base.NATSConfig
	SimConfig       = base.SimConfig
	MetricsConfig   = base.MetricsConfig
	Flow            = base.Flow
	FlowOption      = base.FlowOption
	StreamInOption  = base.StreamInOption
	StreamOutOption = base.StreamOutOption
	Runtime         = base.Runtime
	RuntimeOption   = base.RuntimeOption
	Sample          = base.Sample
	State           = base.State
	Update          = base.Update
	UpdateFunc      = base.UpdateFunc
	Unit            = base.Unit
	Summary         = base.Summary
	Source          = base.Source
	Transformer     = base.Transformer
	Subscriber      = base.Subscriber
	Observability   = base.Observability
	Field           = base.Field
	PushSource      = base.PushSource
)

// Re-exported state and unit constants.
const (
	StateStopped  = base.StateStopped
	StateStarting = base.StateStarting
	StateActive   = base.StateActive

	UnitBPM        = base.UnitBPM
	UnitIntervalMS = base.UnitIntervalMS
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return base.WithFlowOptions(opts...)
}

func StreamInSource(src Source) StreamInOption {
	return base.StreamInSource(src)
}

func StreamInObservability(obs Observability) StreamInOption {
	return base.StreamInObservability(obs)
}

func StreamOutSubscriber(sub Subscriber) StreamOutOption {
	return base.StreamOutSubscriber(sub)
}

func StreamOutTransformer(tr Transformer) StreamOutOption {
	return base.StreamOutTransformer(tr)
}

func StreamOutObservability(obs Observability) StreamOutOption {
	return base.StreamOutObservability(obs)
}

func StreamOutCallback(name string, fn UpdateFunc) StreamOutOption {
	return base.StreamOutCallback(name, fn)
}

// Runtime and options.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}

func WithSource(src Source) RuntimeOption {
	return base.WithSource(src)
}

func WithTransformer(tr Transformer) RuntimeOption {
	return base.WithTransformer(tr)
}

func WithObservability(obs Observability) RuntimeOption {
	return base.WithObservability(obs)
}

func WithSubscriber(sub Subscriber) RuntimeOption {
	return base.WithSubscriber(sub)
}

// Subscriber adapters.
func NewCallbackSubscriber(name string, fn UpdateFunc) Subscriber {
	return base.NewCallbackSubscriber(name, fn)
}

func NewChannelSubscriber(name string, buffer int) (Subscriber, <-chan Update, func()) {
	return base.NewChannelSubscriber(name, buffer)
}

// Push source.
func NewPushSource(capacity int) *PushSource {
	return base.NewPushSource(capacity)
}
