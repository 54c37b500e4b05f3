package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool", "code"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls not found",
		RequiredTags: []string{"tool"},
	}

	StatsAdapterCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_adapter_calls_succeeded",
		Help:         "stats_adapter_calls_succeeded provides total external service calls succeeded",
		RequiredTags: []string{"adapter"},
	}

	StatsAdapterCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_adapter_calls_failed",
		Help:         "stats_adapter_calls_failed provides total external service calls failed",
		RequiredTags: []string{"adapter", "kind"},
	}

	StatsOnboardingSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_onboarding_succeeded",
		Help:         "stats_onboarding_succeeded provides total onboarding runs with completed KYC",
		RequiredTags: []string{"lead"},
	}

	StatsOnboardingFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_onboarding_failed",
		Help:         "stats_onboarding_failed provides total onboarding runs with failed KYC",
		RequiredTags: []string{"lead"},
	}

	StatsEventsPublishFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_events_publish_failed",
		Help:         "stats_events_publish_failed provides total onboarding events not published",
		RequiredTags: []string{"type"},
	}
)

// Perf
var (
	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}

	PerfAdapterCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_adapter_call",
		Help:         "perf_adapter_call provides duration of external service call",
		RequiredTags: []string{"adapter"},
	}

	PerfOnboarding = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_onboarding",
		Help:         "perf_onboarding provides duration of onboarding run",
		RequiredTags: []string{"status"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfAdapterCall,
	&PerfOnboarding,
	&PerfToolCall,
	&StatsAdapterCallsFailed,
	&StatsAdapterCallsSucceeded,
	&StatsEventsPublishFailed,
	&StatsOnboardingFailed,
	&StatsOnboardingSucceeded,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
