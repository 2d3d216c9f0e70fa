package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Platform
	}{
		{"greenhouse board", "https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"lever posting", "https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"workday", "https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"company career page", "https://acme.com/careers/backend-engineer", PlatformUnknown},
		{"unparseable", "://nope", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors_KnownPlatforms(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Contains(t, PlatformContentSelectors(PlatformWorkday), "[data-automation-id='jobDescription']")
}

func TestPlatformContentSelectors_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors_IncludesCommon(t *testing.T) {
	for _, platform := range []Platform{PlatformGreenhouse, PlatformLever, PlatformWorkday, PlatformUnknown} {
		selectors := PlatformNoiseSelectors(platform)
		assert.Contains(t, selectors, "form", "platform %s", platform)
		assert.Contains(t, selectors, ".eeo-statement", "platform %s", platform)
	}
}
