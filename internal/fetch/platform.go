package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

type platformSpec struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformSpec{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// commonNoise is removed on every platform: application forms, EEO text and
// share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	if spec := lookupPlatform(urlStr); spec != nil {
		return spec.platform
	}
	return PlatformUnknown
}

func lookupPlatform(urlStr string) *platformSpec {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platforms {
		for _, suffix := range platforms[i].hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return &platforms[i]
			}
		}
	}
	return nil
}

// ContentSelectors returns content selectors for a platform, ending with the
// generic job posting selectors.
func ContentSelectors(platform Platform) []string {
	var selectors []string
	for _, spec := range platforms {
		if spec.platform == platform {
			selectors = append(selectors, spec.content...)
		}
	}
	return append(selectors, JobPostingSelectors()...)
}

// NoiseSelectors returns the elements stripped before extracting text.
func NoiseSelectors(platform Platform) []string {
	selectors := append([]string(nil), commonNoise...)
	for _, spec := range platforms {
		if spec.platform == platform {
			selectors = append(selectors, spec.noise...)
		}
	}
	return selectors
}
