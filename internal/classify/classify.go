package classify

import (
	"regexp"

	"AIRadar/internal/domain"
)

// statusRules are evaluated in order; the first match decides. Order is
// the tie-break: shipped language beats version/update language, which
// beats announcement language, then preview, deprecation, delay.
var statusRules = []struct {
	status  domain.Status
	pattern *regexp.Regexp
}{
	{domain.StatusShipped, regexp.MustCompile(`(?i)\b(available\s+now|now\s+available|shipping|ships\s+today|GA\b|general\s+availability|launch(ed|ing)\b|available\s+(globally|in|today))`)},
	{domain.StatusUpgraded, regexp.MustCompile(`(?i)\b(update(d)?\b|v\d+(\.\d+)*\b|performance\s+improv(e|ement)|speedup|latency\s+reduced|quality\s+improved|major\s+update|new\s+version)`)},
	{domain.StatusAnnounced, regexp.MustCompile(`(?i)\b(announce(d|s|ment)\b|introducing|previewing|coming\s+soon|sneak\s+peek|unveil(ed|s))`)},
	{domain.StatusPreview, regexp.MustCompile(`(?i)\b(beta|preview|limited\s+preview|private\s+preview|public\s+preview|early\s+access)\b`)},
	{domain.StatusDeprecated, regexp.MustCompile(`(?i)\b(deprecat(e|ed|ion)|sunset(ting)?|retire(ment)?|EOL\b|end\s+of\s+life)`)},
	{domain.StatusDelayed, regexp.MustCompile(`(?i)\b(delay|delayed|postpone(d|s))\b`)},
}

var announceRoot = regexp.MustCompile(`(?i)\b(announce|introduc|unveil)`)

var categoryRules = []struct {
	category domain.Category
	pattern  *regexp.Regexp
}{
	{domain.CategoryModelAPI, regexp.MustCompile(`(?i)\b(model|API|endpoint|SDK|inference|fine-tune|weights|token|embedding|prompt)\b`)},
	{domain.CategoryTooling, regexp.MustCompile(`(?i)\b(tool|IDE|extension|plugin|library|framework|notebook)\b`)},
	{domain.CategoryInfra, regexp.MustCompile(`(?i)\b(GPU|cluster|server|Cloud|region|availability\s+zone|throughput|deployment)\b`)},
	{domain.CategoryDeviceAR, regexp.MustCompile(`(?i)\b(headset|AR|VR|glasses|wearable|Quest|Vision\s+Pro|Ray-?Ban)\b`)},
	{domain.CategoryRobotics, regexp.MustCompile(`(?i)\b(robot|manipulation|locomotion|Isaac|ROS|arm|gripper|drone)\b`)},
}

// Status maps announcement text to a lifecycle status via the ordered
// keyword rules. Texts with an announce/introduce/unveil root but no
// rule hit default to Announced; everything else defaults to Upgraded.
func Status(text string) domain.Status {
	for _, rule := range statusRules {
		if rule.pattern.MatchString(text) {
			return rule.status
		}
	}
	if announceRoot.MatchString(text) {
		return domain.StatusAnnounced
	}
	return domain.StatusUpgraded
}

// Category guesses the product area; Model/API when nothing matches.
func Category(text string) domain.Category {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return domain.CategoryModelAPI
}
