package report

import (
	"fmt"
	"regexp"
	"strings"

	"modbot/backend/internal/models"
)

var messageLinkPattern = regexp.MustCompile(
	`https://(?:\w+\.)?discord(?:app)?\.com/channels/(\d+|@me)/(\d+)/(\d+)`)

// ParseMessageLink extracts the channel and message IDs from a pasted
// message link.
func ParseMessageLink(s string) (channelID, messageID string, ok bool) {
	match := messageLinkPattern.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return "", "", false
	}
	return match[2], match[3], true
}

// FormatForward renders the completed report as the moderator-forward
// payload. Field values are reproduced verbatim; DisinfoType is "N/A" when
// the false-information branch was not taken.
func FormatForward(r *models.Report) string {
	return fmt.Sprintf("Forwarded message (from user report):\n"+
		"Original author: %s\n"+
		"Original content: \"%s\"\n"+
		"UserID of Reporter: %s\n"+
		"Primary Abuse Type: \"%s\"\n"+
		"Category of Abuse Type: \"%s\"\n"+
		"Disinformation Type: \"%s\"\n"+
		"More Details from User: \"%s\"",
		r.Target.AuthorName, r.Target.Content, r.ReporterID,
		r.PrimaryCategory, r.Subcategory, r.DisinfoType, r.HarmDetails)
}
