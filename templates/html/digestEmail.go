package templates

import (
	"fmt"
	"html"
	"time"
)

// DigestEmailData holds the counts shown in the daily complaint digest
type DigestEmailData struct {
	Date          time.Time
	Pending       int64
	UrgentPending int64
	FiledLastDay  int64
	DashboardURL  string
}

// DigestSubject returns the subject line of the digest sent on date
func DigestSubject(date time.Time) string {
	return fmt.Sprintf("SafeDesk complaint digest for %s", date.Format("Jan 2, 2006"))
}

// RenderDigestEmail generates the HTML for the daily complaint digest
func RenderDigestEmail(d DigestEmailData) string {
	link := ""
	if d.DashboardURL != "" {
		link = fmt.Sprintf(`<p><a href="%s">Open the review queue</a></p>`, html.EscapeString(d.DashboardURL))
	}
	body := fmt.Sprintf(`<p>Here is where the review queue stands this morning.</p>
      <div class="stat"><strong>%d</strong>pending review</div>
      <div class="stat urgent"><strong>%d</strong>high or critical priority</div>
      <div class="stat"><strong>%d</strong>filed in the last 24 hours</div>
      %s`, d.Pending, d.UrgentPending, d.FiledLastDay, link)

	return renderLayout(html.EscapeString(DigestSubject(d.Date)), body)
}

// RenderDigestText is the plain text alternative of RenderDigestEmail
func RenderDigestText(d DigestEmailData) string {
	text := fmt.Sprintf("%s\n\nPending review: %d\nHigh or critical priority: %d\nFiled in the last 24 hours: %d\n",
		DigestSubject(d.Date), d.Pending, d.UrgentPending, d.FiledLastDay)
	if d.DashboardURL != "" {
		text += "\n" + d.DashboardURL + "\n"
	}
	return text
}
