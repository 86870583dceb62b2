package ticketing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"community-bot/model"
)

const transcriptTimeFormat = "2006-01-02 15:04:05 UTC"

// RenderTranscript formats a ticket and its captured messages as plain text.
func RenderTranscript(t *model.Ticket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcript for %s", t.ID)
	if t.Name != "" {
		fmt.Fprintf(&b, " (#%s)", t.Name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Type: %s\n", t.Type)
	fmt.Fprintf(&b, "Created by: %s\n", t.UserID)
	fmt.Fprintf(&b, "Created at: %s\n", t.CreatedAt.UTC().Format(transcriptTimeFormat))
	fmt.Fprintf(&b, "Status: %s\n", t.Status)
	if t.ClaimedBy != "" {
		fmt.Fprintf(&b, "Claimed by: %s\n", t.ClaimedBy)
	}
	if t.ClosedAt != nil {
		fmt.Fprintf(&b, "Closed by: %s at %s\n", t.ClosedBy, t.ClosedAt.UTC().Format(transcriptTimeFormat))
	}
	if t.CloseReason != "" {
		fmt.Fprintf(&b, "Close reason: %s\n", t.CloseReason)
	}
	fmt.Fprintf(&b, "Participants: %s\n", strings.Join(t.Participants, ", "))
	b.WriteString(strings.Repeat("-", 60))
	b.WriteString("\n")

	if len(t.Messages) == 0 {
		b.WriteString("No messages were recorded.\n")
		return b.String()
	}
	for _, m := range t.Messages {
		author := m.Author
		if author == "" {
			author = m.AuthorID
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", m.Timestamp.UTC().Format(transcriptTimeFormat), author, m.Content)
		for _, a := range m.Attachments {
			fmt.Fprintf(&b, "    attachment: %s\n", a)
		}
	}
	return b.String()
}

// TranscriptFileName is the upload name of a ticket transcript.
func TranscriptFileName(t *model.Ticket, now time.Time) string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	return fmt.Sprintf("transcript-%s-%s.txt", name, now.UTC().Format("20060102-150405"))
}

// Transcript loads a ticket and renders its transcript.
func (w *Workflow) Transcript(ctx context.Context, channelID string) (*model.Ticket, string, error) {
	t, err := w.Get(ctx, channelID)
	if err != nil {
		return nil, "", err
	}
	return t, RenderTranscript(t), nil
}
