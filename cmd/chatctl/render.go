package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/ngongtopro/love-story-chat/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderSession(w io.Writer, session domain.Session) {
	if !session.IsAuthenticated() {
		fmt.Fprintln(w, session.State.String())
		return
	}
	fmt.Fprintf(w, "%s as %s (id %d)\n", session.State, session.Principal.Username, session.Principal.UserID)
}

func renderParticipants(w io.Writer, participants []domain.Participant) {
	table := newTable(w, "ID", "Username", "Status")
	for _, p := range participants {
		status := "offline"
		if p.IsOnline {
			status = "online"
		}
		table.Append([]string{strconv.FormatInt(int64(p.ID), 10), p.Username, status})
	}
	table.Render()
}

func renderThreads(w io.Writer, threads []domain.Thread, participants []domain.Participant) {
	table := newTable(w, "Thread", "With", "Open with")
	for _, thread := range threads {
		name := "#" + strconv.FormatInt(int64(thread.ParticipantID), 10)
		if p, ok := domain.FindParticipant(participants, thread.ParticipantID); ok {
			name = p.Username
		}
		table.Append([]string{
			strconv.FormatInt(int64(thread.ID), 10),
			name,
			fmt.Sprintf("chatctl open %d", thread.ParticipantID),
		})
	}
	table.Render()
}

func renderTimeline(w io.Writer, with domain.Participant, messages []domain.Message) {
	fmt.Fprintln(w, color.New(color.BgBlack, color.FgGreen).Render(fmt.Sprintf(" %s ", with.Username)))
	if len(messages) == 0 {
		fmt.Fprintln(w, "  no messages yet")
		return
	}
	lo.ForEach(messages, func(m domain.Message, _ int) {
		author := with.Username
		if m.IsOwn {
			author = "you"
		}
		renderMessage(w, author, m)
	})
}

func renderMessage(w io.Writer, author string, m domain.Message) {
	stamp := color.FgGray.Render(m.Timestamp.Local().Format("15:04"))
	name := color.FgCyan.Render(author)
	if m.IsOwn {
		name = color.FgGreen.Render(author)
	}
	fmt.Fprintf(w, "  %s %s: %s\n", stamp, name, m.Content)
}
