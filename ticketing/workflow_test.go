package ticketing

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"community-bot/model"
	"community-bot/utils"
	"community-bot/utils/database"
	"community-bot/utils/database/memstore"
	"community-bot/utils/database/sqlstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkflow(t *testing.T) (*Workflow, *database.Stores) {
	t.Helper()
	stores := memstore.New(nil)
	return NewWorkflow(stores, model.TicketDefaults{}, zap.NewNop()), stores
}

func openTicket(t *testing.T, w *Workflow) *model.Ticket {
	t.Helper()
	tk, err := w.Open(context.Background(), OpenRequest{GuildID: "g1", ChannelID: "c1", UserID: "creator", Type: "General Support"})
	require.NoError(t, err)
	return tk
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, utils.HasCode(err, code), "want %s, got %v", code, err)
}

func TestOpen(t *testing.T) {
	w, _ := newWorkflow(t)
	tk := openTicket(t, w)

	assert.Equal(t, model.TicketOpen, tk.Status)
	assert.Equal(t, []string{"creator"}, tk.Participants)
	assert.Equal(t, "ticket-1", tk.ID)

	logs, err := w.Logs(context.Background(), "g1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreate, logs[0].Action)
	assert.Equal(t, "Ticket created: General Support", logs[0].Detail)
}

func TestClaim(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	tk, err := w.Claim(ctx, "c1", "staff1")
	require.NoError(t, err)
	assert.Equal(t, "staff1", tk.ClaimedBy)

	_, err = w.Claim(ctx, "c1", "staff1")
	requireCode(t, err, CodeAlreadyClaimedSelf)
	assert.Equal(t, "You have already claimed this ticket.", utils.AsDomainError(err).UserMessage())

	_, err = w.Claim(ctx, "c1", "staff2")
	requireCode(t, err, CodeAlreadyClaimed)
	assert.Equal(t, "This ticket is already claimed by <@staff1>.", utils.AsDomainError(err).UserMessage())

	_, err = w.Claim(ctx, "other", "staff1")
	requireCode(t, err, CodeNotTicket)
}

func TestCloseIsTerminal(t *testing.T) {
	ctx := context.Background()
	w, stores := newWorkflow(t)
	openTicket(t, w)

	tk, err := w.Close(ctx, "c1", "staff1", "resolved")
	require.NoError(t, err)
	assert.Equal(t, model.TicketClosed, tk.Status)
	assert.Equal(t, "staff1", tk.ClosedBy)
	assert.Equal(t, "resolved", tk.CloseReason)
	require.NotNil(t, tk.ClosedAt)

	before, err := stores.Tickets.Get(ctx, "c1")
	require.NoError(t, err)

	_, err = w.Close(ctx, "c1", "staff1", "")
	requireCode(t, err, CodeTicketClosed)
	_, err = w.Claim(ctx, "c1", "staff1")
	requireCode(t, err, CodeTicketClosed)
	_, err = w.AddParticipant(ctx, "c1", "u2", "staff1")
	requireCode(t, err, CodeTicketClosed)
	_, err = w.RemoveParticipant(ctx, "c1", "u2", "staff1")
	requireCode(t, err, CodeTicketClosed)

	after, err := stores.Tickets.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, before.Version, after.Version, "guard failures never write")
}

func TestParticipants(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	tk, err := w.AddParticipant(ctx, "c1", "u2", "staff1")
	require.NoError(t, err)
	assert.Equal(t, []string{"creator", "u2"}, tk.Participants)

	_, err = w.AddParticipant(ctx, "c1", "u2", "staff1")
	requireCode(t, err, CodeAlreadyAdded)

	_, err = w.RemoveParticipant(ctx, "c1", "creator", "staff1")
	requireCode(t, err, CodeCannotRemoveCreator)

	_, err = w.RemoveParticipant(ctx, "c1", "u3", "staff1")
	requireCode(t, err, CodeNotParticipant)

	tk, err = w.RemoveParticipant(ctx, "c1", "u2", "staff1")
	require.NoError(t, err)
	assert.Equal(t, []string{"creator"}, tk.Participants)
}

func TestRemoveCreatorRejectedWhenClosed(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)
	_, err := w.Close(ctx, "c1", "staff1", "")
	require.NoError(t, err)

	_, err = w.RemoveParticipant(ctx, "c1", "creator", "staff1")
	requireCode(t, err, CodeCannotRemoveCreator)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	tk, err := w.Rename(ctx, "c1", "Billing Issue!", "staff1")
	require.NoError(t, err)
	assert.Equal(t, "ticket-billingissue", tk.Name)

	_, err = w.Rename(ctx, "c1", "!!!", "staff1")
	requireCode(t, err, CodeInvalidName)

	_, err = w.Close(ctx, "c1", "staff1", "")
	require.NoError(t, err)
	tk, err = w.Rename(ctx, "c1", "archived", "staff1")
	require.NoError(t, err, "rename is allowed on closed tickets")
	assert.Equal(t, "ticket-archived", tk.Name)

	_, err = w.Rename(ctx, "nope", "!!!", "staff1")
	requireCode(t, err, CodeNotTicket)
}

func TestEveryTransitionIsLogged(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	_, err := w.Claim(ctx, "c1", "staff1")
	require.NoError(t, err)
	_, err = w.AddParticipant(ctx, "c1", "u2", "staff1")
	require.NoError(t, err)
	_, err = w.RemoveParticipant(ctx, "c1", "u2", "staff1")
	require.NoError(t, err)
	_, err = w.Rename(ctx, "c1", "renamed", "staff1")
	require.NoError(t, err)
	_, err = w.Close(ctx, "c1", "staff1", "done")
	require.NoError(t, err)

	logs, err := w.Logs(ctx, "g1", 0)
	require.NoError(t, err)
	var actions []string
	for _, e := range logs {
		actions = append(actions, e.Action)
	}
	assert.Equal(t, []string{
		model.ActionClose, model.ActionRename, model.ActionRemoveUser,
		model.ActionAddUser, model.ActionClaim, model.ActionCreate,
	}, actions)
	assert.Equal(t, "Ticket closed: done", logs[0].Detail)
	assert.Equal(t, "Ticket claimed by <@staff1>", logs[4].Detail)
}

func TestConcurrentClaimsHaveOneWinner(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	const n = 20
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
		losers  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := w.Claim(ctx, "c1", id)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, id)
				return
			}
			if utils.HasCode(err, CodeAlreadyClaimed) {
				losers++
			}
		}(fmt.Sprintf("staff%d", i))
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, n-1, losers)

	tk, err := w.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, winners[0], tk.ClaimedBy)
}

func TestAppendMessage(t *testing.T) {
	ctx := context.Background()
	w, _ := newWorkflow(t)
	openTicket(t, w)

	ok, err := w.AppendMessage(ctx, "c1", model.TicketMessage{ID: "m1", AuthorID: "creator", Content: "hello"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.AppendMessage(ctx, "elsewhere", model.TicketMessage{ID: "m2"})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = w.Close(ctx, "c1", "staff", "")
	require.NoError(t, err)
	ok, err = w.AppendMessage(ctx, "c1", model.TicketMessage{ID: "m3"})
	require.NoError(t, err)
	assert.False(t, ok)

	tk, text, err := w.Transcript(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, tk.Messages, 1)
	assert.Contains(t, text, "creator: hello")

	logs, err := w.Logs(ctx, "g1", 0)
	require.NoError(t, err)
	assert.Len(t, logs, 2, "messages are not logged")
}

func TestConcurrentAppendsAreAllStored(t *testing.T) {
	backends := map[string]func(t *testing.T) *database.Stores{
		"memory": func(*testing.T) *database.Stores { return memstore.New(nil) },
		"sqlite": func(t *testing.T) *database.Stores {
			db, backend, err := sqlstore.Connect(context.Background(), "sqlite://"+filepath.Join(t.TempDir(), "bot.db"))
			require.NoError(t, err)
			stores := sqlstore.New(db, backend, nil)
			t.Cleanup(func() { stores.Close() })
			return stores
		},
	}

	for name, newStores := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			w := NewWorkflow(newStores(t), model.TicketDefaults{}, zap.NewNop())
			openTicket(t, w)

			const n = 30
			var wg sync.WaitGroup
			errs := make(chan error, n+1)
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					ok, err := w.AppendMessage(ctx, "c1", model.TicketMessage{ID: fmt.Sprint(i), AuthorID: "creator", Content: fmt.Sprintf("line %d", i)})
					if err == nil && !ok {
						err = fmt.Errorf("line %d not stored", i)
					}
					errs <- err
				}(i)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := w.Claim(ctx, "c1", "staff1")
				errs <- err
			}()
			wg.Wait()
			close(errs)
			for err := range errs {
				require.NoError(t, err)
			}

			tk, err := w.Get(ctx, "c1")
			require.NoError(t, err)
			assert.Len(t, tk.Messages, n)
			assert.Equal(t, "staff1", tk.ClaimedBy)
			assert.Equal(t, 2, tk.Version, "appends do not bump the version")
		})
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	stores := memstore.New(nil)
	w := NewWorkflow(stores, model.TicketDefaults{WelcomeMessage: "Hi there"}, zap.NewNop())

	s, err := w.Settings(ctx, "g1")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = w.RequireSettings(ctx, "g1")
	requireCode(t, err, CodeNotSetUp)
	requireCode(t, w.SetPanel(ctx, "g1", "ch", "msg"), CodeNotSetUp)

	s, err = w.Setup(ctx, SetupRequest{GuildID: "g1", CategoryID: "cat", LogsChannel: "logs", StaffRoleIDs: []string{"r1"}})
	require.NoError(t, err)
	assert.Equal(t, "Hi there", s.WelcomeMessage)
	assert.Equal(t, DefaultTicketTypes, s.TicketTypes)

	require.NoError(t, w.SetPanel(ctx, "g1", "panel-ch", "panel-msg"))
	require.NoError(t, w.SetLogsChannel(ctx, "g1", "new-logs"))
	require.NoError(t, w.SetCategory(ctx, "g1", "cat2", "admin"))

	s, err = w.Setup(ctx, SetupRequest{GuildID: "g1", CategoryID: "cat3", LogsChannel: "logs3"})
	require.NoError(t, err)
	assert.Equal(t, "panel-msg", s.PanelMessageID, "setup keeps the posted panel")
	assert.Equal(t, "cat3", s.CategoryID)
	assert.Equal(t, []string{"r1"}, s.StaffRoleIDs, "omitted fields are kept")

	logs, err := w.Logs(ctx, "g1", 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCategory, logs[0].Action)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "Billing", want: "ticket-billing", ok: true},
		{in: "my ticket_1", want: "ticket-myticket_1", ok: true},
		{in: "ticket-help", want: "ticket-help", ok: true},
		{in: "Ünïcode", want: "ticket-ncode", ok: true},
		{in: strings.Repeat("a", 50), want: "ticket-" + strings.Repeat("a", 25), ok: true},
		{in: "!!!", ok: false},
		{in: "", ok: false},
		{in: "--", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SanitizeName(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestChannelName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	name := ChannelName("Cool.User_99", rng)
	assert.Regexp(t, `^ticket-cooluser99-\d{4}$`, name)
	assert.Regexp(t, `^ticket-user-\d{4}$`, ChannelName("***", rng))
}

func TestRenderTranscript(t *testing.T) {
	at := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	tk := &model.Ticket{
		ID:           "ticket-3",
		Name:         "ticket-billing",
		Type:         "General Support",
		UserID:       "u1",
		Status:       model.TicketClosed,
		ClosedBy:     "s1",
		ClosedAt:     &at,
		Participants: []string{"u1", "u2"},
		CreatedAt:    at,
		Messages: []model.TicketMessage{
			{Author: "alice", Content: "hi", Timestamp: at, Attachments: []string{"https://cdn/x.png"}},
			{AuthorID: "u2", Content: "hello", Timestamp: at},
		},
	}
	out := RenderTranscript(tk)
	assert.Contains(t, out, "Transcript for ticket-3 (#ticket-billing)")
	assert.Contains(t, out, "[2024-03-04 05:06:07 UTC] alice: hi")
	assert.Contains(t, out, "attachment: https://cdn/x.png")
	assert.Contains(t, out, "u2: hello")
	assert.Contains(t, out, "Closed by: s1")
	assert.Equal(t, "transcript-ticket-billing-20240304-050607.txt", TranscriptFileName(tk, at))
}
