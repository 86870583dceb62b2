package fun

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"community-bot/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, status int, body string, paths chan<- string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if paths != nil {
			select {
			case paths <- r.URL.RequestURI():
			default:
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFormatQuestion(t *testing.T) {
	assert.Equal(t, "Will it rain?", formatQuestion("  Will it rain "))
	assert.Equal(t, "Really?", formatQuestion("Really?"))
	assert.Equal(t, "", formatQuestion("   "))
}

func TestFetchAnswer(t *testing.T) {
	ctx := context.Background()

	srv := jsonServer(t, http.StatusOK, `{"answer":"yes","forced":false}`, nil)
	answer, err := fetchAnswer(ctx, srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "YES", answer)

	empty := jsonServer(t, http.StatusOK, `{}`, nil)
	_, err = fetchAnswer(ctx, empty.Client(), empty.URL)
	assert.Error(t, err)

	down := jsonServer(t, http.StatusBadGateway, `oops`, nil)
	_, err = fetchAnswer(ctx, down.Client(), down.URL)
	var statusErr *utils.HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)

	for _, a := range fallbackAnswers {
		assert.Equal(t, strings.ToUpper(a), a)
	}
}

func TestFetchJoke(t *testing.T) {
	ctx := context.Background()

	paths := make(chan string, 1)
	srv := jsonServer(t, http.StatusOK, `{"error":false,"category":"Programming","type":"twopart","setup":"Why?","delivery":"Because."}`, paths)
	joke, err := fetchJoke(ctx, srv.Client(), srv.URL+"/joke/", "Programming")
	require.NoError(t, err)
	assert.Equal(t, "/joke/Programming?blacklistFlags="+jokeBlacklist, <-paths)
	assert.Equal(t, "Why?\n\n||Because.||", jokeText(joke))
	assert.Equal(t, "Programming", joke.Category)

	single := &jokeResponse{Type: "single", Joke: "A joke."}
	assert.Equal(t, "A joke.", jokeText(single))

	bad := jsonServer(t, http.StatusBadRequest, `{"error":true,"message":"No matching joke found"}`, nil)
	_, err = fetchJoke(ctx, bad.Client(), bad.URL+"/", "Any")
	require.Error(t, err)
	assert.True(t, utils.HasCode(err, "joke_unavailable"))
	assert.Equal(t, "Failed to get a joke: No matching joke found", utils.AsDomainError(err).UserMessage())

	garbage := jsonServer(t, http.StatusOK, `not json`, nil)
	_, err = fetchJoke(ctx, garbage.Client(), garbage.URL+"/", "Any")
	require.Error(t, err)
	assert.False(t, utils.HasCode(err, "joke_unavailable"))
}

func TestNormalizeSubreddit(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "", want: "", ok: true},
		{in: "memes", want: "memes", ok: true},
		{in: " r/ProgrammerHumor ", want: "ProgrammerHumor", ok: true},
		{in: "/r/dankmemes", want: "dankmemes", ok: true},
		{in: "a", want: "a", ok: false},
		{in: "../admin", want: "../admin", ok: false},
		{in: "memes?x=1", want: "memes?x=1", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeSubreddit(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFetchMeme(t *testing.T) {
	ctx := context.Background()

	paths := make(chan string, 1)
	srv := jsonServer(t, http.StatusOK, `{"postLink":"https://redd.it/x","subreddit":"memes","title":"Funny","url":"https://i.redd.it/x.png","nsfw":false,"ups":42}`, paths)
	meme, err := fetchMeme(ctx, srv.Client(), srv.URL+"/gimme", "memes")
	require.NoError(t, err)
	assert.Equal(t, "/gimme/memes", <-paths)

	embed := memeEmbed(utils.NewFormatter(utils.DefaultPalette), meme)
	assert.Equal(t, "Funny", embed.Title)
	assert.Equal(t, "https://redd.it/x", embed.URL)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://i.redd.it/x.png", embed.Image.URL)
	assert.Equal(t, "👍 42 | From r/memes", embed.Footer.Text)

	missing := jsonServer(t, http.StatusNotFound, `{"code":404,"message":"This subreddit does not exist."}`, nil)
	_, err = fetchMeme(ctx, missing.Client(), missing.URL, "nope")
	require.Error(t, err)
	assert.Equal(t, "Failed to get a meme: This subreddit does not exist.", utils.AsDomainError(err).UserMessage())
}

func TestRenderASCII(t *testing.T) {
	for font := range asciiFonts {
		t.Run(font, func(t *testing.T) {
			art, err := renderASCII("Hi", font)
			require.NoError(t, err)
			assert.NotEmpty(t, strings.TrimSpace(art))
			assert.Contains(t, art, "\n", "figlet art spans several lines")
		})
	}

	_, err := renderASCII("Hi", "comic-sans")
	assert.Error(t, err)
}
