package fun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"community-bot/bot"
	"community-bot/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const (
	yesNoURL    = "https://yesno.wtf/api"
	jokeBaseURL = "https://v2.jokeapi.dev/joke/"
	memeBaseURL = "https://meme-api.com/gimme"

	apiTimeout = 5 * time.Second
)

// jokeBlacklist filters what jokeapi may return.
const jokeBlacklist = "nsfw,religious,political,racist,sexist,explicit"

// fallbackAnswers are used by /q when yesno.wtf cannot be reached.
var fallbackAnswers = []string{
	"YES!", "NO!", "ABSOLUTELY!", "DEFINITELY NOT!", "MAYBE...",
	"ASK AGAIN LATER", "WITHOUT A DOUBT", "I DOUBT IT",
	"OUTLOOK GOOD", "OUTLOOK NOT SO GOOD", "SIGNS POINT TO YES",
	"UNLIKELY", "VERY LIKELY", "I HAVE NO IDEA",
}

var subredditPattern = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

type yesNoResponse struct {
	Answer string `json:"answer"`
}

type jokeResponse struct {
	Error    bool   `json:"error"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Joke     string `json:"joke"`
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

type memeResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	PostLink  string `json:"postLink"`
	Subreddit string `json:"subreddit"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	NSFW      bool   `json:"nsfw"`
	Ups       int    `json:"ups"`
}

// formatQuestion trims q and makes sure it ends with a question mark.
func formatQuestion(q string) string {
	q = strings.TrimSpace(q)
	if q == "" || strings.HasSuffix(q, "?") {
		return q
	}
	return q + "?"
}

// fetchAnswer asks yesno.wtf. Any failure, including an empty answer, is an error so the caller
// can fall back to a local answer.
func fetchAnswer(ctx context.Context, client *http.Client, endpoint string) (string, error) {
	var resp yesNoResponse
	if err := utils.GetJSON(ctx, client, endpoint, &resp); err != nil {
		return "", err
	}
	if resp.Answer == "" {
		return "", errors.New("yesno.wtf returned no answer")
	}
	return strings.ToUpper(resp.Answer), nil
}

// fetchJoke returns a joke of category, or the API's own error message as a validation error.
func fetchJoke(ctx context.Context, client *http.Client, base, category string) (*jokeResponse, error) {
	endpoint := base + url.PathEscape(category) + "?blacklistFlags=" + jokeBlacklist
	var resp jokeResponse
	err := utils.GetJSON(ctx, client, endpoint, &resp)
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) && json.Unmarshal(statusErr.Body, &resp) == nil && resp.Error {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	if resp.Error {
		return nil, utils.NewValidationError("joke_unavailable", "Error", "Failed to get a joke: "+resp.Message)
	}
	return &resp, nil
}

// jokeText renders two-part jokes with the punchline behind a spoiler.
func jokeText(j *jokeResponse) string {
	if j.Type == "twopart" {
		return fmt.Sprintf("%s\n\n||%s||", j.Setup, j.Delivery)
	}
	return j.Joke
}

// normalizeSubreddit accepts "memes" or "r/memes". An empty name means any subreddit.
func normalizeSubreddit(name string) (string, bool) {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(strings.TrimPrefix(name, "/"), "r/")
	if name == "" {
		return "", true
	}
	return name, subredditPattern.MatchString(name)
}

func fetchMeme(ctx context.Context, client *http.Client, base, subreddit string) (*memeResponse, error) {
	endpoint := base
	if subreddit != "" {
		endpoint += "/" + subreddit
	}
	var resp memeResponse
	err := utils.GetJSON(ctx, client, endpoint, &resp)
	var statusErr *utils.HTTPStatusError
	if errors.As(err, &statusErr) && json.Unmarshal(statusErr.Body, &resp) == nil && resp.Message != "" {
		return nil, utils.NewValidationError("meme_unavailable", "Error", "Failed to get a meme: "+resp.Message)
	}
	if err != nil {
		return nil, err
	}
	if resp.Code != 0 || resp.URL == "" {
		return nil, utils.NewValidationError("meme_unavailable", "Error", "Failed to get a meme: "+resp.Message)
	}
	return &resp, nil
}

func handleQuestion(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	question := formatQuestion(opts.String("question", ""))
	if question == "" {
		return utils.NewValidationError("empty_question", "Empty Question", "Please provide a question to ask.")
	}
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "defer q response", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()
	answer, err := fetchAnswer(ctx, utils.GlobalHTTPClient, yesNoURL)
	if err != nil {
		b.Logger.Debug("yesno.wtf unavailable, using a local answer", zap.Error(err))
		answer = fallbackAnswers[newRand().Intn(len(fallbackAnswers))]
	}
	return utils.EditEmbed(s, i, b.Formatter.Info("🔮 Question Response",
		fmt.Sprintf("**Q:** %s\n**A:** %s", question, answer),
		utils.EmbedOptions{Footer: "The universe has spoken!"}))
}

func handleJoke(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	category := opts.String("category", "Any")
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "defer joke response", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()
	joke, err := fetchJoke(ctx, utils.GlobalHTTPClient, jokeBaseURL, category)
	var de *utils.DomainError
	if errors.As(err, &de) {
		return utils.EditEmbed(s, i, b.Formatter.Error(de.UserTitle(), de.UserMessage()))
	}
	if err != nil {
		b.Logger.Warn("failed to fetch joke", zap.String("category", category), zap.Error(err))
		return utils.EditEmbed(s, i, b.Formatter.Error("Error", "Failed to fetch a joke. Please try again later."))
	}
	return utils.EditEmbed(s, i, b.Formatter.Info("😂 Random Joke", jokeText(joke),
		utils.EmbedOptions{Footer: "Category: " + joke.Category}))
}

func handleMeme(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) error {
	_, opts := utils.CommandOptions(i)
	subreddit, ok := normalizeSubreddit(opts.String("subreddit", ""))
	if !ok {
		return utils.NewValidationError("invalid_subreddit", "Invalid Subreddit", "Subreddit names are 2 to 21 letters, digits or underscores.")
	}
	if err := utils.DeferResponse(s, i, false); err != nil {
		return utils.NewCollaboratorError("Error", "defer meme response", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()
	meme, err := fetchMeme(ctx, utils.GlobalHTTPClient, memeBaseURL, subreddit)
	var de *utils.DomainError
	if errors.As(err, &de) {
		return utils.EditEmbed(s, i, b.Formatter.Error(de.UserTitle(), de.UserMessage()))
	}
	if err != nil {
		b.Logger.Warn("failed to fetch meme", zap.String("subreddit", subreddit), zap.Error(err))
		return utils.EditEmbed(s, i, b.Formatter.Error("Error", "Failed to fetch a meme. Please try again later."))
	}
	if meme.NSFW && !channelIsNSFW(s, i.ChannelID) {
		return utils.EditEmbed(s, i, b.Formatter.Error("NSFW Content", "This meme is NSFW and can only be shown in NSFW channels."))
	}
	return utils.EditEmbed(s, i, memeEmbed(b.Formatter, meme))
}

func memeEmbed(f *utils.Formatter, m *memeResponse) *discordgo.MessageEmbed {
	embed := f.Create("", utils.Truncate(m.Title, 256), "", utils.EmbedOptions{
		Image:  m.URL,
		Footer: fmt.Sprintf("👍 %d | From r/%s", m.Ups, m.Subreddit),
	})
	embed.URL = m.PostLink
	return embed
}

func channelIsNSFW(s *discordgo.Session, channelID string) bool {
	if s.State != nil {
		if ch, err := s.State.Channel(channelID); err == nil {
			return ch.NSFW
		}
	}
	ch, err := s.Channel(channelID)
	return err == nil && ch.NSFW
}
